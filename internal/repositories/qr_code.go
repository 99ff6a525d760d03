package repositories

import (
	"context"

	"basepay/internal/models"

	"gorm.io/gorm"
)

// QRCodeRepository is the persistence boundary for QR payment records.
// Lookups that match no row return gorm.ErrRecordNotFound; a create
// that loses a uniqueness race returns gorm.ErrDuplicatedKey.
type QRCodeRepository interface {
	Create(ctx context.Context, qr *models.QRCode) (*models.QRCode, error)
	FindByWalletAndURL(ctx context.Context, walletAddress, websiteURL string) (*models.QRCode, error)
	FindByURL(ctx context.Context, websiteURL string) (*models.QRCode, error)
}

type qrCodeRepository struct {
	db *gorm.DB
}

// NewQRCodeRepository creates a QR code repository backed by db.
func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

func (r *qrCodeRepository) Create(ctx context.Context, qr *models.QRCode) (*models.QRCode, error) {
	if err := r.db.WithContext(ctx).Create(qr).Error; err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *qrCodeRepository) FindByWalletAndURL(ctx context.Context, walletAddress, websiteURL string) (*models.QRCode, error) {
	var qr models.QRCode
	err := r.db.WithContext(ctx).
		Where("wallet_address = ? AND website_url = ?", walletAddress, websiteURL).
		First(&qr).Error
	if err != nil {
		return nil, err
	}
	return &qr, nil
}

func (r *qrCodeRepository) FindByURL(ctx context.Context, websiteURL string) (*models.QRCode, error) {
	var qr models.QRCode
	err := r.db.WithContext(ctx).
		Where("website_url = ?", websiteURL).
		First(&qr).Error
	if err != nil {
		return nil, err
	}
	return &qr, nil
}
