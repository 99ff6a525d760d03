package qrcode

import (
	"context"

	"basepay/internal/models"
)

// RecordCache is the optional read cache in front of the store.
type RecordCache interface {
	GetQRCode(ctx context.Context, walletAddress, websiteURL string) (*models.QRCode, bool, error)
	SetQRCode(ctx context.Context, qr *models.QRCode) error
}

// Service defines the QR record operations exposed to handlers.
type Service interface {
	// Create validates the request, runs both duplicate checks in
	// order, and inserts the record. Amount defaults to "0".
	Create(ctx context.Context, req models.CreateQRCodeRequest) (*models.QRCode, error)

	// Get returns the record for an exact wallet+URL pair.
	Get(ctx context.Context, walletAddress, websiteURL string) (*models.QRCode, error)
}
