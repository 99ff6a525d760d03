// Package qrcode implements the QR payment record protocol: ordered
// validation, two duplicate lookups, then insert.
package qrcode

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	appErrors "basepay/internal/errors"
	"basepay/internal/models"
	"basepay/internal/repositories"

	"gorm.io/gorm"
)

type service struct {
	repo  repositories.QRCodeRepository
	cache RecordCache
}

// NewService creates the QR record service. cache may be nil.
func NewService(repo repositories.QRCodeRepository, cache RecordCache) Service {
	return &service{
		repo:  repo,
		cache: cache,
	}
}

func (s *service) Create(ctx context.Context, req models.CreateQRCodeRequest) (*models.QRCode, error) {
	if req.WebsiteName == "" {
		slog.Warn("qr create rejected", "reason", "missing website name", "wallet", req.WalletAddress)
		return nil, appErrors.ErrWebsiteNameRequired
	}

	if req.QRData != req.WalletAddress {
		slog.Warn("qr create rejected", "reason", "qr_data mismatch", "wallet", req.WalletAddress)
		return nil, appErrors.ErrQRDataMismatch
	}

	// Two read checks, pair first. The pair check is subsumed by the
	// URL check but carries a different error message, so both stay.
	_, err := s.repo.FindByWalletAndURL(ctx, req.WalletAddress, req.WebsiteURL)
	switch {
	case err == nil:
		slog.Warn("qr create rejected", "reason", "duplicate wallet+url", "wallet", req.WalletAddress, "url", req.WebsiteURL)
		return nil, appErrors.ErrDuplicatePair
	case !stderrors.Is(err, gorm.ErrRecordNotFound):
		slog.Error("qr duplicate check failed", "error", err)
		return nil, fmt.Errorf("database search error: %w", err)
	}

	_, err = s.repo.FindByURL(ctx, req.WebsiteURL)
	switch {
	case err == nil:
		slog.Warn("qr create rejected", "reason", "url taken", "url", req.WebsiteURL)
		return nil, appErrors.ErrURLTaken
	case !stderrors.Is(err, gorm.ErrRecordNotFound):
		slog.Error("qr url check failed", "error", err)
		return nil, fmt.Errorf("database check error: %w", err)
	}

	amount := req.Amount
	if amount == "" {
		amount = "0"
	}

	qr := &models.QRCode{
		WalletAddress: req.WalletAddress,
		WebsiteURL:    req.WebsiteURL,
		WebsiteName:   req.WebsiteName,
		Memo:          req.Memo,
		Amount:        amount,
		QRData:        req.QRData,
	}

	created, err := s.repo.Create(ctx, qr)
	if err != nil {
		// A concurrent create can pass both read checks and lose at
		// the unique index; that loser gets the same conflict as the
		// URL check instead of a second row.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			slog.Warn("qr create lost uniqueness race", "url", req.WebsiteURL)
			return nil, appErrors.ErrURLTaken
		}
		slog.Error("qr insert failed", "error", err)
		return nil, fmt.Errorf("failed to create QR code entry: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("failed to retrieve created QR code")
	}

	if s.cache != nil {
		if err := s.cache.SetQRCode(ctx, created); err != nil {
			slog.Warn("qr cache fill failed", "error", err)
		}
	}

	slog.Info("qr code created", "id", created.ID, "url", created.WebsiteURL)
	return created, nil
}

func (s *service) Get(ctx context.Context, walletAddress, websiteURL string) (*models.QRCode, error) {
	if s.cache != nil {
		if qr, hit, err := s.cache.GetQRCode(ctx, walletAddress, websiteURL); err != nil {
			slog.Warn("qr cache read failed", "error", err)
		} else if hit {
			return qr, nil
		}
	}

	qr, err := s.repo.FindByWalletAndURL(ctx, walletAddress, websiteURL)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrQRNotFound
		}
		slog.Error("qr lookup failed", "error", err)
		return nil, fmt.Errorf("failed to fetch QR code: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetQRCode(ctx, qr); err != nil {
			slog.Warn("qr cache fill failed", "error", err)
		}
	}

	return qr, nil
}
