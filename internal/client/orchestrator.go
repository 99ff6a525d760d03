package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"basepay/internal/models"

	"github.com/google/uuid"
)

// PaymentStatus tracks the fee payment for display. It is never
// persisted.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "pending"
	StatusProcessing PaymentStatus = "processing"
	StatusCompleted  PaymentStatus = "completed"
	StatusFailed     PaymentStatus = "failed"
)

const (
	maxRetries     = 2
	retryBaseDelay = time.Second
)

// Result is a completed generate or fetch flow.
type Result struct {
	Record    *models.QRCode
	PNG       []byte
	Existing  bool // true when an already-registered record was returned
	FeeTxHash string
}

// Orchestrator drives one record generation or retrieval flow. It is
// not safe for concurrent use; create one per flow. The fee payment
// confirmation is cached on the orchestrator, so gateway retries and
// repeated Generate calls never pay twice.
type Orchestrator struct {
	api      *API
	signer   Signer
	feePayer FeePayer // nil when generation is not fee-gated

	status    PaymentStatus
	feeTxHash string
	feePaid   bool

	// Overridable for tests.
	sleep func(time.Duration)
}

func NewOrchestrator(api *API, signer Signer, feePayer FeePayer) *Orchestrator {
	return &Orchestrator{
		api:      api,
		signer:   signer,
		feePayer: feePayer,
		status:   StatusPending,
		sleep:    time.Sleep,
	}
}

// Status returns the display-only payment status.
func (o *Orchestrator) Status() PaymentStatus {
	return o.status
}

// Generate runs the full flow: local validation, optional fee
// payment, lookup of an existing record, then creation with a bounded
// retry on server failures.
func (o *Orchestrator) Generate(ctx context.Context, in GenerateInput) (*Result, error) {
	if o.signer == nil || o.signer.Address() == "" {
		return nil, fmt.Errorf("please connect your wallet first")
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	o.status = StatusProcessing

	if err := o.payFeeOnce(ctx); err != nil {
		o.status = StatusFailed
		return nil, err
	}

	wallet := o.signer.Address()
	requestID := uuid.NewString()

	// An already-registered record short-circuits creation.
	existing, err := o.api.GetQRCode(ctx, wallet, in.WebsiteURL, requestID)
	if err == nil {
		return o.complete(existing, true)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.NotFound() {
		o.status = StatusFailed
		return nil, surface(err)
	}

	amount := in.Amount
	if amount == "" {
		amount = "0"
	}
	req := models.CreateQRCodeRequest{
		WalletAddress: wallet,
		WebsiteURL:    in.WebsiteURL,
		WebsiteName:   ExtractWebsiteName(in.WebsiteURL),
		Memo:          in.Memo,
		Amount:        amount,
		QRData:        wallet,
	}

	record, err := o.createWithRetry(ctx, req, requestID)
	if err != nil {
		o.status = StatusFailed
		return nil, surface(err)
	}

	return o.complete(record, false)
}

// Fetch retrieves an existing record, paying the retrieval fee first
// when the orchestrator is fee-gated.
func (o *Orchestrator) Fetch(ctx context.Context, walletAddress, websiteURL string) (*Result, error) {
	if walletAddress == "" {
		if o.signer == nil || o.signer.Address() == "" {
			return nil, fmt.Errorf("please connect your wallet first")
		}
		walletAddress = o.signer.Address()
	}

	o.status = StatusProcessing

	if err := o.payFeeOnce(ctx); err != nil {
		o.status = StatusFailed
		return nil, err
	}

	record, err := o.api.GetQRCode(ctx, walletAddress, websiteURL, uuid.NewString())
	if err != nil {
		o.status = StatusFailed
		return nil, surface(err)
	}

	return o.complete(record, true)
}

func (o *Orchestrator) payFeeOnce(ctx context.Context) error {
	if o.feePayer == nil || o.feePaid {
		return nil
	}
	txHash, err := o.feePayer.PayFee(ctx)
	if err != nil {
		return fmt.Errorf("fee payment failed: %w", err)
	}
	o.feePaid = true
	o.feeTxHash = txHash
	slog.Info("fee payment confirmed", "tx", txHash)
	return nil
}

// createWithRetry retries only plain server failures, with linearly
// increasing delay: 1s after the first failure, 2s after the second.
func (o *Orchestrator) createWithRetry(ctx context.Context, req models.CreateQRCodeRequest, requestID string) (*models.QRCode, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(attempt)
			slog.Info("retrying create", "attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			o.sleep(delay)
		}

		record, err := o.api.CreateQRCode(ctx, req, requestID)
		if err == nil {
			return record, nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() {
			return nil, err
		}
	}
	return nil, lastErr
}

func (o *Orchestrator) complete(record *models.QRCode, existing bool) (*Result, error) {
	png, err := RenderPNG(record.QRData)
	if err != nil {
		o.status = StatusFailed
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	o.status = StatusCompleted
	return &Result{
		Record:    record,
		PNG:       png,
		Existing:  existing,
		FeeTxHash: o.feeTxHash,
	}, nil
}

// surface resolves a failure to a user-facing message, preferring the
// gateway's error body.
func surface(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
		return fmt.Errorf("failed to generate QR code, please try again")
	}
	return err
}
