// Package client implements the request orchestrator: form
// validation, optional on-chain fee payment, record lookup and
// creation against the gateway, and QR rendering.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"basepay/internal/models"
)

const clientVersion = "1.0.0"

// APIError is a non-2xx gateway response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}

// Retryable reports whether the orchestrator may retry the request.
// Only plain server failures qualify.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusInternalServerError
}

// NotFound reports an expected lookup miss.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// API is a thin HTTP client for the record store gateway.
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateQRCode POSTs a new record. The returned error is an *APIError
// for any non-201 response.
func (a *API) CreateQRCode(ctx context.Context, req models.CreateQRCodeRequest, requestID string) (*models.QRCode, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/qr-codes", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Client-Version", clientVersion)
	httpReq.Header.Set("X-Request-ID", requestID)

	return a.do(httpReq, http.StatusCreated)
}

// GetQRCode looks up a record by wallet and website URL. The URL is
// sent percent-encoded as a path segment.
func (a *API) GetQRCode(ctx context.Context, walletAddress, websiteURL, requestID string) (*models.QRCode, error) {
	endpoint := fmt.Sprintf("%s/api/qr-codes/%s/%s",
		a.baseURL, url.PathEscape(walletAddress), url.PathEscape(websiteURL))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("X-Client-Version", clientVersion)
	httpReq.Header.Set("X-Request-ID", requestID)

	return a.do(httpReq, http.StatusOK)
}

func (a *API) do(req *http.Request, wantStatus int) (*models.QRCode, error) {
	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	var qr models.QRCode
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if qr.QRData == "" {
		return nil, fmt.Errorf("missing QR data in response")
	}
	return &qr, nil
}
