package handlers

import (
	"net/url"

	"basepay/internal/config"
	appErrors "basepay/internal/errors"
	"basepay/internal/models"
	"basepay/internal/services/qrcode"
	"basepay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type QRHandler struct {
	qrService qrcode.Service
}

func NewQRHandler(qrService qrcode.Service) *QRHandler {
	return &QRHandler{
		qrService: qrService,
	}
}

// CreateQRCode handles POST /api/qr-codes.
func (h *QRHandler) CreateQRCode(c *fiber.Ctx) error {
	var req models.CreateQRCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	qr, err := h.qrService.Create(c.Context(), req)
	if err != nil {
		return fail(c, err, "Failed to create QR code")
	}

	return response.JSON(c, fiber.StatusCreated, qr)
}

// GetQRCode handles GET /api/qr-codes/:wallet_address/:website_url.
// The URL arrives percent-encoded as a path segment and is decoded
// exactly once before lookup.
func (h *QRHandler) GetQRCode(c *fiber.Ctx) error {
	walletAddress := c.Params("wallet_address")

	websiteURL, err := url.PathUnescape(c.Params("website_url"))
	if err != nil {
		return response.BadRequest(c, "Invalid website URL encoding")
	}

	qr, err := h.qrService.Get(c.Context(), walletAddress, websiteURL)
	if err != nil {
		return fail(c, err, "Failed to fetch QR code")
	}

	return response.JSON(c, fiber.StatusOK, qr)
}

// fail maps a service error onto the wire. Domain errors keep their
// message; anything else is a 500 whose detail is hidden in
// production mode.
func fail(c *fiber.Ctx, err error, generic string) error {
	if de, ok := appErrors.AsDomain(err); ok {
		return response.Error(c, de.Status, de.Message)
	}
	if config.IsProduction() {
		return response.ServerError(c, generic)
	}
	return response.ServerError(c, err.Error())
}
