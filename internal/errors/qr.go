package errors

import "net/http"

var (
	ErrWebsiteNameRequired = &DomainError{
		Code:    "WEBSITE_NAME_REQUIRED",
		Message: "Website name is required",
		Status:  http.StatusBadRequest,
	}
	ErrQRDataMismatch = &DomainError{
		Code:    "QR_DATA_MISMATCH",
		Message: "QR data must match wallet address",
		Status:  http.StatusBadRequest,
	}
	ErrDuplicatePair = &DomainError{
		Code:    "DUPLICATE_WALLET_URL",
		Message: "QR code already exists for this combination of wallet address and website URL",
		Status:  http.StatusConflict,
	}
	ErrURLTaken = &DomainError{
		Code:    "URL_TAKEN",
		Message: "This website URL already has a QR code generated",
		Status:  http.StatusConflict,
	}
	ErrQRNotFound = &DomainError{
		Code:    "QR_NOT_FOUND",
		Message: "QR code not found",
		Status:  http.StatusNotFound,
	}
)
