package models

import "time"

// QRCode is a registered USDC payment address for a website. Rows are
// created once and never updated or deleted.
//
// The unique index on WebsiteURL is the load-bearing constraint: a URL
// can hold at most one QR code regardless of wallet. The composite
// index on (WalletAddress, WebsiteURL) mirrors the first duplicate
// check the create path performs.
type QRCode struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	WalletAddress string    `gorm:"not null;index:idx_qr_wallet_url,unique" json:"wallet_address"`
	WebsiteURL    string    `gorm:"not null;uniqueIndex;index:idx_qr_wallet_url,unique" json:"website_url"`
	WebsiteName   string    `gorm:"not null" json:"website_name"`
	Memo          string    `json:"memo"`
	Amount        string    `gorm:"not null;default:'0'" json:"amount"`
	QRData        string    `gorm:"not null" json:"qr_data"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateQRCodeRequest is the POST /api/qr-codes body.
type CreateQRCodeRequest struct {
	WalletAddress string `json:"wallet_address"`
	WebsiteURL    string `json:"website_url"`
	WebsiteName   string `json:"website_name"`
	Memo          string `json:"memo"`
	Amount        string `json:"amount"`
	QRData        string `json:"qr_data"`
}
