package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// GenerateInput is the form a caller fills before generating a record.
type GenerateInput struct {
	WebsiteURL string
	Memo       string
	Amount     string // optional, decimal string
}

// Validate checks the form locally before any network call.
func (in GenerateInput) Validate() error {
	if in.WebsiteURL == "" {
		return fmt.Errorf("website URL is required")
	}
	u, err := url.Parse(in.WebsiteURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("please enter a valid website URL")
	}

	if strings.TrimSpace(in.Memo) == "" {
		return fmt.Errorf("memo is required")
	}

	if in.Amount != "" {
		amount, err := decimal.NewFromString(in.Amount)
		if err != nil || amount.IsNegative() {
			return fmt.Errorf("please enter a valid amount")
		}
	}

	return nil
}

// ExtractWebsiteName derives the display name from the URL host:
// "https://www.shop.example.com/x" becomes "Shop".
func ExtractWebsiteName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	label := strings.SplitN(host, ".", 2)[0]
	if label == "" {
		return "Unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
