package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   GenerateInput
		wantErr string
	}{
		{
			name:  "valid with amount",
			input: GenerateInput{WebsiteURL: "https://shop.example", Memo: "invoice", Amount: "12.50"},
		},
		{
			name:  "valid without amount",
			input: GenerateInput{WebsiteURL: "http://shop.example", Memo: "invoice"},
		},
		{
			name:    "missing url",
			input:   GenerateInput{Memo: "invoice"},
			wantErr: "website URL is required",
		},
		{
			name:    "unparseable url",
			input:   GenerateInput{WebsiteURL: "not a url", Memo: "invoice"},
			wantErr: "valid website URL",
		},
		{
			name:    "wrong scheme",
			input:   GenerateInput{WebsiteURL: "ftp://shop.example", Memo: "invoice"},
			wantErr: "valid website URL",
		},
		{
			name:    "blank memo",
			input:   GenerateInput{WebsiteURL: "https://shop.example", Memo: "   "},
			wantErr: "memo is required",
		},
		{
			name:    "negative amount",
			input:   GenerateInput{WebsiteURL: "https://shop.example", Memo: "invoice", Amount: "-1"},
			wantErr: "valid amount",
		},
		{
			name:    "non-numeric amount",
			input:   GenerateInput{WebsiteURL: "https://shop.example", Memo: "invoice", Amount: "abc"},
			wantErr: "valid amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestExtractWebsiteName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://shop.example", "Shop"},
		{"https://www.shop.example.com/checkout", "Shop"},
		{"https://example.com", "Example"},
		{"http://localhost:3000", "Localhost"},
		{"not a url", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractWebsiteName(tt.url), "url %q", tt.url)
	}
}
