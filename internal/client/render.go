package client

import (
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// RenderPNG encodes a QR payload as a PNG at the standard size, using
// high error recovery so printed codes survive damage.
func RenderPNG(data string) ([]byte, error) {
	return qrcode.Encode(data, qrcode.High, qrImageSize)
}

// WritePNG renders the payload straight to a file.
func WritePNG(data, path string) error {
	return qrcode.WriteFile(data, qrcode.High, qrImageSize, path)
}
