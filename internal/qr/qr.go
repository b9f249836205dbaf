// Package qr renders quiz ids as QR images and reads them back.
package qr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"

	"qr-quiz-service/internal/domain"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// Encode renders text as a PNG QR code of size x size pixels.
func Encode(text string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// Decode reads the text of the first QR code in a PNG or JPEG image.
// Unreadable images yield domain.ErrInvalidQRCode.
func Decode(r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidQRCode, err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidQRCode, err)
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidQRCode, err)
	}
	return result.GetText(), nil
}

// DecodeBytes is Decode over an in-memory image.
func DecodeBytes(data []byte) (string, error) {
	return Decode(bytes.NewReader(data))
}
