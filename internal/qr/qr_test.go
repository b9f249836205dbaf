package qr

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"qr-quiz-service/internal/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := Encode("general-knowledge", 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("encoded data is not a png: %v", err)
	}
	if cfg.Width != DefaultSize {
		t.Fatalf("width = %d, want %d", cfg.Width, DefaultSize)
	}

	text, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if text != "general-knowledge" {
		t.Fatalf("decoded %q", text)
	}
}

func TestDecodeBlankImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode blank: %v", err)
	}

	if _, err := Decode(&buf); !errors.Is(err, domain.ErrInvalidQRCode) {
		t.Fatalf("expected ErrInvalidQRCode, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := DecodeBytes([]byte("not an image")); !errors.Is(err, domain.ErrInvalidQRCode) {
		t.Fatalf("expected ErrInvalidQRCode, got %v", err)
	}
}
