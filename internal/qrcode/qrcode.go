// Package qrcode renders the printable images for QR code records.
package qrcode

import (
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"

	"restaurantcore/pkg/domain"
)

// Size bounds for rendered images, in pixels.
const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 2048
)

// Content returns the text encoded for code. Codes without a URL fall back to
// an internal link naming the kind and record id.
func Content(code domain.QRCode) string {
	if code.URL != "" {
		return code.URL
	}
	if code.Kind == domain.QRTable && code.TableID != nil {
		return fmt.Sprintf("restaurantcore://%s/%s", code.Kind, *code.TableID)
	}
	return fmt.Sprintf("restaurantcore://%s/%s", code.Kind, code.ID)
}

// PNG renders code as a square PNG of size pixels with a quiet border.
func PNG(code domain.QRCode, size int) ([]byte, error) {
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("qr size %d outside [%d, %d]", size, MinSize, MaxSize)
	}
	qr, err := goqrcode.New(Content(code), goqrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code %s: %w", code.ID, err)
	}
	qr.DisableBorder = false
	return qr.PNG(size)
}
