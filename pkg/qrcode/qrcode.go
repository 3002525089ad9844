package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders QR codes that point visitors at a memorial's public page.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateQRCode returns a PNG QR code for the memorial's URL slug.
func (s *QRService) GenerateQRCode(memorialSlug string, size int) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", s.baseURL, memorialSlug)

	png, err := qrcode.Encode(fullURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
