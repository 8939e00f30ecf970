package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type ReceiptGenerator interface {
	Generate(area, orderID string) ([]byte, error)
}

// QRReceiptGenerator encodes the order lookup URL as a PNG QR code.
type QRReceiptGenerator struct {
	BaseURL string
}

func (g QRReceiptGenerator) Generate(area, orderID string) ([]byte, error) {
	data := fmt.Sprintf("%s/api/orders/%s/%s", g.BaseURL, area, orderID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
