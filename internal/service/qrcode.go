package service

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// TipQRGenerator renders a staff payment reference as a QR code so guests
// can scan it to tip.
type TipQRGenerator struct{}

func (TipQRGenerator) Generate(paymentRef string) ([]byte, error) {
	if paymentRef == "" {
		return nil, errors.New("empty payment reference")
	}
	return qrcode.Encode(paymentRef, qrcode.Medium, 256)
}
