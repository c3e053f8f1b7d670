// services/qrcode_service.go
package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can swap it out.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// ErrNoUPIID is returned when no collection id is configured.
var ErrNoUPIID = errors.New("no UPI ID configured")

// UPIPaymentURI builds the upi://pay link scanned by payment apps. A zero
// amount leaves the amount for the payer to enter.
func UPIPaymentURI(upiID, payeeName string, amount decimal.Decimal) (string, error) {
	upiID = strings.TrimSpace(upiID)
	if upiID == "" {
		return "", ErrNoUPIID
	}
	q := url.Values{}
	q.Set("pa", upiID)
	if payeeName != "" {
		q.Set("pn", payeeName)
	}
	if amount.IsPositive() {
		q.Set("am", amount.StringFixed(2))
	}
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode(), nil
}

// GenerateQRCode renders content as a size x size PNG.
func GenerateQRCode(content string, size int, encode QRCodeEncoder) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if encode == nil {
		encode = qrcode.Encode
	}
	png, err := encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}

// GenerateUPIQRCode renders the deposit QR for the configured UPI id.
func GenerateUPIQRCode(upiID, payeeName string, amount decimal.Decimal, size int, encode QRCodeEncoder) ([]byte, error) {
	uri, err := UPIPaymentURI(upiID, payeeName, amount)
	if err != nil {
		return nil, err
	}
	return GenerateQRCode(uri, size, encode)
}
