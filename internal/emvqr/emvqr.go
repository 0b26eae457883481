// Package emvqr edits EMVCo merchant-presented QR (QRIS) payloads. Its one
// job is turning a merchant's static, amount-less code into a dynamic code
// bound to a single transaction amount.
package emvqr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/padipay/qris-gateway/internal/crc16"
)

var (
	// ErrMalformedTemplate means the template has no 5802ID country code
	// tag, the anchor the amount tag is spliced in front of.
	ErrMalformedTemplate = errors.New("qris template: country code tag 5802ID not found")
	ErrTemplateTooShort  = errors.New("qris template too short")
	ErrInvalidAmount     = errors.New("amount must be at least 1")
)

const (
	initStatic  = "010211"
	initDynamic = "010212"
	countryTag  = "5802ID"
	crcHeader   = "6304"
)

// DynamicQR is an amount-bound QRIS payload ready to be rendered for a payer.
type DynamicQR struct {
	QRString string `json:"qr_string"`
	Amount   int64  `json:"amount"`
}

// MakeDynamic derives a dynamic QR from staticQR with amount (in minor
// currency units) embedded as tag 54 immediately before the country code tag,
// recomputing the trailing CRC16 over the edited payload.
//
// The input must be a static template: feeding a dynamic output back in would
// duplicate the amount tag and initiation marker. Guarding against that is
// the caller's responsibility.
func MakeDynamic(staticQR string, amount int64) (*DynamicQR, error) {
	if amount < 1 {
		return nil, ErrInvalidAmount
	}
	// Tag 63 header + 2-digit length + 4 hex CRC digits.
	if len(staticQR) <= 8 {
		return nil, ErrTemplateTooShort
	}

	body := staticQR[:len(staticQR)-8]
	// Flip the point-of-initiation method to dynamic. Templates without the
	// marker pass through unmodified.
	body = strings.Replace(body, initStatic, initDynamic, 1)

	idx := strings.Index(body, countryTag)
	if idx < 0 {
		return nil, ErrMalformedTemplate
	}

	amt := strconv.FormatInt(amount, 10)
	out := body[:idx] + "54" + fmt.Sprintf("%02d", len(amt)) + amt + body[idx:] + crcHeader
	out += crc16.Hex([]byte(out))

	return &DynamicQR{QRString: out, Amount: amount}, nil
}
