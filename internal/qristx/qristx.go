// Package qristx synthesizes payable QRIS transactions: fee arithmetic,
// transaction identifiers and the amount-bound QR artifact.
package qristx

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/padipay/qris-gateway/internal/emvqr"
)

// DefaultValidity is how long a synthesized QR stays payable. The gateway
// only stamps ExpiresAt; enforcing it is the caller's job.
const DefaultValidity = 5 * time.Minute

// Transaction is a payable QR artifact for one requested amount. Total, not
// Amount, is what the payer is charged and what the QR encodes.
type Transaction struct {
	ID        string    `json:"id"`
	Gateway   string    `json:"gateway"`
	Amount    int64     `json:"amount"`
	Fee       int64     `json:"fee"`
	Total     int64     `json:"total"`
	QRString  string    `json:"qr_string"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Synthesizer builds transactions. The clock is injectable for tests.
type Synthesizer struct {
	validity time.Duration
	now      func() time.Time
}

func NewSynthesizer(validity time.Duration) *Synthesizer {
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &Synthesizer{validity: validity, now: time.Now}
}

// Fee computes ceil(amount * feePercent / 100) in exact decimal arithmetic.
func Fee(amount int64, feePercent decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).
		Mul(feePercent).
		Div(decimal.NewFromInt(100)).
		Ceil().
		IntPart()
}

// Create charges fee on top of amount, binds the total into the merchant's
// static QR and stamps the validity window. Codec errors propagate unchanged.
func (s *Synthesizer) Create(amount int64, staticQR, gatewayName string, feePercent decimal.Decimal) (*Transaction, error) {
	if amount < 1 {
		return nil, emvqr.ErrInvalidAmount
	}

	fee := Fee(amount, feePercent)
	total := amount + fee

	dyn, err := emvqr.MakeDynamic(staticQR, total)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	id, err := NewID(gatewayName, now)
	if err != nil {
		return nil, fmt.Errorf("transaction id: %w", err)
	}

	return &Transaction{
		ID:        id,
		Gateway:   gatewayName,
		Amount:    amount,
		Fee:       fee,
		Total:     total,
		QRString:  dyn.QRString,
		CreatedAt: now,
		ExpiresAt: now.Add(s.validity),
	}, nil
}

// NewID builds "{GATEWAY}-{yyyyMMddHHmmss}-{6 random base36 chars}", all
// uppercase, timestamp in UTC. Collisions are negligible and the caller's
// unique index catches them at write time anyway.
func NewID(gatewayName string, now time.Time) (string, error) {
	suffix, err := randomBase36(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s",
		strings.ToUpper(gatewayName), now.UTC().Format("20060102150405"), suffix), nil
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomBase36 draws uniform characters via rejection sampling: only bytes
// below 252 (the largest multiple of 36) are accepted before the modulo.
func randomBase36(count int) (string, error) {
	const threshold = 252
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 32)
	for sb.Len() < count {
		n, err := rand.Read(buf)
		if err != nil {
			return "", err
		}
		for i := 0; i < n && sb.Len() < count; i++ {
			if buf[i] < threshold {
				sb.WriteByte(base36[int(buf[i])%36])
			}
		}
	}
	return sb.String(), nil
}
