package qristx

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/padipay/qris-gateway/internal/emvqr"
)

const staticQR = "00020101021126610014COM.GO-JEK.WWW01189360091432512345670210G7312345670303UMI51440014ID.CO.QRIS.WWW0215ID10221098765430303UMI5204481253033605802ID5912PADI STORE 16007JAKARTA61051234562070703A0163048A2D"

var idPattern = regexp.MustCompile(`^[A-Z]+-\d{8}\d{6}-[A-Z0-9]{6}$`)

func TestFee(t *testing.T) {
	cases := []struct {
		amount  int64
		percent string
		want    int64
	}{
		{50000, "0.7", 350},
		{10000, "0.7", 70},
		{100, "0.7", 1},    // 0.7 rounds up
		{1, "0.7", 1},      // 0.007 rounds up
		{10000, "0", 0},
		{9999, "1", 100},   // 99.99 rounds up
		{10000, "1.5", 150},
	}
	for _, c := range cases {
		pct, err := decimal.NewFromString(c.percent)
		require.NoError(t, err)
		require.Equal(t, c.want, Fee(c.amount, pct), "fee of %d at %s%%", c.amount, c.percent)
	}
}

func TestCreate(t *testing.T) {
	fixed := time.Date(2025, time.December, 11, 12, 44, 30, 0, time.UTC)
	s := NewSynthesizer(0)
	s.now = func() time.Time { return fixed }

	tx, err := s.Create(50000, staticQR, "orderkuota", decimal.RequireFromString("0.7"))
	require.NoError(t, err)

	require.Equal(t, int64(50000), tx.Amount)
	require.Equal(t, int64(350), tx.Fee)
	require.Equal(t, int64(50350), tx.Total)
	require.Equal(t, "orderkuota", tx.Gateway)

	require.Regexp(t, idPattern, tx.ID)
	require.True(t, strings.HasPrefix(tx.ID, "ORDERKUOTA-20251211124430-"), "id was %s", tx.ID)

	// The QR encodes the total, not the gross amount.
	require.Contains(t, tx.QRString, "5405503505802ID")

	require.Equal(t, fixed, tx.CreatedAt)
	require.Equal(t, fixed.Add(DefaultValidity), tx.ExpiresAt)
}

func TestCreate_CodecErrorsPropagate(t *testing.T) {
	s := NewSynthesizer(0)
	_, err := s.Create(1000, "no anchor here padded past eight", "qiospay", decimal.Zero)
	require.ErrorIs(t, err, emvqr.ErrMalformedTemplate)

	_, err = s.Create(0, staticQR, "qiospay", decimal.Zero)
	require.ErrorIs(t, err, emvqr.ErrInvalidAmount)
}

func TestCreate_CustomValidity(t *testing.T) {
	s := NewSynthesizer(90 * time.Second)
	tx, err := s.Create(1000, staticQR, "atlantic", decimal.Zero)
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, tx.ExpiresAt.Sub(tx.CreatedAt))
}

func TestNewID_Randomness(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := NewID("qiospay", now)
		require.NoError(t, err)
		require.Regexp(t, idPattern, id)
		seen[id] = true
	}
	// 200 draws of 6 base36 chars colliding would mean broken randomness.
	require.Len(t, seen, 200)
}
