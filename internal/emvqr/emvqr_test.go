package emvqr_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padipay/qris-gateway/internal/crc16"
	"github.com/padipay/qris-gateway/internal/emvqr"
)

// A realistic static QRIS template with a valid trailing CRC.
const staticQR = "00020101021126610014COM.GO-JEK.WWW01189360091432512345670210G7312345670303UMI51440014ID.CO.QRIS.WWW0215ID10221098765430303UMI5204481253033605802ID5912PADI STORE 16007JAKARTA61051234562070703A0163048A2D"

func TestMakeDynamic_Golden(t *testing.T) {
	const want = "00020101021226610014COM.GO-JEK.WWW01189360091432512345670210G7312345670303UMI51440014ID.CO.QRIS.WWW0215ID10221098765430303UMI5204481253033605405100005802ID5912PADI STORE 16007JAKARTA61051234562070703A0163041838"

	dyn, err := emvqr.MakeDynamic(staticQR, 10000)
	require.NoError(t, err)
	require.Equal(t, want, dyn.QRString)
	require.Equal(t, int64(10000), dyn.Amount)
}

func TestMakeDynamic_Properties(t *testing.T) {
	for _, amount := range []int64{1, 9, 150, 10000, 50350, 99999999} {
		dyn, err := emvqr.MakeDynamic(staticQR, amount)
		require.NoError(t, err)

		qr := dyn.QRString

		// Trailing 4 characters are the CRC of everything before them.
		require.Equal(t, crc16.Hex([]byte(qr[:len(qr)-4])), qr[len(qr)-4:])

		// Exactly one amount tag, spliced immediately before 5802ID.
		amt := strconv.FormatInt(amount, 10)
		tag := fmt.Sprintf("54%02d%s", len(amt), amt)
		require.Equal(t, 1, strings.Count(qr, tag+"5802ID"), "amount tag must sit before country code in %s", qr)

		// Initiation method flipped to dynamic.
		require.Contains(t, qr, "010212")
		require.NotContains(t, qr, "010211")
	}
}

func TestMakeDynamic_ChecksumIsFresh(t *testing.T) {
	dyn, err := emvqr.MakeDynamic(staticQR, 10000)
	require.NoError(t, err)
	require.NotEqual(t, staticQR[len(staticQR)-4:], dyn.QRString[len(dyn.QRString)-4:])
}

func TestMakeDynamic_MissingCountryCode(t *testing.T) {
	// Same template with the 5802ID anchor removed.
	broken := strings.Replace(staticQR, "5802ID", "", 1)
	dyn, err := emvqr.MakeDynamic(broken, 10000)
	require.ErrorIs(t, err, emvqr.ErrMalformedTemplate)
	require.Nil(t, dyn)
}

func TestMakeDynamic_Preconditions(t *testing.T) {
	_, err := emvqr.MakeDynamic(staticQR, 0)
	require.ErrorIs(t, err, emvqr.ErrInvalidAmount)

	_, err = emvqr.MakeDynamic(staticQR, -5)
	require.ErrorIs(t, err, emvqr.ErrInvalidAmount)

	_, err = emvqr.MakeDynamic("", 100)
	require.ErrorIs(t, err, emvqr.ErrTemplateTooShort)

	_, err = emvqr.MakeDynamic("63041234", 100)
	require.ErrorIs(t, err, emvqr.ErrTemplateTooShort)
}

func TestMakeDynamic_TolerantOfMissingInitiationMarker(t *testing.T) {
	// Strip the 010211 tag entirely; conversion still succeeds.
	noMarker := strings.Replace(staticQR, "010211", "", 1)
	dyn, err := emvqr.MakeDynamic(noMarker, 2500)
	require.NoError(t, err)
	require.Contains(t, dyn.QRString, "540425005802ID")
}
