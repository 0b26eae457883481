// Package signing derives authentication signatures for provider requests.
// Each provider ships its own undocumented scheme; they all fit behind the
// Signer contract so clients never care which one they carry.
package signing

import (
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Signer derives a request signature from parameter values and a timestamp.
// Implementations must be deterministic, independent of parameter insertion
// order, and safe for concurrent use.
type Signer interface {
	Sign(params map[string]string, timestamp string) string
}

// LengthPrefixSHA512 is the scheme the OrderKuota mobile API expects: every
// parameter value (keys are ignored) is prefixed with its own decimal length,
// the prefixed values are sorted byte-lexicographically and concatenated
// after the timestamp with no delimiter, and the result is SHA-512 digested
// to lowercase hex.
//
// Duplicate values are not collapsed; each occurrence contributes to the
// digest, matching observed provider behavior.
type LengthPrefixSHA512 struct{}

func (LengthPrefixSHA512) Sign(params map[string]string, timestamp string) string {
	prefixed := make([]string, 0, len(params))
	for _, v := range params {
		prefixed = append(prefixed, strconv.Itoa(len(v))+v)
	}
	sort.Strings(prefixed)

	var sb strings.Builder
	sb.WriteString(timestamp)
	for _, p := range prefixed {
		sb.WriteString(p)
	}

	sum := sha512.Sum512([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
