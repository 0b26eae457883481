// Package mutation normalizes provider mutation feeds into the one canonical
// record shape the downstream reconciliation job matches against pending
// orders. Field-presence ambiguity in provider records stops here: past this
// package every record is fully typed.
package mutation

import (
	"encoding/json"
	"time"
)

// StatusPaid is the only status a normalized record can carry today: records
// that survive the credit filter are settled payments by definition.
const StatusPaid = "paid"

// Normalized is the canonical mutation record.
//
// RefID is the dedup key the caller persists against a matched order. It is
// the best identifier the provider supplied, chosen by an ordered fallback
// chain; it is NOT guaranteed unique across a provider's stream. When every
// candidate field is empty RefID is "" and the caller decides whether to
// accept the record — this package never invents identifiers.
type Normalized struct {
	RefID   string          `json:"ref_id"`
	Amount  int64           `json:"amount"`
	Status  string          `json:"status"`
	PaidAt  *time.Time      `json:"paid_at"`
	Gateway string          `json:"gateway"`
	Raw     json.RawMessage `json:"raw"`
}
