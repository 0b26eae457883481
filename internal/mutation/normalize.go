package mutation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/padipay/qris-gateway/internal/provider"
)

// Provider timestamps carry no zone information; all three integrations are
// observed to report wall clock time in UTC+7.
var providerZone = time.FixedZone("WIB", 7*60*60)

// Normalizer maps raw provider records to Normalized ones. Records that fail
// the per-record rules (non-numeric amount) are dropped with a logged
// diagnostic, never propagated with defaulted values.
type Normalizer struct {
	log *slog.Logger
}

func NewNormalizer(log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{log: log}
}

// FromOrderKuota keeps incoming entries (status "IN"). The ref_id fallback
// chain is id, then keterangan; the description is free text and only a last
// resort.
func (n *Normalizer) FromOrderKuota(records []provider.QrisMutation) []Normalized {
	out := make([]Normalized, 0, len(records))
	for _, r := range records {
		if !strings.EqualFold(r.Status, "IN") {
			continue
		}
		amount, err := parseAmount(r.Kredit)
		if err != nil {
			n.dropped(provider.GatewayOrderKuota, string(r.ID), err)
			continue
		}
		out = append(out, Normalized{
			RefID:   firstNonEmpty(string(r.ID), r.Keterangan),
			Amount:  amount,
			Status:  StatusPaid,
			PaidAt:  parseWhen("02/01/2006 15:04", r.Tanggal),
			Gateway: provider.GatewayOrderKuota,
			Raw:     r.Raw,
		})
	}
	return out
}

// FromQiosPay keeps credit entries (type "CR"). The ref_id fallback chain is
// issuer_reff, then buyer_reff.
func (n *Normalizer) FromQiosPay(records []provider.QiosMutation) []Normalized {
	out := make([]Normalized, 0, len(records))
	for _, r := range records {
		if !strings.EqualFold(r.Type, "CR") {
			continue
		}
		amount, err := parseAmount(r.Amount)
		if err != nil {
			n.dropped(provider.GatewayQiosPay, string(r.IssuerReff), err)
			continue
		}
		out = append(out, Normalized{
			RefID:   firstNonEmpty(string(r.IssuerReff), string(r.BuyerReff)),
			Amount:  amount,
			Status:  StatusPaid,
			PaidAt:  parseWhen("2006-01-02 15:04:05", r.Date),
			Gateway: provider.GatewayQiosPay,
			Raw:     r.Raw,
		})
	}
	return out
}

// FromAtlantic keeps settled deposits (status "success"); pending, expired
// and cancelled entries are not money yet. The ref_id fallback chain is
// reff_id, then id.
func (n *Normalizer) FromAtlantic(records []provider.Deposit) []Normalized {
	out := make([]Normalized, 0, len(records))
	for _, r := range records {
		if !strings.EqualFold(r.Status, "success") {
			continue
		}
		amount, err := parseAmount(r.Nominal)
		if err != nil {
			n.dropped(provider.GatewayAtlantic, string(r.ID), err)
			continue
		}
		out = append(out, Normalized{
			RefID:   firstNonEmpty(string(r.ReffID), string(r.ID)),
			Amount:  amount,
			Status:  StatusPaid,
			PaidAt:  parseWhen("2006-01-02 15:04:05", r.CreatedAt),
			Gateway: provider.GatewayAtlantic,
			Raw:     r.Raw,
		})
	}
	return out
}

func (n *Normalizer) dropped(gateway, id string, err error) {
	n.log.Warn("dropping mutation record",
		slog.String("gateway", gateway),
		slog.String("id", id),
		slog.Any("err", err),
	)
}

var separators = strings.NewReplacer(".", "", ",", "")

// parseAmount strips thousands separators and parses minor currency units.
func parseAmount(s string) (int64, error) {
	cleaned := separators.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not numeric", s)
	}
	return v, nil
}

// parseWhen interprets value in the provider zone. Unparseable values
// normalize to nil, never to the current time.
func parseWhen(layout, value string) *time.Time {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), providerZone)
	if err != nil {
		return nil
	}
	return &t
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
