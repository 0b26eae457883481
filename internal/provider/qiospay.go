package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// GatewayQiosPay is the canonical gateway identifier for QiosPay.
const GatewayQiosPay = "qiospay"

type QiosPayConfig struct {
	BaseURL string
}

// QiosPay authenticates with a static merchant code and API key embedded in
// the endpoint path; there is no login flow and no request signing.
type QiosPay struct {
	cfg   QiosPayConfig
	httpc *http.Client
	log   *slog.Logger
}

func NewQiosPay(cfg QiosPayConfig, hc *http.Client, log *slog.Logger) *QiosPay {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &QiosPay{cfg: cfg, httpc: hc, log: log}
}

func (c *QiosPay) Gateway() string { return GatewayQiosPay }

// QiosMutation is one entry of the QiosPay QRIS mutation feed.
type QiosMutation struct {
	Date       string          `json:"date"`
	Amount     string          `json:"amount"`
	Type       string          `json:"type"`
	QRIS       string          `json:"qris"`
	BrandName  string          `json:"brand_name"`
	IssuerReff FlexID          `json:"issuer_reff"`
	BuyerReff  FlexID          `json:"buyer_reff"`
	Balance    string          `json:"balance"`
	Raw        json.RawMessage `json:"-"`
}

type qiosPayEnvelope struct {
	Status bool              `json:"status"`
	Msg    string            `json:"msg"`
	Data   []json.RawMessage `json:"data"`
}

// ListMutations fetches the merchant's QRIS feed. The feed carries both
// credit and debit entries; direction filtering happens in the normalizer,
// so dir is accepted for interface symmetry and ignored here.
func (c *QiosPay) ListMutations(ctx context.Context, cred QiosPayCredential, _ Direction) ([]QiosMutation, error) {
	path := fmt.Sprintf("/api/mutasi/qris/%s/%s",
		url.PathEscape(cred.MerchantCode), url.PathEscape(cred.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("build request: %w", err)}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("mutations: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthError{Gateway: c.Gateway(), StatusCode: resp.StatusCode, Body: body}
	}
	if resp.StatusCode/100 != 2 {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("mutations status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var env qiosPayEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Status {
		return nil, &AuthError{Gateway: c.Gateway(), StatusCode: resp.StatusCode, Body: body}
	}

	out := make([]QiosMutation, 0, len(env.Data))
	for _, item := range env.Data {
		var m QiosMutation
		if err := json.Unmarshal(item, &m); err != nil {
			return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode mutation record: %w", err)}
		}
		m.Raw = item
		out = append(out, m)
	}
	return out, nil
}
