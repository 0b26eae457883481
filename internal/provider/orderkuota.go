package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"github.com/padipay/qris-gateway/internal/signing"
)

// GatewayOrderKuota is the canonical gateway identifier for OrderKuota.
const GatewayOrderKuota = "orderkuota"

// OrderKuotaConfig carries the request identity the OrderKuota mobile API
// expects on every call. These values rotate with app releases, so they are
// configuration, not literals at call sites.
type OrderKuotaConfig struct {
	BaseURL             string
	AppVersionName      string
	AppVersionCode      string
	AppRegID            string
	PhoneModel          string
	PhoneAndroidVersion string
}

// OrderKuota authenticates with a username plus composite token and signs
// every request with the length-prefix SHA-512 scheme. Login is a two-step
// OTP flow: Login dispatches the OTP, ExchangeToken swaps it for a token.
type OrderKuota struct {
	cfg    OrderKuotaConfig
	signer signing.Signer
	httpc  *http.Client
	log    *slog.Logger
}

func NewOrderKuota(cfg OrderKuotaConfig, signer signing.Signer, hc *http.Client, log *slog.Logger) *OrderKuota {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if signer == nil {
		signer = signing.LengthPrefixSHA512{}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &OrderKuota{cfg: cfg, signer: signer, httpc: hc, log: log}
}

var _ Authenticator = (*OrderKuota)(nil)

func (c *OrderKuota) Gateway() string { return GatewayOrderKuota }

// QrisMutation is one entry of the OrderKuota QRIS history feed. Raw holds
// the undecoded original entry for auditability.
type QrisMutation struct {
	ID         FlexID          `json:"id"`
	Debet      string          `json:"debet"`
	Kredit     string          `json:"kredit"`
	Keterangan string          `json:"keterangan"`
	Tanggal    string          `json:"tanggal"`
	Status     string          `json:"status"`
	BrandName  string          `json:"brand_name"`
	Balance    string          `json:"balance"`
	Raw        json.RawMessage `json:"-"`
}

type orderKuotaEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Results json.RawMessage `json:"results"`
}

// Login sends the first factor. OrderKuota responds by dispatching an OTP to
// the account owner out of band.
func (c *OrderKuota) Login(ctx context.Context, username, password string) (*PendingAuth, error) {
	form := c.deviceForm()
	form.Set("username", username)
	form.Set("password", password)

	env, err := c.postForm(ctx, "/api/v2/login", form, false)
	if err != nil {
		return nil, err
	}
	return &PendingAuth{Gateway: c.Gateway(), Message: env.Message}, nil
}

// ExchangeToken swaps the OTP for the composite "{accountID}:{secret}" token.
func (c *OrderKuota) ExchangeToken(ctx context.Context, username, otp string) (*AuthToken, error) {
	form := c.deviceForm()
	form.Set("username", username)
	form.Set("password", otp)

	env, err := c.postForm(ctx, "/api/v2/get_token", form, false)
	if err != nil {
		return nil, err
	}

	var results struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Results, &results); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode token results: %w", err)}
	}
	if results.Token == "" {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("provider returned no token")}
	}
	return &AuthToken{Gateway: c.Gateway(), Token: results.Token}, nil
}

// ListMutations fetches the QRIS history for the account half of the token.
func (c *OrderKuota) ListMutations(ctx context.Context, cred OrderKuotaCredential, dir Direction) ([]QrisMutation, error) {
	accountID, secret, err := SplitToken(cred.Token)
	if err != nil {
		return nil, err
	}

	form := c.deviceForm()
	form.Set("auth_username", cred.Username)
	form.Set("auth_token", secret)
	form.Set("jenis", mutationKind(dir))

	env, err := c.postForm(ctx, "/api/v2/qris/mutasi/"+url.PathEscape(accountID), form, true)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(env.Results, &items); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode mutation list: %w", err)}
	}

	out := make([]QrisMutation, 0, len(items))
	for _, item := range items {
		var m QrisMutation
		if err := json.Unmarshal(item, &m); err != nil {
			return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode mutation record: %w", err)}
		}
		m.Raw = item
		out = append(out, m)
	}
	return out, nil
}

func (c *OrderKuota) deviceForm() url.Values {
	return url.Values{
		"app_reg_id":            {c.cfg.AppRegID},
		"app_version_code":      {c.cfg.AppVersionCode},
		"app_version_name":      {c.cfg.AppVersionName},
		"phone_model":           {c.cfg.PhoneModel},
		"phone_android_version": {c.cfg.PhoneAndroidVersion},
	}
}

func mutationKind(dir Direction) string {
	if dir == DirectionOut {
		return "keluar"
	}
	return "masuk"
}

// postForm posts a form-urlencoded body, optionally signed, and decodes the
// standard OrderKuota envelope. Provider failures keep the raw payload.
func (c *OrderKuota) postForm(ctx context.Context, path string, form url.Values, signed bool) (*orderKuotaEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if signed {
		ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
		params := make(map[string]string, len(form))
		for k := range form {
			params[k] = form.Get(k)
		}
		req.Header.Set("Timestamp", ts)
		req.Header.Set("Signature", c.signer.Sign(params, ts))
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("%s: %w", path, err)}
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
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("%s status=%d body=%s", path, resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var env orderKuotaEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Success {
		// The provider reports auth and business failures through the same
		// 200 envelope; surface its payload untouched.
		return nil, &AuthError{Gateway: c.Gateway(), StatusCode: resp.StatusCode, Body: body}
	}
	return &env, nil
}
