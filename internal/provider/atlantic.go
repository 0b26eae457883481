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
)

// GatewayAtlantic is the canonical gateway identifier for Atlantic.
const GatewayAtlantic = "atlantic"

type AtlanticConfig struct {
	BaseURL string
}

// Atlantic authenticates every call with a static API key in the form body.
// Besides the deposit feed it exposes disbursement and a balance lookup.
type Atlantic struct {
	cfg   AtlanticConfig
	httpc *http.Client
	log   *slog.Logger
}

func NewAtlantic(cfg AtlanticConfig, hc *http.Client, log *slog.Logger) *Atlantic {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Atlantic{cfg: cfg, httpc: hc, log: log}
}

var _ Withdrawer = (*Atlantic)(nil)

func (c *Atlantic) Gateway() string { return GatewayAtlantic }

// Deposit is one entry of the Atlantic deposit history.
type Deposit struct {
	ID         FlexID          `json:"id"`
	ReffID     FlexID          `json:"reff_id"`
	Nominal    string          `json:"nominal"`
	Fee        string          `json:"fee"`
	GetBalance string          `json:"get_balance"`
	Metode     string          `json:"metode"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"created_at"`
	Raw        json.RawMessage `json:"-"`
}

type atlanticEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ListMutations fetches the deposit history. The feed only ever contains
// incoming money, so dir is accepted for interface symmetry and ignored.
func (c *Atlantic) ListMutations(ctx context.Context, cred AtlanticCredential, _ Direction) ([]Deposit, error) {
	form := url.Values{"api_key": {cred.APIKey}}

	env, err := c.postForm(ctx, "/deposit/riwayat", form)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode deposit list: %w", err)}
	}

	out := make([]Deposit, 0, len(items))
	for _, item := range items {
		var d Deposit
		if err := json.Unmarshal(item, &d); err != nil {
			return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode deposit record: %w", err)}
		}
		d.Raw = item
		out = append(out, d)
	}
	return out, nil
}

// Withdraw requests a disbursement to a bank account.
func (c *Atlantic) Withdraw(ctx context.Context, cred AtlanticCredential, amount int64, dest WithdrawDestination) (*WithdrawResult, error) {
	form := url.Values{
		"api_key":        {cred.APIKey},
		"nominal":        {strconv.FormatInt(amount, 10)},
		"bank_code":      {dest.BankCode},
		"account_number": {dest.AccountNumber},
	}

	env, err := c.postForm(ctx, "/transfer/create", form)
	if err != nil {
		return nil, err
	}

	var data struct {
		ID FlexID `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode withdraw result: %w", err)}
	}
	return &WithdrawResult{Gateway: c.Gateway(), RefID: string(data.ID), Raw: env.Data}, nil
}

// GetBalance reads the current account balance.
func (c *Atlantic) GetBalance(ctx context.Context, cred AtlanticCredential) (*Balance, error) {
	form := url.Values{"api_key": {cred.APIKey}}

	env, err := c.postForm(ctx, "/get_profile", form)
	if err != nil {
		return nil, err
	}

	var data struct {
		Balance json.Number `json:"balance"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode balance: %w", err)}
	}
	amount, err := data.Balance.Int64()
	if err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("balance %q: %w", data.Balance.String(), err)}
	}
	return &Balance{Gateway: c.Gateway(), Amount: amount, Raw: env.Data}, nil
}

func (c *Atlantic) postForm(ctx context.Context, path string, form url.Values) (*atlanticEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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

	var env atlanticEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Gateway: c.Gateway(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if !env.Status {
		return nil, &AuthError{Gateway: c.Gateway(), StatusCode: resp.StatusCode, Body: body}
	}
	return &env, nil
}
