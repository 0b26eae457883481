// Package provider contains the HTTP clients for the third-party QRIS
// payment providers the gateway integrates with. Each client speaks its
// provider's own undocumented dialect and exposes only the capabilities that
// provider actually supports.
//
// Clients hold no credential or token state; every call receives the
// credential it needs, so one client instance is safe for concurrent use
// across tenants.
package provider

import (
	"context"
	"encoding/json"
)

// Direction selects which side of the ledger a mutation listing covers.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// PendingAuth reports that the first authentication factor was accepted and
// the provider dispatched a second factor (OTP) out of band.
type PendingAuth struct {
	Gateway string `json:"gateway"`
	Message string `json:"message,omitempty"`
}

// AuthToken is the provider-defined token returned by the OTP exchange. Its
// shape is opaque except where a composite token must be split to address a
// path-scoped endpoint (see SplitToken).
type AuthToken struct {
	Gateway string `json:"gateway"`
	Token   string `json:"token"`
}

// WithdrawDestination is the payout target for providers with disbursement.
type WithdrawDestination struct {
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
}

// WithdrawResult echoes the provider's acceptance of a disbursement request.
// Raw keeps the untouched provider payload for diagnostics.
type WithdrawResult struct {
	Gateway string          `json:"gateway"`
	RefID   string          `json:"ref_id,omitempty"`
	Raw     json.RawMessage `json:"raw"`
}

// Balance is a provider account balance in minor currency units.
type Balance struct {
	Gateway string          `json:"gateway"`
	Amount  int64           `json:"amount"`
	Raw     json.RawMessage `json:"raw"`
}

// Credential variants, one per provider capability set. The encrypted store
// that owns them lives in the calling system; clients consume them per call
// and never retain them.
type OrderKuotaCredential struct {
	Username string
	Token    string
}

type QiosPayCredential struct {
	MerchantCode string
	APIKey       string
}

type AtlanticCredential struct {
	APIKey string
}

// Authenticator covers providers whose API sits behind an OTP login flow.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*PendingAuth, error)
	ExchangeToken(ctx context.Context, username, otp string) (*AuthToken, error)
}

// Withdrawer covers providers that expose disbursement.
type Withdrawer interface {
	Withdraw(ctx context.Context, cred AtlanticCredential, amount int64, dest WithdrawDestination) (*WithdrawResult, error)
}
