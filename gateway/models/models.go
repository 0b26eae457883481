// Package models holds the request and response shapes of the gateway's
// reference HTTP surface.
package models

// Response is the envelope every endpoint answers with. Success is the
// discriminator; Error is set only on failure.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type LoginRequest struct {
	Gateway  string `json:"gateway"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type GetTokenRequest struct {
	Gateway  string `json:"gateway"`
	Username string `json:"username"`
	OTP      string `json:"otp"`
}

// MutationsRequest carries the union of per-provider credential fields; the
// gateway value decides which ones are read.
type MutationsRequest struct {
	Gateway      string `json:"gateway"`
	Direction    string `json:"direction,omitempty"`
	Username     string `json:"username,omitempty"`
	Token        string `json:"token,omitempty"`
	MerchantCode string `json:"merchant_code,omitempty"`
	APIKey       string `json:"api_key,omitempty"`
}

type CreateTransactionRequest struct {
	Amount     int64   `json:"amount"`
	QRString   string  `json:"qr_string"`
	Gateway    string  `json:"gateway"`
	FeePercent float64 `json:"fee_percent"`
}

type WithdrawRequest struct {
	Gateway       string `json:"gateway"`
	APIKey        string `json:"api_key"`
	Amount        int64  `json:"amount"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
}

type BalanceRequest struct {
	Gateway string `json:"gateway"`
	APIKey  string `json:"api_key"`
}
