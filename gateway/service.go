package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"github.com/padipay/qris-gateway/gateway/models"
	"github.com/padipay/qris-gateway/internal/mutation"
	"github.com/padipay/qris-gateway/internal/provider"
	"github.com/padipay/qris-gateway/internal/qristx"
	"github.com/padipay/qris-gateway/internal/signing"
	"github.com/padipay/qris-gateway/pkg/metrics"
)

var (
	// ErrUnsupportedGateway is returned at dispatch for gateway names no
	// client is registered under.
	ErrUnsupportedGateway = errors.New("unsupported gateway")
	// ErrUnsupportedOperation is returned when a known gateway lacks the
	// requested capability (e.g. withdrawal on OrderKuota).
	ErrUnsupportedOperation = errors.New("operation not supported by gateway")
)

// Service dispatches caller requests to the right provider client and runs
// the results through the normalizer or the transaction synthesizer. It is
// stateless; concurrent calls with distinct credentials need no coordination.
type Service struct {
	orderKuota *provider.OrderKuota
	qiosPay    *provider.QiosPay
	atlantic   *provider.Atlantic
	normalizer *mutation.Normalizer
	synth      *qristx.Synthesizer
	log        *slog.Logger
}

func NewService(cfg *Config, log *slog.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	hc := &http.Client{Timeout: 15 * time.Second}
	return &Service{
		orderKuota: provider.NewOrderKuota(cfg.OrderKuota, signing.LengthPrefixSHA512{}, hc, log),
		qiosPay:    provider.NewQiosPay(cfg.QiosPay, hc, log),
		atlantic:   provider.NewAtlantic(cfg.Atlantic, hc, log),
		normalizer: mutation.NewNormalizer(log),
		synth:      qristx.NewSynthesizer(cfg.TransactionValidity),
		log:        log,
	}
}

// Login triggers the provider's OTP dispatch. Only OrderKuota has a login
// flow; it is also the default when the gateway field is omitted.
func (s *Service) Login(ctx context.Context, gatewayName, username, password string) (*provider.PendingAuth, error) {
	switch gatewayName {
	case provider.GatewayOrderKuota, "":
		start := time.Now()
		auth, err := s.orderKuota.Login(ctx, username, password)
		track(provider.GatewayOrderKuota, "login", start, err)
		return auth, err
	case provider.GatewayQiosPay, provider.GatewayAtlantic:
		return nil, fmt.Errorf("%w: %s uses static API keys", ErrUnsupportedOperation, gatewayName)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, gatewayName)
	}
}

// ExchangeToken swaps an OTP for the provider token.
func (s *Service) ExchangeToken(ctx context.Context, gatewayName, username, otp string) (*provider.AuthToken, error) {
	switch gatewayName {
	case provider.GatewayOrderKuota, "":
		start := time.Now()
		token, err := s.orderKuota.ExchangeToken(ctx, username, otp)
		track(provider.GatewayOrderKuota, "get_token", start, err)
		return token, err
	case provider.GatewayQiosPay, provider.GatewayAtlantic:
		return nil, fmt.Errorf("%w: %s uses static API keys", ErrUnsupportedOperation, gatewayName)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, gatewayName)
	}
}

// ListMutations fetches one provider's feed and returns it in canonical
// form. A provider failure aborts the whole call; per-record normalization
// problems only drop the affected record.
func (s *Service) ListMutations(ctx context.Context, req models.MutationsRequest) ([]mutation.Normalized, error) {
	dir := provider.DirectionIn
	if req.Direction == string(provider.DirectionOut) {
		dir = provider.DirectionOut
	}

	switch req.Gateway {
	case provider.GatewayOrderKuota:
		cred := provider.OrderKuotaCredential{Username: req.Username, Token: req.Token}
		start := time.Now()
		raw, err := s.orderKuota.ListMutations(ctx, cred, dir)
		track(provider.GatewayOrderKuota, "mutations", start, err)
		if err != nil {
			return nil, err
		}
		return s.normalizer.FromOrderKuota(raw), nil

	case provider.GatewayQiosPay:
		cred := provider.QiosPayCredential{MerchantCode: req.MerchantCode, APIKey: req.APIKey}
		start := time.Now()
		raw, err := s.qiosPay.ListMutations(ctx, cred, dir)
		track(provider.GatewayQiosPay, "mutations", start, err)
		if err != nil {
			return nil, err
		}
		return s.normalizer.FromQiosPay(raw), nil

	case provider.GatewayAtlantic:
		cred := provider.AtlanticCredential{APIKey: req.APIKey}
		start := time.Now()
		raw, err := s.atlantic.ListMutations(ctx, cred, dir)
		track(provider.GatewayAtlantic, "mutations", start, err)
		if err != nil {
			return nil, err
		}
		return s.normalizer.FromAtlantic(raw), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, req.Gateway)
	}
}

// CreateTransaction synthesizes a payable QR for the requested amount.
func (s *Service) CreateTransaction(req models.CreateTransactionRequest) (*qristx.Transaction, error) {
	switch req.Gateway {
	case provider.GatewayOrderKuota, provider.GatewayQiosPay, provider.GatewayAtlantic:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, req.Gateway)
	}
	return s.synth.Create(req.Amount, req.QRString, req.Gateway, decimal.NewFromFloat(req.FeePercent))
}

// Withdraw requests a disbursement on providers that support it.
func (s *Service) Withdraw(ctx context.Context, req models.WithdrawRequest) (*provider.WithdrawResult, error) {
	switch req.Gateway {
	case provider.GatewayAtlantic:
		cred := provider.AtlanticCredential{APIKey: req.APIKey}
		dest := provider.WithdrawDestination{BankCode: req.BankCode, AccountNumber: req.AccountNumber}
		start := time.Now()
		res, err := s.atlantic.Withdraw(ctx, cred, req.Amount, dest)
		track(provider.GatewayAtlantic, "withdraw", start, err)
		return res, err
	case provider.GatewayOrderKuota, provider.GatewayQiosPay:
		return nil, fmt.Errorf("%w: %s has no disbursement API", ErrUnsupportedOperation, req.Gateway)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, req.Gateway)
	}
}

// Balance reads the provider account balance where the provider exposes one.
func (s *Service) Balance(ctx context.Context, req models.BalanceRequest) (*provider.Balance, error) {
	switch req.Gateway {
	case provider.GatewayAtlantic:
		start := time.Now()
		bal, err := s.atlantic.GetBalance(ctx, provider.AtlanticCredential{APIKey: req.APIKey})
		track(provider.GatewayAtlantic, "balance", start, err)
		return bal, err
	case provider.GatewayOrderKuota, provider.GatewayQiosPay:
		return nil, fmt.Errorf("%w: %s has no balance API", ErrUnsupportedOperation, req.Gateway)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, req.Gateway)
	}
}

func track(gatewayName, op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.IncProvider(gatewayName, op, status)
	metrics.ObserveProvider(gatewayName, op, time.Since(start).Seconds())
}
