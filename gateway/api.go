package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"github.com/padipay/qris-gateway/gateway/models"
	"github.com/padipay/qris-gateway/internal/emvqr"
	"github.com/padipay/qris-gateway/internal/provider"
	"github.com/padipay/qris-gateway/pkg/metrics"
)

// API is the reference HTTP surface over the gateway service.
type API struct {
	svc *Service
	log *slog.Logger
}

func NewAPI(svc *Service, log *slog.Logger) *API {
	return &API{svc: svc, log: log}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Post("/login", a.login)
	r.Post("/get-token", a.getToken)
	r.Post("/unified-mutations", a.unifiedMutations)
	r.Post("/create-transaction", a.createTransaction)
	r.Post("/withdraw", a.withdraw)
	r.Post("/balance", a.balance)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		a.writeBadRequest(w, r, "username and password are required")
		return
	}

	auth, err := a.svc.Login(r.Context(), req.Gateway, req.Username, req.Password)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeSuccess(w, r, auth)
}

func (a *API) getToken(w http.ResponseWriter, r *http.Request) {
	var req models.GetTokenRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.OTP == "" {
		a.writeBadRequest(w, r, "username and otp are required")
		return
	}

	token, err := a.svc.ExchangeToken(r.Context(), req.Gateway, req.Username, req.OTP)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeSuccess(w, r, token)
}

func (a *API) unifiedMutations(w http.ResponseWriter, r *http.Request) {
	var req models.MutationsRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Gateway == "" {
		a.writeBadRequest(w, r, "gateway is required")
		return
	}

	mutations, err := a.svc.ListMutations(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeSuccess(w, r, map[string]any{
		"gateway":   req.Gateway,
		"count":     len(mutations),
		"mutations": mutations,
	})
}

func (a *API) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Amount < 1 {
		a.writeBadRequest(w, r, "amount must be at least 1")
		return
	}
	if req.QRString == "" {
		a.writeBadRequest(w, r, "qr_string is required")
		return
	}
	if req.FeePercent < 0 {
		a.writeBadRequest(w, r, "fee_percent must not be negative")
		return
	}

	tx, err := a.svc.CreateTransaction(req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeSuccess(w, r, tx)
}

func (a *API) withdraw(w http.ResponseWriter, r *http.Request) {
	var req models.WithdrawRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Amount < 1 {
		a.writeBadRequest(w, r, "amount must be at least 1")
		return
	}

	res, err := a.svc.Withdraw(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeSuccess(w, r, res)
}

func (a *API) balance(w http.ResponseWriter, r *http.Request) {
	var req models.BalanceRequest
	if !a.decode(w, r, &req) {
		return
	}

	bal, err := a.svc.Balance(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeSuccess(w, r, bal)
}

// decode reads a JSON or form-urlencoded body into dst. A false return means
// the 400 response has already been written.
func (a *API) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			a.writeBadRequest(w, r, "invalid form body: "+err.Error())
			return false
		}
		if err := decodeForm(r.PostForm, dst); err != nil {
			a.writeBadRequest(w, r, "invalid form body: "+err.Error())
			return false
		}
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.writeBadRequest(w, r, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// decodeForm maps form fields onto the same JSON-tagged request structs.
// Only amount and fee_percent are numeric on this surface; everything else
// stays a string.
func decodeForm(form url.Values, dst any) error {
	fields := make(map[string]any, len(form))
	for key := range form {
		value := form.Get(key)
		switch key {
		case "amount":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("amount %q is not an integer", value)
			}
			fields[key] = n
		case "fee_percent":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("fee_percent %q is not a number", value)
			}
			fields[key] = f
		default:
			fields[key] = value
		}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (a *API) writeSuccess(w http.ResponseWriter, r *http.Request, data any) {
	a.writeJSON(w, r, http.StatusOK, models.Response{Success: true, Data: data})
}

func (a *API) writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	a.writeJSON(w, r, http.StatusBadRequest, models.Response{Success: false, Error: msg})
}

// writeError maps the error taxonomy onto HTTP statuses: malformed input
// classes are 400, provider auth failures keep the provider's own status,
// everything else (transport, unexpected) is 500.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var authErr *provider.AuthError
	switch {
	case errors.Is(err, ErrUnsupportedGateway),
		errors.Is(err, ErrUnsupportedOperation),
		errors.Is(err, provider.ErrInvalidTokenFormat),
		errors.Is(err, emvqr.ErrMalformedTemplate),
		errors.Is(err, emvqr.ErrTemplateTooShort),
		errors.Is(err, emvqr.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.As(err, &authErr):
		status = authErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusUnauthorized
		}
	}

	a.log.Error("request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("err", err),
	)
	a.writeJSON(w, r, status, models.Response{Success: false, Error: err.Error()})
}

func (a *API) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	metrics.IncHTTP(r.Method, strconv.Itoa(status))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("encoding response", slog.Any("err", err))
	}
}
