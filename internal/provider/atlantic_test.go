package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/padipay/qris-gateway/internal/provider"
)

func TestAtlantic_ListMutations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/deposit/riwayat", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "atl-key-1", r.PostForm.Get("api_key"))

		w.Write([]byte(`{"status":true,"data":[
			{"id":101,"reff_id":"ATL-55","nominal":"50.000","status":"success","created_at":"2025-12-11 10:00:00"},
			{"id":102,"reff_id":"ATL-56","nominal":"60.000","status":"pending","created_at":"2025-12-11 10:05:00"}
		]}`))
	}))
	defer srv.Close()

	c := provider.NewAtlantic(provider.AtlanticConfig{BaseURL: srv.URL}, srv.Client(), testLogger())
	got, err := c.ListMutations(context.Background(), provider.AtlanticCredential{APIKey: "atl-key-1"}, provider.DirectionIn)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, provider.FlexID("ATL-55"), got[0].ReffID)
	require.Equal(t, "success", got[0].Status)
}

func TestAtlantic_Withdraw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transfer/create", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "atl-key-1", r.PostForm.Get("api_key"))
		require.Equal(t, "250000", r.PostForm.Get("nominal"))
		require.Equal(t, "BCA", r.PostForm.Get("bank_code"))
		require.Equal(t, "1234567890", r.PostForm.Get("account_number"))

		w.Write([]byte(`{"status":true,"data":{"id":"TRF-9","nominal":"250000","status":"process"}}`))
	}))
	defer srv.Close()

	c := provider.NewAtlantic(provider.AtlanticConfig{BaseURL: srv.URL}, srv.Client(), testLogger())
	res, err := c.Withdraw(context.Background(), provider.AtlanticCredential{APIKey: "atl-key-1"}, 250000,
		provider.WithdrawDestination{BankCode: "BCA", AccountNumber: "1234567890"})
	require.NoError(t, err)
	require.Equal(t, "TRF-9", res.RefID)
	require.Contains(t, string(res.Raw), `"status":"process"`, "provider payload must ride along")
}

func TestAtlantic_GetBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/get_profile", r.URL.Path)
		w.Write([]byte(`{"status":true,"data":{"name":"PADI","balance":1250000}}`))
	}))
	defer srv.Close()

	c := provider.NewAtlantic(provider.AtlanticConfig{BaseURL: srv.URL}, srv.Client(), testLogger())
	bal, err := c.GetBalance(context.Background(), provider.AtlanticCredential{APIKey: "atl-key-1"})
	require.NoError(t, err)
	require.Equal(t, int64(1250000), bal.Amount)
}

func TestAtlantic_RejectedKey(t *testing.T) {
	const rawBody = `{"status":false,"message":"api_key tidak valid"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rawBody))
	}))
	defer srv.Close()

	c := provider.NewAtlantic(provider.AtlanticConfig{BaseURL: srv.URL}, srv.Client(), testLogger())
	_, err := c.GetBalance(context.Background(), provider.AtlanticCredential{APIKey: "bad"})

	var authErr *provider.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, rawBody, string(authErr.Body))
}
