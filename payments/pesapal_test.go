package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kariqs/agromarket-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	jsonHeader := func(w http.ResponseWriter) { w.Header().Set("Content-Type", "application/json") }
	mux.HandleFunc("/api/Auth/RequestToken", func(w http.ResponseWriter, r *http.Request) {
		jsonHeader(w)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["consumer_key"] != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"token": "tok", "status": "200"})
	})
	mux.HandleFunc("/api/Transactions/SubmitOrderRequest", func(w http.ResponseWriter, r *http.Request) {
		jsonHeader(w)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var order OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "ipn-1", order.NotificationID)
		assert.Equal(t, "KES", order.Currency)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_tracking_id":  "track-" + order.ID,
			"merchant_reference": order.ID,
			"redirect_url":       "https://pay.example/redirect",
		})
	})
	mux.HandleFunc("/api/Transactions/GetTransactionStatus", func(w http.ResponseWriter, r *http.Request) {
		jsonHeader(w)
		if r.URL.Query().Get("orderTrackingId") == "bad" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "invalid_id", "message": "unknown tracking id"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"payment_status_description": "Completed",
			"amount":                     1500,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPesapalClient(t *testing.T) {
	srv := newTestServer(t)
	client := NewPesapalClient(config.PesapalConfig{
		BaseURL:        srv.URL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		NotificationID: "ipn-1",
		Currency:       "KES",
	})
	ctx := context.Background()

	token, err := client.RequestToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	res, err := client.SubmitOrder(ctx, OrderRequest{ID: "ORDER-1", Amount: 1500})
	require.NoError(t, err)
	assert.Equal(t, "track-ORDER-1", res.OrderTrackingID)
	assert.Equal(t, "https://pay.example/redirect", res.RedirectURL)

	status, err := client.TransactionStatus(ctx, "track-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "Completed", status.PaymentStatusDescription)

	_, err = client.TransactionStatus(ctx, "bad")
	assert.ErrorContains(t, err, "unknown tracking id")
}

func TestPesapalClientRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	client := NewPesapalClient(config.PesapalConfig{BaseURL: srv.URL, ConsumerKey: "wrong", ConsumerSecret: "secret"})

	_, err := client.RequestToken(context.Background())
	assert.ErrorContains(t, err, "status 401")
}

func TestPesapalClientNotConfigured(t *testing.T) {
	client := NewPesapalClient(config.PesapalConfig{BaseURL: "http://127.0.0.1:0"})
	assert.False(t, client.Configured())

	_, err := client.SubmitOrder(context.Background(), OrderRequest{ID: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
