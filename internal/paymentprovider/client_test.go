package paymentprovider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(4_800_000), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Order{
			ID:       "order_test123",
			Entity:   "order",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := NewClient("rzp_test_key", "secret", server.URL)
	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   4_800_000,
		Currency: "INR",
		Receipt:  "enr-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_test123", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrder_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("k", "s", server.URL)
	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{Amount: 100, Currency: "INR"})
	assert.Nil(t, order)
	assert.Error(t, err)
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	client := NewClient("k", "secret", "")

	valid := sign("secret", "order_1|pay_1")
	assert.True(t, client.VerifyPaymentSignature("order_1", "pay_1", valid))
	assert.False(t, client.VerifyPaymentSignature("order_1", "pay_2", valid))
	assert.False(t, client.VerifyPaymentSignature("order_1", "pay_1", "deadbeef"))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	valid := sign("whsec", string(body))

	assert.True(t, VerifyWebhookSignature("whsec", body, valid))
	assert.False(t, VerifyWebhookSignature("whsec", []byte(`{}`), valid))
	assert.False(t, VerifyWebhookSignature("other", body, valid))
}
