package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{AppID: "app", SecretKey: "secret", BaseURL: srv.URL})
}

func TestCreateOrderSendsCredentialsAndBody(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "app", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret", r.Header.Get("x-client-secret"))
		assert.Equal(t, DefaultAPIVersion, r.Header.Get("x-api-version"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order_id":"order_1","order_status":"ACTIVE","payment_session_id":"session_abc"}`))
	})

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		OrderID:       "order_1",
		OrderAmount:   Amount(decimal.RequireFromString("499.5")),
		OrderCurrency: "INR",
		CustomerDetails: CustomerDetails{
			CustomerID:   "cust_7",
			CustomerName: "Asha",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "session_abc", order.PaymentSessionID)
	assert.Equal(t, "ACTIVE", order.OrderStatus)
	assert.Equal(t, "order_1", got["order_id"])
	assert.Equal(t, 499.5, got["order_amount"])
	assert.Equal(t, "cust_7", got["customer_details"].(map[string]any)["customer_id"])
}

func TestGetOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders/order_42", r.URL.Path)
		w.Write([]byte(`{"order_id":"order_42","order_status":"PAID","order_amount":120.00}`))
	})

	order, err := client.GetOrder(context.Background(), "order_42")
	require.NoError(t, err)
	assert.Equal(t, "PAID", order.OrderStatus)
	assert.True(t, order.OrderAmount.Equal(decimal.NewFromInt(120)))
	assert.Contains(t, string(order.Raw), "order_42")
}

func TestGatewayErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"order_amount is invalid"}`))
	})

	_, err := client.GetOrder(context.Background(), "order_1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "order_amount")
}

func TestNewClientPicksEnvironment(t *testing.T) {
	assert.Equal(t, SandboxBaseURL, NewClient(Config{}).http.BaseURL)
	assert.Equal(t, ProductionBaseURL, NewClient(Config{Environment: "production"}).http.BaseURL)
	assert.Equal(t, "http://gw.local", NewClient(Config{Environment: "production", BaseURL: "http://gw.local"}).http.BaseURL)
}
