package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gatewaySecret = "gw-secret"

// fakeGateway answers order creation with a session id and order lookups with
// the status held in orderStatus.
type fakeGateway struct {
	orderStatus string
	created     []map[string]any
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/orders":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		g.created = append(g.created, body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_id":           body["order_id"],
			"order_status":       "ACTIVE",
			"payment_session_id": "session_abc",
		})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/orders/"):
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_id":     strings.TrimPrefix(r.URL.Path, "/orders/"),
			"order_status": g.orderStatus,
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func withGateway(t *testing.T, env *testEnv) *fakeGateway {
	t.Helper()
	gw := &fakeGateway{orderStatus: "ACTIVE"}
	srv := httptest.NewServer(gw)
	t.Cleanup(srv.Close)

	initializers.Orders = initializers.NewOrderService(initializers.Config{
		GatewayAppID:     "app",
		GatewaySecretKey: gatewaySecret,
		GatewayBaseURL:   srv.URL,
	}, nil)
	return gw
}

func webhookBody(t *testing.T, eventType, externalID string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"type": eventType,
		"data": map[string]any{
			"order":   map[string]any{"order_id": externalID},
			"payment": map[string]any{"payment_id": "pay_1", "order_amount": 54999, "order_currency": "INR", "payment_group": "upi"},
		},
	})
	require.NoError(t, err)
	return raw
}

func (e *testEnv) webhook(body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payment/webhook", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(payments.SignatureHeader, signature)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func createPaymentOrder(t *testing.T, env *testEnv, token string) map[string]any {
	t.Helper()
	w := env.do(http.MethodPost, "/payment/create-order", map[string]any{
		"amount":         "54999",
		"deliveryMethod": models.DeliveryHome,
		"customerPhone":  "9876543210",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)
}

func TestCreatePaymentOrder(t *testing.T) {
	env := newEnv(t)
	gw := withGateway(t, env)
	user, token := env.user("Asha", models.RoleUser)

	out := createPaymentOrder(t, env, token)
	assert.Equal(t, "session_abc", out["paymentSessionId"])
	externalID, _ := out["externalOrderId"].(string)
	assert.True(t, strings.HasPrefix(externalID, "order_"))

	require.Len(t, gw.created, 1)
	customer := gw.created[0]["customer_details"].(map[string]any)
	assert.Equal(t, "Asha", customer["customer_name"])
	assert.Equal(t, "asha@example.com", customer["customer_email"])

	var order models.Order
	require.NoError(t, env.db.Preload("Payments").First(&order).Error)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Payments, 1)
	assert.Equal(t, externalID, order.Payments[0].GatewayOrderID)

	w := env.do(http.MethodPost, "/payment/create-order", map[string]any{"amount": 0, "deliveryMethod": models.DeliveryHome}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPost, "/payment/create-order", map[string]any{"amount": 100}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPost, "/payment/create-order", map[string]any{"amount": 100, "deliveryMethod": models.DeliveryHome}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentWebhook(t *testing.T) {
	env := newEnv(t)
	withGateway(t, env)
	_, token := env.user("Asha", models.RoleUser)
	externalID := createPaymentOrder(t, env, token)["externalOrderId"].(string)

	body := webhookBody(t, "PAYMENT_SUCCESS_WEBHOOK", externalID)

	w := env.webhook(body, "forged")
	assert.Equal(t, http.StatusForbidden, w.Code)
	var payment models.Payment
	require.NoError(t, env.db.Where("gateway_order_id = ?", externalID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	for range 2 {
		w = env.webhook(body, payments.Sign(body, gatewaySecret))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	require.NoError(t, env.db.Where("gateway_order_id = ?", externalID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "pay_1", payment.GatewayPaymentID)
	assert.Equal(t, "upi", payment.PaymentMethod)

	var order models.Order
	require.NoError(t, env.db.First(&order, payment.OrderID).Error)
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	var count int64
	env.db.Model(&models.Payment{}).Count(&count)
	assert.EqualValues(t, 1, count)

	unknown := webhookBody(t, "PAYMENT_FAILED_WEBHOOK", "order_missing")
	w = env.webhook(unknown, payments.Sign(unknown, gatewaySecret))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentWebhookDropped(t *testing.T) {
	env := newEnv(t)
	withGateway(t, env)
	_, token := env.user("Asha", models.RoleUser)
	externalID := createPaymentOrder(t, env, token)["externalOrderId"].(string)

	body := webhookBody(t, "PAYMENT_USER_DROPPED_WEBHOOK", externalID)
	w := env.webhook(body, payments.Sign(body, gatewaySecret))
	require.Equal(t, http.StatusOK, w.Code)

	var payment models.Payment
	require.NoError(t, env.db.Where("gateway_order_id = ?", externalID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	var order models.Order
	require.NoError(t, env.db.First(&order, payment.OrderID).Error)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

func TestCheckPaymentStatus(t *testing.T) {
	env := newEnv(t)
	gw := withGateway(t, env)
	_, token := env.user("Asha", models.RoleUser)
	externalID := createPaymentOrder(t, env, token)["externalOrderId"].(string)

	gw.orderStatus = "EXPIRED"
	w := env.do(http.MethodGet, "/payment/check-status/"+externalID, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "EXPIRED", out["status"])
	assert.Equal(t, string(models.PaymentStatusPending), out["paymentStatus"])

	gw.orderStatus = "PAID"
	w = env.do(http.MethodGet, "/payment/check-status/"+externalID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(models.PaymentStatusSuccess), decode(t, w)["paymentStatus"])

	var payment models.Payment
	require.NoError(t, env.db.Where("gateway_order_id = ?", externalID).First(&payment).Error)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)

	w = env.do(http.MethodGet, "/payment/check-status/order_missing", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckPaymentStatusAccess(t *testing.T) {
	env := newEnv(t)
	gw := withGateway(t, env)
	_, owner := env.user("Asha", models.RoleUser)
	_, other := env.user("Ravi", models.RoleUser)
	_, admin := env.user("Root", models.RoleAdmin)
	externalID := createPaymentOrder(t, env, owner)["externalOrderId"].(string)
	gw.orderStatus = "ACTIVE"

	w := env.do(http.MethodGet, "/payment/check-status/"+externalID, nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "9876543210")

	w = env.do(http.MethodGet, "/payment/check-status/"+externalID, nil, admin)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(http.MethodGet, "/payment/check-status/"+externalID, nil, owner)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
