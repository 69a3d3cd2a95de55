package controllers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Kariqs/maxtech-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func billingDetails() map[string]any {
	return map[string]any{
		"firstName":      "Asha",
		"lastName":       "Rao",
		"email":          "asha.rao@example.com",
		"phone":          "9876543210",
		"streetAddress1": "12 MG Road",
		"city":           "Pune",
		"state":          "MH",
		"pin":            "411001",
		"country":        "India",
	}
}

func TestSendOrderConfirmationFromCart(t *testing.T) {
	env := newEnv(t)
	user, token := env.user("Asha", models.RoleUser)
	product, accessory, _ := seedCatalog(t, env.db)

	w := env.do(http.MethodPost, "/cart", map[string]any{"productId": product.ID, "quantity": 1}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.do(http.MethodPost, "/cart", map[string]any{"accessoryId": accessory.ID, "quantity": 2}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	req := map[string]any{
		"to": "asha.rao@example.com",
		"order": map[string]any{
			"billingDetails": billingDetails(),
			"deliveryMethod": models.DeliveryHome,
		},
	}
	w = env.do(http.MethodPost, "/orders/send-confirmation", req, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["success"])

	var order models.Order
	require.NoError(t, env.db.Preload("Items").First(&order).Error)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(54999+2*8995)), order.TotalAmount.String())
	assert.Equal(t, "Asha Rao", order.CustomerName)
	assert.Equal(t, "12 MG Road, Pune, MH, 411001, India", order.ShippingAddress)
	assert.Len(t, order.Items, 2)

	var cartCount int64
	env.db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Zero(t, cartCount)

	require.Len(t, env.mails, 2)
	assert.Equal(t, []string{"orders@maxtech.in"}, env.mails[0].to)
	assert.Contains(t, env.mails[0].msg, "For Delivery")
	assert.Equal(t, []string{"asha.rao@example.com"}, env.mails[1].to)
	assert.Contains(t, env.mails[1].msg, "12 MG Road")
}

func TestSendOrderConfirmationPickupWithLines(t *testing.T) {
	env := newEnv(t)
	_, token := env.user("Asha", models.RoleUser)
	_, _, part := seedCatalog(t, env.db)

	req := map[string]any{
		"to": "asha.rao@example.com",
		"order": map[string]any{
			"cartItems": []map[string]any{
				{"id": part.ID, "type": "part", "name": part.Name, "quantity": 1, "price": "1"},
				{"id": 999, "type": "product", "name": "Ghost", "quantity": 1, "price": "10"},
			},
			"billingDetails": billingDetails(),
			"deliveryMethod": models.DeliveryPickup,
			"store":          "Kothrud",
			"date":           "2026-11-02",
		},
	}
	w := env.do(http.MethodPost, "/orders/send-confirmation", req, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, env.db.Preload("Items").First(&order).Error)
	require.Len(t, order.Items, 1)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(58000)))
	require.NotNil(t, order.PickupDate)
	assert.Equal(t, "Kothrud", order.Store)

	var stored models.Part
	require.NoError(t, env.db.First(&stored, part.ID).Error)
	assert.Equal(t, 1, stored.Stock)

	require.Len(t, env.mails, 2)
	assert.Contains(t, env.mails[0].msg, "For Pickup")
	assert.Contains(t, env.mails[0].msg, "456 Innovation Road, Kothrud, Pune")
	assert.Contains(t, env.mails[1].msg, "02 Nov 2026")
}

func TestSendOrderConfirmationRejects(t *testing.T) {
	env := newEnv(t)
	_, token := env.user("Asha", models.RoleUser)
	product, _, _ := seedCatalog(t, env.db)

	tests := []struct {
		name   string
		order  map[string]any
		status int
	}{
		{"no billing", map[string]any{"deliveryMethod": models.DeliveryHome}, http.StatusBadRequest},
		{"empty cart", map[string]any{"billingDetails": billingDetails(), "deliveryMethod": models.DeliveryHome}, http.StatusBadRequest},
		{"bad date", map[string]any{"billingDetails": billingDetails(), "deliveryMethod": models.DeliveryPickup, "date": "next week"}, http.StatusBadRequest},
		{"nothing valid", map[string]any{
			"billingDetails": billingDetails(),
			"deliveryMethod": models.DeliveryHome,
			"cartItems":      []map[string]any{{"id": 999, "type": "product", "quantity": 1}},
		}, http.StatusBadRequest},
		{"out of stock", map[string]any{
			"billingDetails": billingDetails(),
			"deliveryMethod": models.DeliveryHome,
			"cartItems":      []map[string]any{{"id": product.ID, "type": "product", "quantity": 50}},
		}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/orders/send-confirmation", map[string]any{"order": tt.order}, token)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	var count int64
	env.db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, env.mails)
}

func TestOrderAdministration(t *testing.T) {
	env := newEnv(t)
	asha, ashaToken := env.user("Asha", models.RoleUser)
	ravi, _ := env.user("Ravi", models.RoleUser)
	_, adminToken := env.user("Admin", models.RoleAdmin)
	_, rootToken := env.user("Root", models.RoleSuperAdmin)

	mine := models.Order{UserID: asha.ID, Status: models.OrderStatusPending, TotalAmount: decimal.NewFromInt(100), DeliveryMethod: models.DeliveryHome,
		Items: []models.OrderItem{{Name: "Cable", Quantity: 2, Price: decimal.NewFromInt(50)}}}
	theirs := models.Order{UserID: ravi.ID, Status: models.OrderStatusDelivered, TotalAmount: decimal.NewFromInt(200), DeliveryMethod: models.DeliveryPickup}
	require.NoError(t, env.db.Create(&mine).Error)
	require.NoError(t, env.db.Create(&theirs).Error)

	w := env.do(http.MethodGet, "/orders", nil, ashaToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["orders"], 1)

	w = env.do(http.MethodGet, "/orders", nil, rootToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["orders"], 2)

	w = env.do(http.MethodGet, "/orders/undelivered-count", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = env.do(http.MethodPut, "/orders/"+itoa(mine.ID), map[string]any{"status": "SHIPPED"}, ashaToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(http.MethodPut, "/orders/"+itoa(mine.ID), map[string]any{"status": "LOST"}, rootToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(http.MethodPut, "/orders/"+itoa(mine.ID), map[string]any{"status": "SHIPPED"}, rootToken)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	require.NoError(t, env.db.First(&stored, mine.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)

	w = env.do(http.MethodGet, "/orders/export", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.xlsx")
	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	sheet := file.Sheet["Orders"]
	require.NotNil(t, sheet)
	assert.Len(t, sheet.Rows, 3)

	w = env.do(http.MethodDelete, "/orders/"+itoa(mine.ID), nil, rootToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodDelete, "/orders/"+itoa(mine.ID), nil, rootToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var items int64
	env.db.Unscoped().Model(&models.OrderItem{}).Where("order_id = ?", mine.ID).Count(&items)
	assert.Zero(t, items)
}

func TestContactForms(t *testing.T) {
	env := newEnv(t)

	w := env.do(http.MethodPost, "/orders/contact-us", map[string]any{"name": "Asha", "email": "asha@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/orders/contact-us", map[string]any{
		"name": "Asha", "email": "asha@example.com", "phone": "98765", "message": "Do you stock OLED monitors?",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, env.mails, 1)
	assert.Equal(t, []string{"orders@maxtech.in"}, env.mails[0].to)
	assert.Contains(t, env.mails[0].msg, "Do you stock OLED monitors?")

	w = env.do(http.MethodPost, "/orders/contact-us-form", map[string]any{
		"to": "someone@elsewhere.test",
		"formData": map[string]any{
			"fullName":      "Ravi",
			"deviceBrand":   "Dell",
			"issueType":     "Screen",
			"uploadedFiles": []string{"a.jpg", "b.jpg"},
		},
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.mails, 2)
	assert.Equal(t, []string{"orders@maxtech.in"}, env.mails[1].to)
	assert.Contains(t, env.mails[1].msg, "a.jpg, b.jpg")
}

func TestOrderFeedRequiresAdmin(t *testing.T) {
	env := newEnv(t)
	_, token := env.user("Asha", models.RoleUser)

	w := env.do(http.MethodGet, "/orders/feed", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(http.MethodGet, "/orders/feed", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetHome(t *testing.T) {
	env := newEnv(t)
	w := env.do(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(decode(t, w)["message"].(string), "/payment/webhook"))
}
