package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/Kariqs/maxtech-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoupons(t *testing.T) {
	env := newEnv(t)
	_, rootToken := env.user("Root", models.RoleSuperAdmin)
	_, userToken := env.user("Asha", models.RoleUser)

	coupon := map[string]any{
		"code":              " save10 ",
		"discountType":      models.DiscountPercentage,
		"discountValue":     "10",
		"minPurchaseAmount": "1000",
		"maxDiscountAmount": "500",
		"expiryDate":        time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}
	w := env.do(http.MethodPost, "/coupons", coupon, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/coupons", coupon, rootToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "SAVE10", data["code"])

	w = env.do(http.MethodPost, "/coupons", coupon, rootToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	tests := []struct {
		name     string
		body     map[string]any
		status   int
		discount string
		final    string
	}{
		{"capped", map[string]any{"code": "save10", "totalAmount": "8000"}, http.StatusOK, "500.00", "7500.00"},
		{"uncapped", map[string]any{"code": "SAVE10", "totalAmount": "2000"}, http.StatusOK, "200.00", "1800.00"},
		{"below minimum", map[string]any{"code": "SAVE10", "totalAmount": "999"}, http.StatusBadRequest, "", ""},
		{"unknown", map[string]any{"code": "NOPE", "totalAmount": "8000"}, http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/coupons/apply", tt.body, "")
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			out := decode(t, w)
			assert.Equal(t, tt.discount, out["discount"])
			assert.Equal(t, tt.final, out["finalAmount"])
		})
	}

	w = env.do(http.MethodGet, "/coupons", nil, rootToken)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].([]any)
	require.Len(t, list, 1)
	id := uint(list[0].(map[string]any)["ID"].(float64))

	w = env.do(http.MethodDelete, "/coupons/"+itoa(id), nil, rootToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(http.MethodDelete, "/coupons/"+itoa(id), nil, rootToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

