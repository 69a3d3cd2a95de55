package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/payments"
	"github.com/Kariqs/maxtech-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type paymentOrderInput struct {
	Amount         decimal.Decimal `json:"amount"`
	DeliveryMethod string          `json:"deliveryMethod"`
	CustomerName   string          `json:"customerName"`
	CustomerEmail  string          `json:"customerEmail"`
	CustomerPhone  string          `json:"customerPhone"`
}

func CreatePaymentOrder(ctx *gin.Context) {
	var input paymentOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid or missing total amount.", err)
		return
	}

	user := currentUser(ctx)
	result, err := initializers.Orders.CreateOrder(ctx.Request.Context(), services.CreateOrderInput{
		UserID:         user.UserID,
		Amount:         input.Amount,
		DeliveryMethod: input.DeliveryMethod,
		CustomerName:   orName(input.CustomerName, user.Name),
		CustomerEmail:  orName(input.CustomerEmail, user.Email),
		CustomerPhone:  input.CustomerPhone,
	})
	if err != nil {
		sendServiceError(ctx, err, "Order creation failed")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// PaymentWebhook answers 200 for anything that passed signature checks so the
// gateway does not keep retrying.
func PaymentWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		slog.Error("Webhook body read failed", "error", err)
		ctx.Status(http.StatusOK)
		return
	}

	err = initializers.Orders.HandleWebhook(ctx.Request.Context(), ctx.GetHeader(payments.SignatureHeader), body)
	if errors.Is(err, services.ErrAuth) {
		ctx.String(http.StatusForbidden, "Signature verification failed")
		return
	}
	if err != nil {
		slog.Error("Webhook error", "error", err)
	}
	ctx.Status(http.StatusOK)
}

// CheckPaymentStatus is open to the order's owner and to admins; the gateway
// payload it returns carries the customer's contact details.
func CheckPaymentStatus(ctx *gin.Context) {
	externalID := ctx.Param("orderId")
	owner, err := initializers.Orders.OwnerOf(ctx.Request.Context(), externalID)
	if err != nil {
		sendServiceError(ctx, err, "Could not verify payment status")
		return
	}
	if user := currentUser(ctx); user.UserID != owner && !user.IsAdmin() {
		sendErrorResponse(ctx, http.StatusForbidden, "You do not have access to this order")
		return
	}

	result, err := initializers.Orders.CheckStatus(ctx.Request.Context(), externalID)
	if err != nil {
		sendServiceError(ctx, err, "Could not verify payment status")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
