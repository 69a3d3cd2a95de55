package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const SignatureHeader = "x-webhook-signature"

// Sign returns the base64 HMAC-SHA256 of body keyed with secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the raw request body.
func VerifySignature(signature string, body []byte, secret string) bool {
	if signature == "" || len(body) == 0 || secret == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(body, secret)), []byte(signature))
}

type EventKind int

const (
	EventUnknown EventKind = iota
	EventPaymentSuccess
	EventPaymentFailed
	EventPaymentDropped
)

type WebhookEvent struct {
	Type      string `json:"type"`
	EventTime string `json:"event_time"`
	Data      struct {
		Order struct {
			OrderID       string          `json:"order_id"`
			OrderAmount   decimal.Decimal `json:"order_amount"`
			OrderCurrency string          `json:"order_currency"`
		} `json:"order"`
		Payment struct {
			PaymentID     string          `json:"payment_id"`
			PaymentStatus string          `json:"payment_status"`
			OrderAmount   decimal.Decimal `json:"order_amount"`
			OrderCurrency string          `json:"order_currency"`
			PaymentGroup  string          `json:"payment_group"`
			PaymentMethod json.RawMessage `json:"payment_method"`
		} `json:"payment"`
	} `json:"data"`
}

func ParseEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	return &event, nil
}

// Kind accepts both the bare event names and the "_WEBHOOK" suffixed ones.
func (e *WebhookEvent) Kind() EventKind {
	switch strings.TrimSuffix(strings.ToUpper(e.Type), "_WEBHOOK") {
	case "PAYMENT_SUCCESS":
		return EventPaymentSuccess
	case "PAYMENT_FAILED":
		return EventPaymentFailed
	case "PAYMENT_USER_DROPPED", "PAYMENT_CANCELLED":
		return EventPaymentDropped
	}
	return EventUnknown
}

// Method flattens payment_method, which is a plain string in older payloads
// and an object keyed by method name in newer ones.
func (e *WebhookEvent) Method() string {
	raw := e.Data.Payment.PaymentMethod
	if len(raw) == 0 || string(raw) == "null" {
		return e.Data.Payment.PaymentGroup
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}

	var byName map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byName); err == nil {
		for k := range byName {
			return k
		}
	}
	return e.Data.Payment.PaymentGroup
}
