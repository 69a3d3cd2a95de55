// Package payments talks to the hosted-checkout payment gateway: opening
// payment sessions, polling order status and verifying webhook callbacks.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	SandboxBaseURL    = "https://sandbox.cashfree.com/pg"
	ProductionBaseURL = "https://api.cashfree.com/pg"
	DefaultAPIVersion = "2023-08-01"

	defaultTimeout = 30 * time.Second
)

type Config struct {
	AppID       string
	SecretKey   string
	Environment string
	BaseURL     string
	APIVersion  string
	Timeout     time.Duration
}

type Client struct {
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = SandboxBaseURL
		if cfg.Environment == "production" {
			baseURL = ProductionBaseURL
		}
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"x-client-id":     cfg.AppID,
			"x-client-secret": cfg.SecretKey,
			"x-api-version":   apiVersion,
			"Accept":          "application/json",
			"Content-Type":    "application/json",
		})

	return &Client{http: rc}
}

type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type OrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

type CreateOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     json.Number     `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderMeta       *OrderMeta      `json:"order_meta,omitempty"`
}

// Amount formats a decimal the way the gateway expects order_amount.
func Amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// GatewayOrder is the gateway's view of an order. Raw holds the response body
// as received.
type GatewayOrder struct {
	OrderID          string          `json:"order_id"`
	OrderStatus      string          `json:"order_status"`
	OrderAmount      decimal.Decimal `json:"order_amount"`
	OrderCurrency    string          `json:"order_currency"`
	PaymentSessionID string          `json:"payment_session_id"`
	Raw              json.RawMessage `json:"-"`
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway responded with status %d: %s", e.StatusCode, e.Body)
}

// CreateOrder opens a hosted payment session for req.OrderID.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*GatewayOrder, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	return decodeOrder(resp)
}

// GetOrder fetches the current state of an order from the gateway.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*GatewayOrder, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("orderId", orderID).
		Get("/orders/{orderId}")
	if err != nil {
		return nil, fmt.Errorf("get gateway order: %w", err)
	}
	return decodeOrder(resp)
}

func decodeOrder(resp *resty.Response) (*GatewayOrder, error) {
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var order GatewayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	order.Raw = resp.Body()
	return &order, nil
}
