package initializers

import (
	"context"
	"log/slog"

	"github.com/Kariqs/maxtech-api/cache"
	"github.com/Kariqs/maxtech-api/feed"
	"github.com/Kariqs/maxtech-api/models"
	"github.com/Kariqs/maxtech-api/payments"
	"github.com/Kariqs/maxtech-api/services"
	"github.com/Kariqs/maxtech-api/utils"
)

var (
	Orders   *services.OrderService
	Catalog  *cache.Catalog
	Feed     *feed.Hub
	Uploader utils.Uploader
)

// SetupServices builds the payment flow, cache, order feed and mailer from Cfg.
// DB must already be connected.
func SetupServices(ctx context.Context) {
	utils.ConfigureMail(utils.MailConfig{
		SMTPAddress: Cfg.SMTPAddress,
		SMTPHost:    Cfg.FromEmailSMTP,
		From:        Cfg.FromEmail,
		Password:    Cfg.FromEmailPassword,
	})

	Feed = feed.NewHub(Cfg.Origins()...)
	Orders = NewOrderService(Cfg, Feed)

	if Cfg.RedisURL != "" {
		c, err := cache.Dial(ctx, Cfg.RedisURL, Cfg.CacheTTL)
		if err != nil {
			slog.Warn("Catalog cache disabled", "error", err)
		} else {
			Catalog = c
		}
	}

	if Cfg.AWSBucket != "" {
		u, err := utils.NewS3Uploader(ctx, Cfg.AWSBucket)
		if err != nil {
			slog.Warn("Image uploads disabled", "error", err)
		} else {
			Uploader = u
		}
	}
}

// NewOrderService wires the gateway client for cfg. Order changes are pushed to
// hub when it is non-nil.
func NewOrderService(cfg Config, hub *feed.Hub) *services.OrderService {
	if cfg.GatewaySkipWebhookVerify {
		slog.Warn("Webhook signature verification is disabled", "gatewayEnv", cfg.GatewayEnv)
	}

	svc := &services.OrderService{
		DB: DB,
		Gateway: payments.NewClient(payments.Config{
			AppID:       cfg.GatewayAppID,
			SecretKey:   cfg.GatewaySecretKey,
			Environment: cfg.GatewayEnv,
			BaseURL:     cfg.GatewayBaseURL,
			APIVersion:  cfg.GatewayAPIVersion,
			Timeout:     cfg.GatewayTimeout,
		}),
		WebhookSecret:     cfg.GatewaySecretKey,
		SkipWebhookVerify: cfg.GatewaySkipWebhookVerify,
		Currency:          cfg.GatewayCurrency,
	}
	if cfg.FrontendURL != "" {
		svc.ReturnURL = cfg.FrontendURL + "/payment-status?order_id={order_id}"
	}
	if hub != nil {
		svc.OnChange = func(o models.Order) { hub.Broadcast("order.updated", o) }
	}
	return svc
}
