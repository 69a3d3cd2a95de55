package initializers

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"port"`
	AppEnv      string `mapstructure:"app_env"`
	LogLevel    string `mapstructure:"log_level"`
	DBDriver    string `mapstructure:"db_driver"`
	DBDSN       string `mapstructure:"db_dsn"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	FrontendURL string `mapstructure:"frontend_url"`
	CORSOrigins string `mapstructure:"cors_origins"`

	RedisURL string        `mapstructure:"redis_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	GatewayAppID             string        `mapstructure:"gateway_app_id"`
	GatewaySecretKey         string        `mapstructure:"gateway_secret_key"`
	GatewayEnv               string        `mapstructure:"gateway_env"`
	GatewayBaseURL           string        `mapstructure:"gateway_base_url"`
	GatewayAPIVersion        string        `mapstructure:"gateway_api_version"`
	GatewayCurrency          string        `mapstructure:"gateway_currency"`
	GatewayTimeout           time.Duration `mapstructure:"gateway_timeout"`
	GatewaySkipWebhookVerify bool          `mapstructure:"gateway_skip_webhook_verify"`

	SMTPAddress       string `mapstructure:"smtp_address"`
	FromEmail         string `mapstructure:"from_email"`
	FromEmailPassword string `mapstructure:"from_email_password"`
	FromEmailSMTP     string `mapstructure:"from_email_smtp"`
	DetailsEmail      string `mapstructure:"details_email"`
	LogoURL           string `mapstructure:"logo_url"`

	AWSBucket string `mapstructure:"aws_bucket"`
}

var Cfg Config

var defaults = map[string]any{
	"port":                        "8080",
	"app_env":                     "development",
	"log_level":                   "info",
	"db_driver":                   "mysql",
	"db_dsn":                      "",
	"jwt_secret":                  "",
	"frontend_url":                "http://localhost:3000",
	"cors_origins":                "http://localhost:3000",
	"redis_url":                   "",
	"cache_ttl":                   "5m",
	"gateway_app_id":              "",
	"gateway_secret_key":          "",
	"gateway_env":                 "sandbox",
	"gateway_base_url":            "",
	"gateway_api_version":         "2023-08-01",
	"gateway_currency":            "INR",
	"gateway_timeout":             "15s",
	"gateway_skip_webhook_verify": false,
	"smtp_address":                "",
	"from_email":                  "",
	"from_email_password":         "",
	"from_email_smtp":             "",
	"details_email":               "",
	"logo_url":                    "",
	"aws_bucket":                  "maxtech",
}

// LoadEnv reads .env when present and fills Cfg from the environment and an
// optional config.yaml in the working directory.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Error loading .env file", "error", err)
	}

	cfg, err := LoadConfig(viper.New())
	if err != nil {
		return err
	}
	Cfg = *cfg
	return nil
}

func LoadConfig(v *viper.Viper) (*Config, error) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.GatewaySkipWebhookVerify && cfg.GatewayEnv == "production" {
		slog.Warn("GATEWAY_SKIP_WEBHOOK_VERIFY ignored in production")
		cfg.GatewaySkipWebhookVerify = false
	}
	return &cfg, nil
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}
