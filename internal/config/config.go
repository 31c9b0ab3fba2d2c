// Package config loads the storefront settings from the environment.
package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/imrishuroy/go-storefront-orderflow/internal/apperr"
)

const DefaultBaseURL = "http://localhost:8000"

// Dispatch policies. Exactly one is active per process.
const (
	PolicySoftFail   = "soft-fail"
	PolicyEmailFirst = "email-first"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	RunLocal bool   `envconfig:"RUN_LOCAL" default:"false"`

	// API_URL_PRODUCTION wins over API_URL; both fall back to DefaultBaseURL.
	APIURLProduction string        `envconfig:"API_URL_PRODUCTION"`
	APIURL           string        `envconfig:"API_URL"`
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`

	MerchantEmail  string        `envconfig:"MERCHANT_EMAIL" default:"santinogiampietro7@gmail.com"`
	DispatchPolicy string        `envconfig:"DISPATCH_POLICY" default:"soft-fail"`
	ReadinessDelay time.Duration `envconfig:"READINESS_DELAY" default:"1s"`

	Relay RelayConfig

	SubmissionsTable string        `envconfig:"SUBMISSIONS_TABLE"`
	SubmissionTTL    time.Duration `envconfig:"SUBMISSION_TTL" default:"48h"`
	FollowUpQueueURL string        `envconfig:"FOLLOWUP_QUEUE_URL"`
	MetricsNamespace string        `envconfig:"METRICS_NAMESPACE"`
	KafkaBrokers     string        `envconfig:"KAFKA_BROKERS"`
	KafkaTopic       string        `envconfig:"KAFKA_TOPIC" default:"order.submitted"`
}

// RelayConfig holds the static identifiers of the transactional email relay.
type RelayConfig struct {
	ServiceID  string `envconfig:"EMAIL_RELAY_SERVICE_ID"`
	TemplateID string `envconfig:"EMAIL_RELAY_TEMPLATE_ID"`
	PublicKey  string `envconfig:"EMAIL_RELAY_PUBLIC_KEY"`
	Endpoint   string `envconfig:"EMAIL_RELAY_ENDPOINT" default:"https://api.emailjs.com/api/v1.0/email/send"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, apperr.Configuration("process env: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BaseURL resolves the product/order API root.
func (c *Config) BaseURL() string {
	for _, u := range []string{c.APIURLProduction, c.APIURL} {
		if u = strings.TrimSpace(u); u != "" {
			return strings.TrimRight(u, "/")
		}
	}
	return DefaultBaseURL
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL())
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Configuration("invalid API base url %q", c.BaseURL())
	}

	switch c.DispatchPolicy {
	case PolicySoftFail, PolicyEmailFirst:
	default:
		return apperr.Configuration("unknown dispatch policy %q (want %s or %s)", c.DispatchPolicy, PolicySoftFail, PolicyEmailFirst)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return apperr.Configuration("invalid log level %q", c.LogLevel)
	}

	if c.HTTPTimeout < 0 {
		return apperr.Configuration("HTTP_TIMEOUT must not be negative")
	}
	return nil
}

// Complete reports whether every relay identifier is present. An incomplete
// relay config is not fatal; the channel is disabled for the session instead.
func (r RelayConfig) Complete() bool {
	return r.ServiceID != "" && r.TemplateID != "" && r.PublicKey != "" && r.Endpoint != ""
}
