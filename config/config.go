package config

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. Treat a loaded Config as
// read-only; use Holder.Reload to swap in a new one.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	AES         AESConfig         `mapstructure:"aes"`
	Log         LogConfig         `mapstructure:"log"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Cybersource CybersourceConfig `mapstructure:"cybersource"`
	Notify      NotifyConfig      `mapstructure:"notify"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Retention   RetentionConfig   `mapstructure:"retention"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// AESConfig holds the at-rest key. PreviousKeys still decrypt after a
// rotation so stored profile secrets stay readable until re-saved.
type AESConfig struct {
	Key          string   `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
	PreviousKeys []string `mapstructure:"previous_keys"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// AdminConfig holds the credentials for the back-office API.
// PasswordHash is produced by the hash-password command.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// CybersourceConfig holds the gateway settings.
type CybersourceConfig struct {
	// Bootstrap Secure Acceptance profile, used when no profile row exists.
	Profile string `mapstructure:"profile"`
	Access  string `mapstructure:"access"`
	Secret  string `mapstructure:"secret"`

	OrgID      string     `mapstructure:"org_id"`
	MerchantID string     `mapstructure:"merchant_id"`
	SOAP       SOAPConfig `mapstructure:"soap"`

	RedirectPending string `mapstructure:"redirect_pending"`
	RedirectSuccess string `mapstructure:"redirect_success"`
	RedirectFail    string `mapstructure:"redirect_fail"`
	EndpointPay     string `mapstructure:"endpoint_pay"`

	DateFormat string `mapstructure:"date_format"` // Go time layout
	Locale     string `mapstructure:"locale"`

	FingerprintProtocol string `mapstructure:"fingerprint_protocol"`
	FingerprintHost     string `mapstructure:"fingerprint_host"`

	SourceType            string            `mapstructure:"source_type"`
	DefaultCurrency       string            `mapstructure:"default_currency"`
	DecisionManagerKeys   []string          `mapstructure:"decision_manager_keys"`
	ShippingMethodDefault string            `mapstructure:"shipping_method_default"`
	ShippingMethodMapping map[string]string `mapstructure:"shipping_method_mapping"` // keys are lower-cased by viper
}

// HasBootstrapProfile reports whether credentials for a fallback profile are configured.
func (c CybersourceConfig) HasBootstrapProfile() bool {
	return c.Profile != "" && c.Access != "" && c.Secret != ""
}

// ShippingMethod maps an order shipping code onto a gateway shipping method.
func (c CybersourceConfig) ShippingMethod(code string) string {
	if m, ok := c.ShippingMethodMapping[strings.ToLower(code)]; ok {
		return m
	}
	return c.ShippingMethodDefault
}

type SOAPConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	TransactionKey string        `mapstructure:"transaction_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// NotifyConfig points decision update notifications at a downstream service.
// An empty URL disables delivery.
type NotifyConfig struct {
	URL    string `mapstructure:"url"`
	Secret string `mapstructure:"secret"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type RetentionConfig struct {
	ReplyMaxAge time.Duration `mapstructure:"reply_max_age"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SAG_ (Secure Acceptance Gateway).
// Nested keys use underscore: SAG_DATABASE_HOST, SAG_CYBERSOURCE_PROFILE, etc.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "secure_acceptance")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "8h")
	v.SetDefault("jwt.issuer", "secure-acceptance-gateway")
	v.SetDefault("aes.key", "")
	v.SetDefault("aes.previous_keys", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("cybersource.profile", "")
	v.SetDefault("cybersource.access", "")
	v.SetDefault("cybersource.secret", "")
	v.SetDefault("cybersource.org_id", "")
	v.SetDefault("cybersource.merchant_id", "")
	v.SetDefault("cybersource.soap.endpoint", "https://ics2wstesta.ic3.com/commerce/1.x/transactionProcessor")
	v.SetDefault("cybersource.soap.transaction_key", "")
	v.SetDefault("cybersource.soap.timeout", "30s")
	v.SetDefault("cybersource.redirect_pending", "/checkout/payment/pending/")
	v.SetDefault("cybersource.redirect_success", "/checkout/thank-you/")
	v.SetDefault("cybersource.redirect_fail", "/checkout/payment/failed/")
	v.SetDefault("cybersource.endpoint_pay", "https://testsecureacceptance.cybersource.com/silent/pay")
	v.SetDefault("cybersource.date_format", "2006-01-02T15:04:05Z")
	v.SetDefault("cybersource.locale", "en")
	v.SetDefault("cybersource.fingerprint_protocol", "https")
	v.SetDefault("cybersource.fingerprint_host", "h.online-metrix.net")
	v.SetDefault("cybersource.source_type", "Cybersource Secure Acceptance")
	v.SetDefault("cybersource.default_currency", "USD")
	v.SetDefault("cybersource.decision_manager_keys", []string{})
	v.SetDefault("cybersource.shipping_method_default", "none")
	v.SetDefault("cybersource.shipping_method_mapping", map[string]string{})

	v.SetDefault("notify.url", "")
	v.SetDefault("notify.secret", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("retention.reply_max_age", "2160h")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SAG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required; env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Holder publishes the active Config to long-lived components.
// Readers call Current per operation so a Reload takes effect on the next request.
type Holder struct {
	cur atomic.Pointer[Config]
}

// NewHolder wraps an initial configuration.
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	h.cur.Store(cfg)
	return h
}

// Current returns the active configuration.
func (h *Holder) Current() *Config {
	return h.cur.Load()
}

// Reload replaces the active configuration. Callers decide when to reload.
func (h *Holder) Reload(cfg *Config) {
	if cfg == nil {
		return
	}
	h.cur.Store(cfg)
}
