package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Log        LogConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	OTEL       OTELConfig
	Cloudinary CloudinaryConfig
	Payment    PaymentConfig
	Finance    FinanceConfig
	Jobs       JobsConfig
	Admin      AdminConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BasePath     string
}

type DatabaseConfig struct {
	Driver          string // mysql | postgres | sqlite
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type OTELConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	ServiceName string
	SampleRatio float64
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Enabled reports whether uploads can be sent to Cloudinary.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type PaymentConfig struct {
	DefaultGateway string
	Routing        bool // pick a gateway from the payer's country code
	WebhookSecret  string
	// AllowUnsigned accepts webhooks without a signature when no secret is set.
	AllowUnsigned bool
	// StubEnabled registers the STUB gateway, which confirms every payment it issued.
	StubEnabled bool
	SuccessURL     string
	CancelURL      string
	LinkTTL        time.Duration
	Stripe         StripeConfig
	Paystack       PaystackConfig
	Flutterwave    FlutterwaveConfig
}

type StripeConfig struct {
	SecretKey string
}

type PaystackConfig struct {
	BaseURL   string
	SecretKey string
}

type FlutterwaveConfig struct {
	BaseURL   string
	SecretKey string
}

type FinanceConfig struct {
	Timezone string
}

// Location resolves the finance timezone, falling back to UTC.
func (f FinanceConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(f.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

type JobsConfig struct {
	BudgetReset bool
}

type AdminConfig struct {
	Email    string
	Password string
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from the environment, applies defaults and validates.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8099"),
			Env:          strings.ToLower(getenv("APP_ENV", "development")),
			ReadTimeout:  getdur("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getdur("WRITE_TIMEOUT", 10*time.Second),
			BasePath:     normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getenv("DB_DRIVER", "mysql")),
			DSN:             getenv("DATABASE_URL", "rentdesk:rentdesk@tcp(localhost:3306)/rentdesk?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getint("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getint("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getdur("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			Secret: getenv("JWT_SECRET", ""),
			Expiry: getdur("JWT_EXPIRY", 24*time.Hour),
			Issuer: getenv("JWT_ISSUER", "rentdesk"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getenv("LOG_LEVEL", "info")),
			Pretty: getbool("LOG_PRETTY", false),
		},
		RateLimit: RateLimitConfig{
			RPS:   getfloat("RATE_RPS", 10),
			Burst: getint("RATE_BURST", 20),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "rentdesk"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getenv("CLOUDINARY_API_KEY", ""),
			APISecret: getenv("CLOUDINARY_API_SECRET", ""),
			Folder:    getenv("CLOUDINARY_FOLDER", "rentdesk"),
		},
		Payment: PaymentConfig{
			DefaultGateway: strings.ToUpper(getenv("PAYMENT_DEFAULT_GATEWAY", "STRIPE")),
			Routing:        getbool("PAYMENT_GATEWAY_ROUTING", false),
			WebhookSecret:  getenv("PAYMENT_WEBHOOK_SECRET", ""),
			AllowUnsigned:  getbool("PAYMENT_WEBHOOK_ALLOW_UNSIGNED", false),
			SuccessURL:     getenv("PAYMENT_SUCCESS_URL", "http://localhost:3000/payments/success"),
			CancelURL:      getenv("PAYMENT_CANCEL_URL", "http://localhost:3000/payments/cancel"),
			LinkTTL:        getdur("PAYMENT_LINK_TTL", 160*time.Minute),
			Stripe: StripeConfig{
				SecretKey: getenv("STRIPE_SECRET_KEY", ""),
			},
			Paystack: PaystackConfig{
				BaseURL:   getenv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
				SecretKey: getenv("PAYSTACK_SECRET_KEY", ""),
			},
			Flutterwave: FlutterwaveConfig{
				BaseURL:   getenv("FLUTTERWAVE_BASE_URL", "https://api.flutterwave.com"),
				SecretKey: getenv("FLUTTERWAVE_SECRET_KEY", ""),
			},
		},
		Finance: FinanceConfig{
			Timezone: getenv("FINANCE_TIMEZONE", "UTC"),
		},
		Jobs: JobsConfig{
			BudgetReset: getbool("JOBS_BUDGET_RESET", true),
		},
		Admin: AdminConfig{
			Email:    getenv("ADMIN_EMAIL", ""),
			Password: getenv("ADMIN_PASSWORD", ""),
		},
	}

	if cfg.Log.Level == "warning" {
		cfg.Log.Level = "warn"
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	switch cfg.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return cfg, errors.New("DB_DRIVER must be one of: mysql, postgres, sqlite")
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return cfg, errors.New("DATABASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.Server.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.Server.ReadTimeout <= 0 || cfg.Server.WriteTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.JWT.Secret == "" {
		if cfg.Server.Env == "production" {
			return cfg, errors.New("JWT_SECRET must not be empty")
		}
		cfg.JWT.Secret = "change-me-in-production"
	}
	if cfg.JWT.Expiry <= 0 {
		return cfg, errors.New("JWT_EXPIRY must be > 0")
	}
	if cfg.RateLimit.RPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateLimit.Burst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	switch cfg.Payment.DefaultGateway {
	case "STRIPE", "PAYSTACK", "FLUTTERWAVE", "STUB":
	default:
		return cfg, errors.New("PAYMENT_DEFAULT_GATEWAY must be one of: STRIPE, PAYSTACK, FLUTTERWAVE, STUB")
	}
	cfg.Payment.StubEnabled = getbool("PAYMENT_STUB_ENABLED", cfg.Server.Env != "production")
	if cfg.Server.Env == "production" {
		if cfg.Payment.WebhookSecret == "" {
			return cfg, errors.New("PAYMENT_WEBHOOK_SECRET must not be empty")
		}
		if cfg.Payment.AllowUnsigned {
			return cfg, errors.New("PAYMENT_WEBHOOK_ALLOW_UNSIGNED must be off in production")
		}
		if cfg.Payment.StubEnabled || cfg.Payment.DefaultGateway == "STUB" {
			return cfg, errors.New("STUB payment gateway is not allowed in production")
		}
	}
	if cfg.Payment.LinkTTL < 30*time.Minute {
		return cfg, errors.New("PAYMENT_LINK_TTL must be at least 30m")
	}
	if _, err := time.LoadLocation(cfg.Finance.Timezone); err != nil {
		return cfg, errors.New("FINANCE_TIMEZONE is not a valid IANA zone")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips a trailing one (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
