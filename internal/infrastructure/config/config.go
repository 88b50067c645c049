package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration tree.
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Registration RegistrationConfig
	Commission   CommissionConfig
	Stripe       StripeConfig
	Storage      StorageConfig
	Imaging      ImagingConfig
	Pricing      PricingConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings used by the idempotency store.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings for vendor session tokens.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// RegistrationConfig gates self-service store registration.
// When Code is empty, anyone may register a store.
type RegistrationConfig struct {
	Code string
}

// CommissionConfig holds commission bookkeeping settings.
type CommissionConfig struct {
	Rate float64 // platform cut of the order total, e.g. 0.10
}

// StripeConfig holds Stripe API settings for payment annotation.
type StripeConfig struct {
	APIKey string
}

// StorageConfig holds object storage settings (S3-compatible).
type StorageConfig struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	UsePathStyle bool
	PublicURL    string // base URL for serving uploaded files
}

// ImagingConfig holds background-removal service settings.
type ImagingConfig struct {
	Endpoint string        // background-removal service URL, empty disables processing
	Timeout  time.Duration // per-call timeout on the removal service
}

// PricingConfig holds per-store channel pricing settings.
type PricingConfig struct {
	ChannelPricingEnabled bool
}

// defaults feed viper before any source is read, so config.toml and
// environment variables both override them.
var defaults = map[string]any{
	"app.name": "marketplace-backend",
	"app.env":  "development",
	"app.port": "9000",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.dbname":             "marketplace",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.host": "localhost",
	"redis.port": 6379,

	"jwt.expiration": "24h",
	"jwt.issuer":     "marketplace-backend",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":       "15s",
	"http.write_timeout":      "15s",
	"http.idle_timeout":       "60s",
	"http.max_header_bytes":   1 << 20,
	"http.max_body_size":      int64(50 << 20), // uploads carry images
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},

	"commission.rate": 0.10,
	"storage.region":  "us-east-1",
	"imaging.timeout": "120s",
}

// Load reads configuration in priority order: environment variables with
// the MARKETPLACE_ prefix (e.g. MARKETPLACE_DATABASE_PASSWORD), then
// config.toml, then built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// A missing config file is fine; defaults and env vars carry it.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("MARKETPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetDuration("jwt.expiration"),
			Issuer:     v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Registration: RegistrationConfig{
			Code: v.GetString("registration.code"),
		},
		Commission: CommissionConfig{
			Rate: v.GetFloat64("commission.rate"),
		},
		Stripe: StripeConfig{
			APIKey: v.GetString("stripe.api_key"),
		},
		Storage: StorageConfig{
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			Bucket:       v.GetString("storage.bucket"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UseSSL:       v.GetBool("storage.use_ssl"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
			PublicURL:    v.GetString("storage.public_url"),
		},
		Imaging: ImagingConfig{
			Endpoint: v.GetString("imaging.endpoint"),
			Timeout:  v.GetDuration("imaging.timeout"),
		},
		Pricing: PricingConfig{
			ChannelPricingEnabled: v.GetBool("pricing.channel_pricing_enabled"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects values that would misbehave at runtime. Production
// additionally requires real credentials and TLS to the database.
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Commission.Rate < 0 || c.Commission.Rate >= 1 {
		return fmt.Errorf("commission.rate must be in [0, 1), got %f", c.Commission.Rate)
	}

	if c.App.Env != "production" {
		return nil
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt.secret must be at least 32 characters in production")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("database.password is required in production")
	}
	if c.Database.SSLMode == "disable" {
		return fmt.Errorf("database.sslmode cannot be 'disable' in production")
	}
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
		}
	}
	return nil
}

// DSN returns the postgres connection URL with escaped credentials.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the host:port address for Redis.
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
