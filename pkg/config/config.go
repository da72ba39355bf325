package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Pricing PricingConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VAPORVISTA_APP_ENV" default:"development"`
	Port         string `envconfig:"VAPORVISTA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VAPORVISTA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VAPORVISTA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"VAPORVISTA_DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"VAPORVISTA_DB_DSN"`

	MaxOpenConns    int           `envconfig:"VAPORVISTA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VAPORVISTA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VAPORVISTA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VAPORVISTA_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"VAPORVISTA_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VAPORVISTA_REDIS_URL"`
	Address      string        `envconfig:"VAPORVISTA_REDIS_ADDR"`
	Password     string        `envconfig:"VAPORVISTA_REDIS_PASSWORD"`
	DB           int           `envconfig:"VAPORVISTA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VAPORVISTA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VAPORVISTA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VAPORVISTA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VAPORVISTA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VAPORVISTA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PricingConfig seeds the storefront pricing knobs when no settings row
// exists yet. The persisted settings remain the runtime source of truth.
type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"VAPORVISTA_FREE_SHIPPING_THRESHOLD" default:"50"`
	FlatShippingRate      decimal.Decimal `envconfig:"VAPORVISTA_FLAT_SHIPPING_RATE" default:"5.99"`
	TaxRate               decimal.Decimal `envconfig:"VAPORVISTA_TAX_RATE" default:"0.07"`
	TaxShipping           bool            `envconfig:"VAPORVISTA_TAX_SHIPPING" default:"false"`
}

func (p PricingConfig) validate() error {
	if p.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("free shipping threshold must be non-negative")
	}
	if p.FlatShippingRate.IsNegative() {
		return fmt.Errorf("flat shipping rate must be non-negative")
	}
	if p.TaxRate.IsNegative() {
		return fmt.Errorf("tax rate must be non-negative")
	}
	return nil
}

type CartConfig struct {
	SessionCookie string        `envconfig:"VAPORVISTA_CART_SESSION_COOKIE" default:"vv_cart_session"`
	SlotTTL       time.Duration `envconfig:"VAPORVISTA_CART_SLOT_TTL" default:"720h"`
}
