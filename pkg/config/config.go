package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Pricing PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPVISTA_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPVISTA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPVISTA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPVISTA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPVISTA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOPVISTA_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPVISTA_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPVISTA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPVISTA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPVISTA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPVISTA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPVISTA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPVISTA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CatalogConfig struct {
	URL          string        `envconfig:"SHOPVISTA_CATALOG_URL" default:"https://fakestoreapi.com/products"`
	FetchTimeout time.Duration `envconfig:"SHOPVISTA_CATALOG_FETCH_TIMEOUT" default:"30s"`
}

// PricingConfig carries the fixed exchange rate and offer policy constants.
// Prices arrive in the source currency (USD) and are displayed in INR.
type PricingConfig struct {
	ExchangeRate      decimal.Decimal `envconfig:"SHOPVISTA_EXCHANGE_RATE" default:"82"`
	DiscountThreshold decimal.Decimal `envconfig:"SHOPVISTA_DISCOUNT_THRESHOLD" default:"2000"`
	DiscountRate      decimal.Decimal `envconfig:"SHOPVISTA_DISCOUNT_RATE" default:"0.20"`
	BundleCategories  []string        `envconfig:"SHOPVISTA_BUNDLE_CATEGORIES" default:"electronics,jewelery"`
}

func (p PricingConfig) validate() error {
	if !p.ExchangeRate.IsPositive() {
		return fmt.Errorf("%s must be positive", EnvExchangeRate)
	}
	if p.DiscountThreshold.IsNegative() {
		return fmt.Errorf("%s must be non-negative", EnvDiscountThreshold)
	}
	if p.DiscountRate.IsNegative() || p.DiscountRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be within [0, 1]", EnvDiscountRate)
	}
	return nil
}
