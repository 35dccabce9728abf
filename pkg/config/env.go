package config

const EnvPrefix = "SHOPVISTA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "SHOPVISTA_APP_ENV"
	EnvPort     = "SHOPVISTA_APP_PORT"
	EnvLogLevel = "SHOPVISTA_LOG_LEVEL"

	EnvRedisURL = "SHOPVISTA_REDIS_URL"

	EnvCatalogURL          = "SHOPVISTA_CATALOG_URL"
	EnvCatalogFetchTimeout = "SHOPVISTA_CATALOG_FETCH_TIMEOUT"

	EnvExchangeRate      = "SHOPVISTA_EXCHANGE_RATE"
	EnvDiscountThreshold = "SHOPVISTA_DISCOUNT_THRESHOLD"
	EnvDiscountRate      = "SHOPVISTA_DISCOUNT_RATE"
	EnvBundleCategories  = "SHOPVISTA_BUNDLE_CATEGORIES"
)
