package config

const EnvPrefix = "MINICOMMERCE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "MINICOMMERCE_APP_ENV"
	EnvPort     = "MINICOMMERCE_APP_PORT"
	EnvLogLevel = "MINICOMMERCE_LOG_LEVEL"

	EnvDBDSN    = "MINICOMMERCE_DB_DSN"
	EnvDBDriver = "MINICOMMERCE_DB_DRIVER"
	EnvDBHost   = "MINICOMMERCE_DB_HOST"
	EnvDBPort   = "MINICOMMERCE_DB_PORT"
	EnvDBUser   = "MINICOMMERCE_DB_USER"
	EnvDBPass   = "MINICOMMERCE_DB_PASSWORD"
	EnvDBName   = "MINICOMMERCE_DB_NAME"

	EnvRedisURL    = "MINICOMMERCE_REDIS_URL"
	EnvCORSOrigins = "MINICOMMERCE_CORS_ORIGINS"
	EnvAutoMigrate = "MINICOMMERCE_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
