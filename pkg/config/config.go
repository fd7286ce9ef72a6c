package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MINICOMMERCE_APP_ENV" required:"true"`
	Port         string `envconfig:"MINICOMMERCE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MINICOMMERCE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"MINICOMMERCE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"MINICOMMERCE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"MINICOMMERCE_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"MINICOMMERCE_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"MINICOMMERCE_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `envconfig:"MINICOMMERCE_CORS_ORIGINS" default:"http://localhost:3000"`
}

type DBConfig struct {
	DSN    string `envconfig:"MINICOMMERCE_DB_DSN"`
	Driver string `envconfig:"MINICOMMERCE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MINICOMMERCE_DB_HOST"`
	LegacyPort     int    `envconfig:"MINICOMMERCE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MINICOMMERCE_DB_USER"`
	LegacyPassword string `envconfig:"MINICOMMERCE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MINICOMMERCE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MINICOMMERCE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MINICOMMERCE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MINICOMMERCE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MINICOMMERCE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MINICOMMERCE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver is SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

// Redis is optional; idempotency replay is disabled when neither URL nor address is set.
type RedisConfig struct {
	URL          string        `envconfig:"MINICOMMERCE_REDIS_URL"`
	Address      string        `envconfig:"MINICOMMERCE_REDIS_ADDR"`
	Password     string        `envconfig:"MINICOMMERCE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MINICOMMERCE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MINICOMMERCE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MINICOMMERCE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MINICOMMERCE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MINICOMMERCE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MINICOMMERCE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MINICOMMERCE_AUTO_MIGRATE" default:"false"`
}

type IdempotencyConfig struct {
	DefaultTTL  time.Duration `envconfig:"MINICOMMERCE_IDEMPOTENCY_TTL" default:"24h"`
	CriticalTTL time.Duration `envconfig:"MINICOMMERCE_IDEMPOTENCY_CRITICAL_TTL" default:"168h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvDBDriver, DBDriverSQLite)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
