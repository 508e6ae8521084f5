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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Display      DisplayConfig
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
	Env          string `envconfig:"QLBH_APP_ENV" required:"true"`
	Port         string `envconfig:"QLBH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QLBH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QLBH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QLBH_DB_DSN"`
	Driver string `envconfig:"QLBH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QLBH_DB_HOST"`
	LegacyPort     int    `envconfig:"QLBH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QLBH_DB_USER"`
	LegacyPassword string `envconfig:"QLBH_DB_PASSWORD"`
	LegacyName     string `envconfig:"QLBH_DB_NAME"`
	LegacySSLMode  string `envconfig:"QLBH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QLBH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QLBH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QLBH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QLBH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QLBH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QLBH_REDIS_ADDR"`
	Password     string        `envconfig:"QLBH_REDIS_PASSWORD"`
	DB           int           `envconfig:"QLBH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QLBH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QLBH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QLBH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QLBH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QLBH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"QLBH_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"QLBH_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"QLBH_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"QLBH_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"QLBH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"QLBH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"QLBH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"QLBH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"QLBH_ARGON_KEY_LEN" default:"32"`
}

// DisplayConfig controls how monetary values are rendered in API responses.
type DisplayConfig struct {
	Currency string `envconfig:"QLBH_DISPLAY_CURRENCY" default:"VND"`
	Locale   string `envconfig:"QLBH_DISPLAY_LOCALE" default:"vi-VN"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"QLBH_AUTO_MIGRATE" default:"false"`
}

// IdempotencyConfig governs how long replayed order submissions are cached.
type IdempotencyConfig struct {
	OrderTTL time.Duration `envconfig:"QLBH_IDEMPOTENCY_ORDER_TTL" default:"168h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
