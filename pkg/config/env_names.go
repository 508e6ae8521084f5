package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "QLBH"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced by tests and bootstrap errors.
const (
	EnvAppEnv     = "QLBH_APP_ENV"
	EnvPort       = "QLBH_APP_PORT"
	EnvDBDSN      = "QLBH_DB_DSN"
	EnvDBHost     = "QLBH_DB_HOST"
	EnvDBUser     = "QLBH_DB_USER"
	EnvDBName     = "QLBH_DB_NAME"
	EnvRedisURL   = "QLBH_REDIS_URL"
	EnvJWTSecret  = "QLBH_JWT_SECRET"
	EnvJWTIssuer  = "QLBH_JWT_ISSUER"
	EnvJWTExpMins = "QLBH_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "QLBH_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
