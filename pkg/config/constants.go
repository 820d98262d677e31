package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only guards against unrelated variables leaking in.
const EnvPrefix = "CUTIEFY"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv            = "CUTIEFY_APP_ENV"
	EnvPort              = "CUTIEFY_APP_PORT"
	EnvDBDSN             = "CUTIEFY_DB_DSN"
	EnvDBHost            = "CUTIEFY_DB_HOST"
	EnvDBUser            = "CUTIEFY_DB_USER"
	EnvDBName            = "CUTIEFY_DB_NAME"
	EnvRedisURL          = "CUTIEFY_REDIS_URL"
	EnvJWTSecret         = "CUTIEFY_JWT_SECRET"
	EnvAdminEmail        = "CUTIEFY_ADMIN_EMAIL"
	EnvAdminPasswordHash = "CUTIEFY_ADMIN_PASSWORD_HASH"
	EnvGCPProjectID      = "CUTIEFY_GCP_PROJECT_ID"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
