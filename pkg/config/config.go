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
	Session      SessionConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	SMTP         SMTPConfig
	Orders       OrdersConfig
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
	Env          string `envconfig:"CUTIEFY_APP_ENV" required:"true"`
	Port         string `envconfig:"CUTIEFY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CUTIEFY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CUTIEFY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CUTIEFY_DB_DSN"`
	Driver string `envconfig:"CUTIEFY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CUTIEFY_DB_HOST"`
	LegacyPort     int    `envconfig:"CUTIEFY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CUTIEFY_DB_USER"`
	LegacyPassword string `envconfig:"CUTIEFY_DB_PASSWORD"`
	LegacyName     string `envconfig:"CUTIEFY_DB_NAME"`
	LegacySSLMode  string `envconfig:"CUTIEFY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CUTIEFY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CUTIEFY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CUTIEFY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CUTIEFY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CUTIEFY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CUTIEFY_REDIS_ADDR"`
	Password     string        `envconfig:"CUTIEFY_REDIS_PASSWORD"`
	DB           int           `envconfig:"CUTIEFY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CUTIEFY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CUTIEFY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CUTIEFY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CUTIEFY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CUTIEFY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls the anonymous cart session cookie and its Redis slot.
type SessionConfig struct {
	CookieName string        `envconfig:"CUTIEFY_SESSION_COOKIE_NAME" default:"cutiefy_session"`
	TTL        time.Duration `envconfig:"CUTIEFY_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"CUTIEFY_SESSION_COOKIE_SECURE" default:"false"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CUTIEFY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CUTIEFY_JWT_ISSUER" default:"cutiefy"`
	ExpirationMinutes int    `envconfig:"CUTIEFY_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Expiration returns the admin token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CUTIEFY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CUTIEFY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CUTIEFY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CUTIEFY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CUTIEFY_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig holds the single admin console login. The storefront has exactly
// one back-office operator, so credentials live in the environment rather than
// a users table.
type AdminConfig struct {
	Email        string `envconfig:"CUTIEFY_ADMIN_EMAIL" required:"true"`
	PasswordHash string `envconfig:"CUTIEFY_ADMIN_PASSWORD_HASH" required:"true"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CUTIEFY_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CUTIEFY_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"CUTIEFY_GCP_PROJECT_ID" required:"true"`
}

type PubSubConfig struct {
	NotificationTopic        string `envconfig:"CUTIEFY_PUBSUB_NOTIFICATION_TOPIC" default:"cutiefy-notification-events"`
	NotificationSubscription string `envconfig:"CUTIEFY_PUBSUB_NOTIFICATION_SUBSCRIPTION"`
}

type SMTPConfig struct {
	Host       string `envconfig:"CUTIEFY_SMTP_HOST" default:"smtp.gmail.com"`
	Port       int    `envconfig:"CUTIEFY_SMTP_PORT" default:"587"`
	User       string `envconfig:"CUTIEFY_SMTP_USER"`
	Pass       string `envconfig:"CUTIEFY_SMTP_PASS"`
	From       string `envconfig:"CUTIEFY_SMTP_FROM"`
	AdminEmail string `envconfig:"CUTIEFY_ADMIN_NOTIFY_EMAIL"`
}

// OrdersConfig tunes the admin order feed.
type OrdersConfig struct {
	FeedPollInterval time.Duration `envconfig:"CUTIEFY_ORDERS_FEED_POLL_INTERVAL" default:"3s"`
	FeedBuffer       int           `envconfig:"CUTIEFY_ORDERS_FEED_BUFFER" default:"4"`
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
