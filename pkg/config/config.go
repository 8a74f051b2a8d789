package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "ecofinds"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ECOFINDS_DB_DSN"
	EnvDBHost = "ECOFINDS_DB_HOST"
	EnvDBUser = "ECOFINDS_DB_USER"
	EnvDBName = "ECOFINDS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Checkout      CheckoutConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Cron          CronConfig
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
	Env          string `envconfig:"ECOFINDS_APP_ENV" required:"true"`
	Port         string `envconfig:"ECOFINDS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ECOFINDS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECOFINDS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ECOFINDS_DB_DSN"`
	Driver string `envconfig:"ECOFINDS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ECOFINDS_DB_HOST"`
	LegacyPort     int    `envconfig:"ECOFINDS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ECOFINDS_DB_USER"`
	LegacyPassword string `envconfig:"ECOFINDS_DB_PASSWORD"`
	LegacyName     string `envconfig:"ECOFINDS_DB_NAME"`
	LegacySSLMode  string `envconfig:"ECOFINDS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ECOFINDS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ECOFINDS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ECOFINDS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ECOFINDS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ECOFINDS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ECOFINDS_REDIS_ADDR"`
	Password     string        `envconfig:"ECOFINDS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ECOFINDS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ECOFINDS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ECOFINDS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ECOFINDS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ECOFINDS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ECOFINDS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"ECOFINDS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"ECOFINDS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"ECOFINDS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"ECOFINDS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ECOFINDS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ECOFINDS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ECOFINDS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ECOFINDS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ECOFINDS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"ECOFINDS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"ECOFINDS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"ECOFINDS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"ECOFINDS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"ECOFINDS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"ECOFINDS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ECOFINDS_AUTO_MIGRATE" default:"false"`
}

// CheckoutConfig tunes the payment step of checkout submission.
type CheckoutConfig struct {
	PaymentTimeout time.Duration `envconfig:"ECOFINDS_CHECKOUT_PAYMENT_TIMEOUT" default:"15s"`
	// SimulatedDeclineCode forces the stub gateway to decline; used in
	// dev environments to exercise the failure path end to end.
	SimulatedDeclineCode string `envconfig:"ECOFINDS_CHECKOUT_SIMULATED_DECLINE_CODE"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"ECOFINDS_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"ECOFINDS_PUBSUB_ORDERS_TOPIC" default:"ecofinds-order-events"`
	OrdersSubscription string `envconfig:"ECOFINDS_PUBSUB_ORDERS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"ECOFINDS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"ECOFINDS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"ECOFINDS_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type CronConfig struct {
	Interval        time.Duration `envconfig:"ECOFINDS_CRON_INTERVAL" default:"24h"`
	CartRetention   time.Duration `envconfig:"ECOFINDS_CRON_CART_RETENTION" default:"720h"`
	LockKey         string        `envconfig:"ECOFINDS_CRON_LOCK_KEY" default:"ecofinds:cron:lock"`
	LockTTL         time.Duration `envconfig:"ECOFINDS_CRON_LOCK_TTL" default:"25h"`
	MetricsDisabled bool          `envconfig:"ECOFINDS_CRON_METRICS_DISABLED" default:"false"`
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
