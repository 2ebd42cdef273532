package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every storefront environment variable.
const EnvPrefix = "vela"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	PubSub       PubSubConfig
	Mail         MailConfig
	AdminSetup   AdminSetupConfig
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
	Env          string `envconfig:"VELA_APP_ENV" required:"true"`
	Port         string `envconfig:"VELA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VELA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VELA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"VELA_DB_DSN"`

	Host     string `envconfig:"VELA_DB_HOST"`
	Port     int    `envconfig:"VELA_DB_PORT" default:"5432"`
	User     string `envconfig:"VELA_DB_USER"`
	Password string `envconfig:"VELA_DB_PASSWORD"`
	Name     string `envconfig:"VELA_DB_NAME"`
	SSLMode  string `envconfig:"VELA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VELA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VELA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VELA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VELA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("db dsn or host/user/name is required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"VELA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VELA_REDIS_ADDR"`
	Password     string        `envconfig:"VELA_REDIS_PASSWORD"`
	DB           int           `envconfig:"VELA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VELA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VELA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VELA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VELA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VELA_REDIS_WRITE_TIMEOUT" default:"5s"`

	CartTTL time.Duration `envconfig:"VELA_REDIS_CART_TTL" default:"720h"`
}

type JWTConfig struct {
	Secret            string `envconfig:"VELA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VELA_JWT_ISSUER" default:"vela"`
	ExpirationMinutes int    `envconfig:"VELA_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VELA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VELA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VELA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VELA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VELA_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VELA_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"VELA_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"VELA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"VELA_GCS_BUCKET" default:"product-images"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"VELA_PUBSUB_ORDERS_TOPIC"`
	OrdersSubscription string `envconfig:"VELA_PUBSUB_ORDERS_SUBSCRIPTION"`
	CatalogTopic       string `envconfig:"VELA_PUBSUB_CATALOG_TOPIC"`
}

type MailConfig struct {
	Host     string `envconfig:"VELA_SMTP_HOST"`
	Port     string `envconfig:"VELA_SMTP_PORT" default:"587"`
	Username string `envconfig:"VELA_SMTP_USERNAME"`
	Password string `envconfig:"VELA_SMTP_PASSWORD"`
	From     string `envconfig:"VELA_SMTP_FROM" default:"Maison Vela <orders@maisonvela.com>"`
}

// Enabled reports whether outbound email is configured at all. The worker
// treats a disabled mailer as a logged no-op rather than an error.
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type AdminSetupConfig struct {
	Code string `envconfig:"VELA_ADMIN_SETUP_CODE"`
}
