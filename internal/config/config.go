package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/nimasrn/outlet-ledger/pkg/logger"
	"github.com/pkg/errors"
)

var config *Config

// Config holds every tunable of the ledger service. Only this struct may be
// used to read configuration; no package reads the environment directly
// except the logger bootstrap.
type Config struct {
	AppEnv              string `env:"APP_ENV,default=dev"`
	AppName             string `env:"APP_NAME,default=outlet_ledger"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI,default=/metrics"`
	AppBaseUrl          string `env:"APP_BASE_URL,default=http://localhost:8080"`

	HttpListenAddr     string        `env:"HTTP_LISTEN_ADDR,default=:8080"`
	HttpRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT,default=15s"`
	HttpAllowedOrigin  string        `env:"HTTP_ALLOWED_ORIGIN"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT,default=5432"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT,default=5432"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX,default=ledger:"`

	PromNamespace string `env:"PROM_NAMESPACE,default=outlet_ledger"`

	// BusinessTimezone decides what "today" means for the edit policy.
	BusinessTimezone string `env:"BUSINESS_TIMEZONE,default=Europe/Istanbul"`

	SessionTTL         time.Duration `env:"SESSION_TTL,default=12h"`
	SessionRememberTTL time.Duration `env:"SESSION_REMEMBER_TTL,default=720h"`

	InvoiceMaxBytes int `env:"INVOICE_MAX_BYTES,default=10485760"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}

	if err = c.validate(); err != nil {
		return err
	}

	config = c
	return nil
}

func (c *Config) validate() error {
	if c.SessionTTL <= 0 || c.SessionRememberTTL <= 0 {
		return errors.New("session ttl values must be positive")
	}
	if c.SessionRememberTTL < c.SessionTTL {
		return errors.New("SESSION_REMEMBER_TTL must not be shorter than SESSION_TTL")
	}
	if c.InvoiceMaxBytes <= 0 {
		return errors.New("INVOICE_MAX_BYTES must be positive")
	}
	if c.BusinessTimezone == "" {
		return errors.New("BUSINESS_TIMEZONE must not be empty")
	}
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}

// Set installs an already built config, used by tests and tooling.
func Set(c *Config) {
	config = c
}
