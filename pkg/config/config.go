package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "STOCKMASTER"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv    = "STOCKMASTER_APP_ENV"
	EnvPort      = "STOCKMASTER_APP_PORT"
	EnvDBDSN     = "STOCKMASTER_DB_DSN"
	EnvDBHost    = "STOCKMASTER_DB_HOST"
	EnvDBUser    = "STOCKMASTER_DB_USER"
	EnvDBName    = "STOCKMASTER_DB_NAME"
	EnvJWTSecret = "STOCKMASTER_JWT_SECRET"
	EnvJWTIssuer = "STOCKMASTER_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"STOCKMASTER_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKMASTER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKMASTER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKMASTER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKMASTER_DB_DSN"`
	Driver string `envconfig:"STOCKMASTER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKMASTER_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKMASTER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKMASTER_DB_USER"`
	LegacyPassword string `envconfig:"STOCKMASTER_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKMASTER_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKMASTER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKMASTER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKMASTER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKMASTER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKMASTER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STOCKMASTER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOCKMASTER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOCKMASTER_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOCKMASTER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOCKMASTER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOCKMASTER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOCKMASTER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOCKMASTER_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKMASTER_AUTO_MIGRATE" default:"false"`
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
