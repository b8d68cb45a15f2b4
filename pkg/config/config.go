package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CRM"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv    = "CRM_APP_ENV"
	EnvPort      = "CRM_APP_PORT"
	EnvDBDSN     = "CRM_DB_DSN"
	EnvDBHost    = "CRM_DB_HOST"
	EnvDBUser    = "CRM_DB_USER"
	EnvDBName    = "CRM_DB_NAME"
	EnvJWTSecret = "CRM_JWT_SECRET"
	EnvJWTIssuer = "CRM_JWT_ISSUER"
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
	Env          string `envconfig:"CRM_APP_ENV" required:"true"`
	Port         string `envconfig:"CRM_APP_PORT" default:"4000"`
	LogLevel     string `envconfig:"CRM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CRM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CRM_DB_DSN"`

	LegacyHost     string `envconfig:"CRM_DB_HOST"`
	LegacyPort     int    `envconfig:"CRM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CRM_DB_USER"`
	LegacyPassword string `envconfig:"CRM_DB_PASSWORD"`
	LegacyName     string `envconfig:"CRM_DB_NAME"`
	LegacySSLMode  string `envconfig:"CRM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CRM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CRM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CRM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CRM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret          string `envconfig:"CRM_JWT_SECRET" required:"true"`
	Issuer          string `envconfig:"CRM_JWT_ISSUER" required:"true"`
	ExpirationHours int    `envconfig:"CRM_JWT_EXPIRATION_HOURS" default:"24"`
}

// TokenTTL returns the credential lifetime configured in hours.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationHours <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"CRM_BCRYPT_COST" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CRM_AUTO_MIGRATE" default:"false"`
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
