package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	App    AppConfig
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	APIKey APIKeyConfig
}

type AppConfig struct {
	Env        string `envconfig:"APP_ENV" default:"dev"`
	Version    string `envconfig:"APP_VERSION" default:"1.0.0"`
	ServiceURL string `envconfig:"SERVICE_URL" default:"http://localhost:8000"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`
}

type ServerConfig struct {
	Port         string `envconfig:"PORT" required:"true"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

type DBConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" required:"true"`
	Password        string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName          string        `envconfig:"DB_NAME" required:"true"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone        string        `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns        int32         `envconfig:"DB_MIN_CONNS" default:"1"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-API-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Pretty-Length,X-Compact-Length,X-Body-Length,X-Length-Diff"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig configures bearer tokens. Issuer and Audience are only stamped
// and verified when set.
type JWTConfig struct {
	Secret    string        `envconfig:"JWT_SECRET" required:"true"`
	Algorithm string        `envconfig:"JWT_ALGO" default:"HS256"`
	Expire    time.Duration `envconfig:"JWT_EXPIRE" default:"60m"`
	Issuer    string        `envconfig:"JWT_ISS"`
	Audience  string        `envconfig:"JWT_AUD"`
}

type APIKeyConfig struct {
	Header string `envconfig:"API_KEY_HEADER" default:"X-API-Key"`
	Pepper string `envconfig:"API_KEY_PEPPER" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// ToolConfig is the subset read by operator tooling, which never serves HTTP
// or issues tokens.
type ToolConfig struct {
	DB     DBConfig
	APIKey APIKeyConfig
}

func LoadToolConfig() (ToolConfig, error) {
	var cfg ToolConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return ToolConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		App: AppConfig{
			Env:        "test",
			Version:    "1.0.0",
			ServiceURL: "http://localhost:8889",
		},
		Server: ServerConfig{
			Port:         "8889", // Test port
			MaxBodyBytes: 1 << 20,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
			MinConns: 1,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:    "test-secret",
			Algorithm: "HS256",
			Expire:    time.Hour,
		},
		APIKey: APIKeyConfig{
			Header: "X-API-Key",
			Pepper: "test-pepper",
		},
	}
}
