// Package config reads service settings from the environment. Every group of
// settings has its own prefix, e.g. POSTGRES_HOST or KAFKA_PORT.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var validate = validator.New()

type PostgresSettings struct {
	Driver           string        `mapstructure:"driver" validate:"required"`
	User             string        `mapstructure:"user" validate:"required"`
	Password         string        `mapstructure:"password" validate:"required"`
	Host             string        `mapstructure:"host" validate:"required"`
	Port             int           `mapstructure:"port" validate:"min=1,max=65535"`
	DB               string        `mapstructure:"db" validate:"required"`
	Echo             bool          `mapstructure:"echo"`
	SSLMode          string        `mapstructure:"sslmode"`
	URI              string        `mapstructure:"uri"`
	MaxConns         int           `mapstructure:"max_conns" validate:"min=1"`
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
}

// ConnString returns URI when set, otherwise a connection string assembled
// from the individual fields.
func (s PostgresSettings) ConnString() string {
	if s.URI != "" {
		return s.URI
	}
	u := url.URL{
		Scheme: s.Driver,
		User:   url.UserPassword(s.User, s.Password),
		Host:   net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
		Path:   "/" + s.DB,
	}
	if s.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {s.SSLMode}}.Encode()
	}
	return u.String()
}

type KafkaSettings struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	URI            string        `mapstructure:"uri"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// Addr returns URI when set, otherwise host:port.
func (s KafkaSettings) Addr() string {
	if s.URI != "" {
		return s.URI
	}
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type BrokerSettings struct {
	Driver string `mapstructure:"driver" validate:"oneof=kafka redis postgres"`
}

type RedisSettings struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

type AppSettings struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat       string        `mapstructure:"log_format" validate:"oneof=json text"`
	Workers         int           `mapstructure:"workers" validate:"min=0"`
	MetricsPort     int           `mapstructure:"metrics_port" validate:"min=0,max=65535"`
	Env             string        `mapstructure:"env"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s AppSettings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s AppSettings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type CORSSettings struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

type Settings struct {
	Postgres PostgresSettings
	Kafka    KafkaSettings
	Broker   BrokerSettings
	Redis    RedisSettings
	App      AppSettings
	CORS     CORSSettings
}

// Load reads an optional .env file and then the environment.
func Load() (Settings, error) {
	// a missing .env is fine, the environment may be set by the container
	_ = godotenv.Load()
	return Parse()
}

// Parse reads settings from the environment only.
func Parse() (Settings, error) {
	var (
		s   Settings
		err error
	)
	if s.Postgres, err = section[PostgresSettings]("postgres", map[string]any{
		"driver":            "postgres",
		"user":              "",
		"password":          "",
		"host":              "postgres",
		"port":              5432,
		"db":                "applications",
		"echo":              false,
		"sslmode":           "disable",
		"uri":               "",
		"max_conns":         16,
		"statement_timeout": 5 * time.Second,
	}); err != nil {
		return s, err
	}
	if s.Kafka, err = section[KafkaSettings]("kafka", map[string]any{
		"host":            "kafka",
		"port":            9092,
		"uri":             "",
		"publish_timeout": 10 * time.Second,
	}); err != nil {
		return s, err
	}
	if s.Broker, err = section[BrokerSettings]("broker", map[string]any{
		"driver": "kafka",
	}); err != nil {
		return s, err
	}
	if s.Redis, err = section[RedisSettings]("redis", map[string]any{
		"addr":     "redis:6379",
		"password": "",
		"db":       0,
	}); err != nil {
		return s, err
	}
	if s.App, err = section[AppSettings]("app", map[string]any{
		"host":             "backend",
		"port":             8000,
		"log_level":        "info",
		"log_format":       "json",
		"workers":          0,
		"metrics_port":     9091,
		"env":              "",
		"shutdown_timeout": 10 * time.Second,
	}); err != nil {
		return s, err
	}
	if s.CORS, err = section[CORSSettings]("cors", map[string]any{
		"allow_origins":     []string{"http://localhost", "http://127.0.0.1"},
		"allow_credentials": true,
		"allow_methods":     []string{"GET", "POST"},
		"allow_headers":     []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// section binds every key in defaults to PREFIX_KEY and decodes the result
// into T. Keys without a default are not picked up by viper's AutomaticEnv.
func section[T any](prefix string, defaults map[string]any) (T, error) {
	var out T
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := v.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("failed to read %s settings: %w", prefix, err)
	}
	if err := validate.Struct(out); err != nil {
		return out, fmt.Errorf("invalid %s settings: %w", prefix, err)
	}
	return out, nil
}
