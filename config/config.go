package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ID generation strategies for sequential business identifiers.
const (
	IDStrategyCounter = "counter"
	IDStrategyLegacy  = "legacy"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Feature  FeatureConfig  `mapstructure:"feature"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	BaseURL        string     `mapstructure:"base_url"`
	BodyLimitBytes int64      `mapstructure:"body_limit_bytes"`
	CORS           CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings. A single "*" entry allows any origin.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings for user accounts.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// MongoConfig document store settings for the academic collections.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// RedisConfig token blacklist and rate limit store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT settings.
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	StudentTokenTTL time.Duration `mapstructure:"student_token_ttl"`
	LoginRateLimit  int           `mapstructure:"login_rate_limit"`
	LoginRateWindow time.Duration `mapstructure:"login_rate_window"`
}

// LogConfig logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FeatureConfig feature switches.
type FeatureConfig struct {
	IDStrategy             string `mapstructure:"id_strategy"`
	UtilizationRefreshCron string `mapstructure:"utilization_refresh_cron"`
	EnforceAuth            bool   `mapstructure:"enforce_auth"`
}

// Load reads configuration from an optional .env file, a config file and
// environment variables.
// Precedence: environment > config file > defaults.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.base_url", "http://localhost:5000")
	v.SetDefault("server.body_limit_bytes", 10<<20)
	v.SetDefault("server.cors.allow_origins", []string{"*"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "study_sphere")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "study_sphere")
	v.SetDefault("mongo.connect_timeout", "10s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "24h")
	v.SetDefault("auth.student_token_ttl", "24h")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("auth.login_rate_window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("feature.id_strategy", IDStrategyLegacy)
	v.SetDefault("feature.utilization_refresh_cron", "@every 15m")
	v.SetDefault("feature.enforce_auth", false)

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("STUDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("invalid config: auth.jwt_secret must not be empty")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("invalid config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("invalid config: mongo.uri must not be empty")
	}
	switch c.Feature.IDStrategy {
	case IDStrategyCounter, IDStrategyLegacy:
	default:
		return fmt.Errorf("invalid config: feature.id_strategy %q is not one of %q, %q",
			c.Feature.IDStrategy, IDStrategyCounter, IDStrategyLegacy)
	}
	return nil
}
