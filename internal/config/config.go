package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend environments
const (
	EnvironmentLocal      = "local"
	EnvironmentProduction = "production"

	LocalBackendURL      = "http://localhost:8000"
	ProductionBackendURL = "https://api.safelinkshield.app"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	GRPC      GRPCConfig      `mapstructure:"grpc"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BackendConfig describes the remote scan/auth/chat API
type BackendConfig struct {
	Environment   string        `mapstructure:"environment"`
	BaseURL       string        `mapstructure:"base_url"`
	APIToken      string        `mapstructure:"api_token"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
	HealthTimeout time.Duration `mapstructure:"health_timeout"`
	Offline       bool          `mapstructure:"offline"`
}

// ResolvedURL returns the explicit base URL if set, otherwise the URL for
// the configured environment.
func (c BackendConfig) ResolvedURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Environment == EnvironmentProduction {
		return ProductionBackendURL
	}
	return LocalBackendURL
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Schema          string        `mapstructure:"schema"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.Schema,
	)
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type GRPCConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Port          int           `mapstructure:"port"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// CacheConfig controls the remote verdict cache
type CacheConfig struct {
	VerdictTTL time.Duration `mapstructure:"verdict_ttl"`
}

// OutboxConfig controls redelivery of submissions queued while offline
type OutboxConfig struct {
	// InGateway runs the flusher inside cmd/api; disable it when a
	// relay-worker drains the shared store instead
	InGateway     bool          `mapstructure:"in_gateway"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	BatchSize     int           `mapstructure:"batch_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "scamshield")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "0.1.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("backend.environment", EnvironmentLocal)
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.api_token", "")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("backend.upload_timeout", 60*time.Second)
	v.SetDefault("backend.health_timeout", 3*time.Second)
	v.SetDefault("backend.offline", false)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "scamshield")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "scamshield")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.schema", "public")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "scamshield:")

	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.port", 9090)
	v.SetDefault("grpc.probe_interval", 10*time.Second)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "Accept-Language"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("cache.verdict_ttl", 15*time.Minute)

	v.SetDefault("outbox.in_gateway", true)
	v.SetDefault("outbox.flush_interval", time.Minute)
	v.SetDefault("outbox.max_attempts", 10)
	v.SetDefault("outbox.batch_size", 25)
}

// Load reads configuration from an optional .env file, an optional YAML
// file and SCAMSHIELD_* environment variables, in increasing priority.
func Load(configPath string) (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/scamshield")
	}

	v.SetEnvPrefix("SCAMSHIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default search paths
func LoadDefault() (*Config, error) {
	return Load("")
}

// Validate checks settings that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Backend.Environment {
	case EnvironmentLocal, EnvironmentProduction:
	default:
		return fmt.Errorf("invalid backend.environment %q: must be %q or %q",
			c.Backend.Environment, EnvironmentLocal, EnvironmentProduction)
	}
	if c.Backend.Timeout <= 0 || c.Backend.UploadTimeout <= 0 || c.Backend.HealthTimeout <= 0 {
		return errors.New("backend timeouts must be positive")
	}
	if c.Outbox.MaxAttempts <= 0 {
		return errors.New("outbox.max_attempts must be positive")
	}
	if c.Outbox.FlushInterval <= 0 {
		return fmt.Errorf("outbox.flush_interval must be positive, got %s", c.Outbox.FlushInterval)
	}
	if c.GRPC.Enabled && c.GRPC.ProbeInterval <= 0 {
		return fmt.Errorf("grpc.probe_interval must be positive, got %s", c.GRPC.ProbeInterval)
	}
	return nil
}

// Warnings returns non-fatal configuration issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Backend.Offline {
		warnings = append(warnings, "backend.offline is set - every scan uses local heuristic analysis")
	}
	if !c.Database.Enabled {
		warnings = append(warnings, "database disabled - offline submissions are kept in memory only")
	}
	if !c.Redis.Enabled {
		warnings = append(warnings, "redis disabled - verdict cache and rate limiting are off")
	}
	if c.App.Environment == "production" && c.Backend.Environment == EnvironmentLocal && c.Backend.BaseURL == "" {
		warnings = append(warnings, "production app is pointed at the local backend")
	}
	return warnings
}
