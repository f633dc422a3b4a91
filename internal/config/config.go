package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
	AI             AIRuntimeConfig       `yaml:"ai"`
}

type DatabaseRuntimeConfig struct {
	Driver     string            `yaml:"driver"` // mysql | postgres | sqlite | mongodb
	DSN        string            `yaml:"dsn"`
	URL        string            `yaml:"url"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	User       string            `yaml:"user"`
	Password   string            `yaml:"password"`
	Name       string            `yaml:"name"`
	Charset    string            `yaml:"charset"`
	ParseTime  bool              `yaml:"parse_time"`
	Loc        string            `yaml:"loc"`
	SSLMode    string            `yaml:"sslmode"`
	Path       string            `yaml:"path"` // sqlite file
	Collection string            `yaml:"collection"`
	Params     map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	Enable   bool              `yaml:"enable"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       int               `yaml:"db"`
	TLS      bool              `yaml:"tls"`
	Params   map[string]string `yaml:"params"`
}

type RateLimitConfig struct {
	Max    int           `yaml:"max"`
	Window time.Duration `yaml:"window"`
}

// AIRuntimeConfig configures the upstream completion provider.
type AIRuntimeConfig struct {
	Provider string        `yaml:"provider"` // openrouter | openai-compatible | openai | anthropic
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"` // 0 disables the client-side timeout
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

type rawAppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	LogDir         string                `yaml:"log_dir"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	DatabaseURL    string                `yaml:"database_url"`
	Redis          rawRedisConfig        `yaml:"redis"`
	RedisURL       string                `yaml:"redis_url"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
	AI             AIRuntimeConfig       `yaml:"ai"`
	AIKey          string                `yaml:"ai_key"`
}

type rawRedisConfig struct {
	Enable   *bool             `yaml:"enable"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	DB       *int              `yaml:"db"`
	TLS      *bool             `yaml:"tls"`
	Params   map[string]string `yaml:"params"`
}

// Load reads the YAML config at configPath, then applies environment overrides.
// A missing file at the default path is not an error.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(&cfg, content); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, os.Getenv)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.AI = normalizeAIConfig(cfg.AI)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func decode(cfg *AppConfig, content []byte) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	raw := rawAppConfig{}
	if err := decoder.Decode(&raw); err != nil {
		return err
	}
	applyRawAppConfig(cfg, raw)
	return nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver:    defaultDBDriver,
			ParseTime: true,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		RateLimit: RateLimitConfig{
			Max:    defaultRateLimitMax,
			Window: defaultRateLimitWindow,
		},
		AI: AIRuntimeConfig{
			Provider: defaultAIProvider,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if len(raw.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = trimList(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}

	parseTime := cfg.Database.ParseTime
	cfg.Database = raw.Database
	if !raw.Database.ParseTime {
		cfg.Database.ParseTime = parseTime
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = defaultDBDriver
	}
	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.Database.URL = v
	}

	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw.Redis)
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.Redis.URL = v
		cfg.Redis.Enable = true
	}

	if raw.RateLimit.Max != 0 {
		cfg.RateLimit.Max = raw.RateLimit.Max
	}
	if raw.RateLimit.Window != 0 {
		cfg.RateLimit.Window = raw.RateLimit.Window
	}

	if v := strings.TrimSpace(raw.AI.Provider); v != "" {
		cfg.AI.Provider = v
	}
	cfg.AI.Endpoint = raw.AI.Endpoint
	cfg.AI.APIKey = raw.AI.APIKey
	cfg.AI.Model = raw.AI.Model
	cfg.AI.Timeout = raw.AI.Timeout
	if v := strings.TrimSpace(raw.AIKey); v != "" && strings.TrimSpace(cfg.AI.APIKey) == "" {
		cfg.AI.APIKey = v
	}
}

func applyRawRedisConfig(cfg RedisRuntimeConfig, raw rawRedisConfig) RedisRuntimeConfig {
	if raw.Enable != nil {
		cfg.Enable = *raw.Enable
	}
	if v := strings.TrimSpace(raw.URL); v != "" {
		cfg.URL = v
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		cfg.Host = v
	}
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Username); v != "" {
		cfg.Username = v
	}
	if v := strings.TrimSpace(raw.Password); v != "" {
		cfg.Password = v
	}
	if raw.DB != nil {
		cfg.DB = *raw.DB
	}
	if raw.TLS != nil {
		cfg.TLS = *raw.TLS
	}
	if len(raw.Params) > 0 {
		cfg.Params = copyStringMap(raw.Params)
	}
	return cfg
}

// applyEnv lets the process environment (and a .env file loaded by the caller)
// override file values. The AI credential is read here once, at startup.
func applyEnv(cfg *AppConfig, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvAIKey)); v != "" {
		cfg.AI.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(getenv(EnvAppEnv)); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(getenv(EnvMongoURI)); v != "" {
		cfg.Database.Driver = DriverMongoDB
		cfg.Database.URL = v
	}
	if v := strings.TrimSpace(getenv(EnvDatabaseURL)); v != "" {
		cfg.Database.URL = v
	}
	if v := strings.TrimSpace(getenv(EnvRedisURL)); v != "" {
		cfg.Redis.URL = v
		cfg.Redis.Enable = true
	}
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMongoDB:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if c.RateLimit.Max < 0 {
		return fmt.Errorf("invalid rate_limit.max %d, expected >= 0", c.RateLimit.Max)
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("invalid ai.timeout %s, expected >= 0", c.AI.Timeout)
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// Addr returns the HTTP listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LogDir returns the configured log directory, or "" to let the logger pick one.
func (c *AppConfig) LogDir() string {
	if c == nil {
		return ""
	}
	return ResolveRuntimePath(c.Paths.Logs)
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
