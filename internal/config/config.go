package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Host               string        `yaml:"host"`
	Port               string        `yaml:"port"`
	RequestTimeout     time.Duration `yaml:"requestTimeout"`
	MaxRequestBodySize int64         `yaml:"maxRequestBodySize"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`

	Scorer            string  `yaml:"scorer"`
	StripMarkdown     bool    `yaml:"stripMarkdown"`
	PositiveThreshold float64 `yaml:"positiveThreshold"`
	NegativeThreshold float64 `yaml:"negativeThreshold"`

	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDB"`
	CacheTTL      time.Duration `yaml:"cacheTTL"`

	RateLimitRPS   float64 `yaml:"rateLimitRPS"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	MetricsEnabled     bool     `yaml:"metricsEnabled"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins"`
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

// RateLimitEnabled reports whether requests to the analysis endpoint are throttled.
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

// CacheKeyPrefix namespaces cached results by the settings that change the
// result for a given text.
func (c *Config) CacheKeyPrefix() string {
	fingerprint := fmt.Sprintf("%s|%t|%g|%g", c.Scorer, c.StripMarkdown, c.PositiveThreshold, c.NegativeThreshold)
	sum := sha256.Sum256([]byte(fingerprint))
	return "mood:result:" + hex.EncodeToString(sum[:4]) + ":"
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Host:               "0.0.0.0",
		Port:               "8080",
		RequestTimeout:     30 * time.Second,
		MaxRequestBodySize: 1024 * 1024, // 1MB
		LogLevel:           "info",
		LogFormat:          "json",
		Scorer:             "vader",
		PositiveThreshold:  0.1,
		NegativeThreshold:  -0.1,
		RedisDB:            0,
		CacheTTL:           24 * time.Hour,
		RateLimitRPS:       0,
		RateLimitBurst:     20,
		MetricsEnabled:     true,
		CORSAllowedOrigins: []string{"*"},
	}
}

// LoadFromEnv builds the configuration from defaults, an optional YAML file
// named by CONFIG_FILE, an optional dotenv file and the process environment,
// in increasing order of precedence.
func LoadFromEnv() (*Config, error) {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %q: %w", envFile, err)
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	env := &envReader{}
	cfg.Host = getEnvOrDefault("HOST", cfg.Host)
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.RequestTimeout = env.duration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MaxRequestBodySize = env.int64("MAX_REQUEST_BODY_SIZE", cfg.MaxRequestBodySize)
	cfg.LogLevel = strings.ToLower(getEnvOrDefault("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnvOrDefault("LOG_FORMAT", cfg.LogFormat))
	cfg.Scorer = strings.ToLower(getEnvOrDefault("SCORER", cfg.Scorer))
	cfg.StripMarkdown = env.bool("SCORER_STRIP_MARKDOWN", cfg.StripMarkdown)
	cfg.PositiveThreshold = env.float("MOOD_POSITIVE_THRESHOLD", cfg.PositiveThreshold)
	cfg.NegativeThreshold = env.float("MOOD_NEGATIVE_THRESHOLD", cfg.NegativeThreshold)
	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = int(env.int64("REDIS_DB", int64(cfg.RedisDB)))
	cfg.CacheTTL = env.duration("CACHE_TTL", cfg.CacheTTL)
	cfg.RateLimitRPS = env.float("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = int(env.int64("RATE_LIMIT_BURST", int64(cfg.RateLimitBurst)))
	cfg.MetricsEnabled = env.bool("METRICS_ENABLED", cfg.MetricsEnabled)
	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", c.RequestTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %q", c.LogFormat)
	}
	if c.Scorer != "vader" {
		return fmt.Errorf("unsupported SCORER: %q", c.Scorer)
	}
	if c.NegativeThreshold < -1 || c.PositiveThreshold > 1 || c.NegativeThreshold > c.PositiveThreshold {
		return fmt.Errorf("mood thresholds must satisfy -1 <= negative <= positive <= 1 (got negative=%g, positive=%g)",
			c.NegativeThreshold, c.PositiveThreshold)
	}
	if c.CacheEnabled() && c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0 when REDIS_ADDR is set (got %s)", c.CacheTTL)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0 (got %g)", c.RateLimitRPS)
	}
	if c.RateLimitEnabled() && c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be > 0 when rate limiting is enabled (got %d)", c.RateLimitBurst)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to decode config file %q: %w", path, err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses typed environment values, collecting malformed ones
// instead of falling back to the default.
type envReader struct {
	errs []error
}

func (r *envReader) lookup(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	return value, value != ""
}

func (r *envReader) invalid(key, value string, err error) {
	r.errs = append(r.errs, fmt.Errorf("invalid %s %q: %w", key, value, err))
}

func (r *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		r.invalid(key, value, err)
		return defaultValue
	}
	return duration
}

func (r *envReader) int64(key string, defaultValue int64) int64 {
	value, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		r.invalid(key, value, err)
		return defaultValue
	}
	return intValue
}

func (r *envReader) float(key string, defaultValue float64) float64 {
	value, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(floatValue) || math.IsInf(floatValue, 0) {
		if err == nil {
			err = errors.New("not a finite number")
		}
		r.invalid(key, value, err)
		return defaultValue
	}
	return floatValue
}

func (r *envReader) bool(key string, defaultValue bool) bool {
	value, ok := r.lookup(key)
	if !ok {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		r.invalid(key, value, err)
		return defaultValue
	}
	return boolValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
