package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Cache backends understood by Config.Cache.
const (
	CacheNone     = "none"
	CacheSqlite   = "sqlite"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Config holds the settings shared by the CLI and the gateway.
// Precedence: environment, then the YAML file named by VRP_CONFIG_FILE, then defaults.
type Config struct {
	Token       string        `yaml:"token"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	RatePerSec  float64       `yaml:"rate_per_sec"`
	Cache       string        `yaml:"cache"`
	CacheDSN    string        `yaml:"cache_dsn"`
	RedisURL    string        `yaml:"redis_url"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	Port        string        `yaml:"port"`
}

func Default() Config {
	return Config{
		BaseURL:     "https://api.routific.com",
		Timeout:     60 * time.Second,
		MaxAttempts: 1,
		Cache:       CacheNone,
		CacheTTL:    24 * time.Hour,
		Port:        "8080",
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (optional), then the YAML file at VRP_CONFIG_FILE (optional),
// then applies environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return LoadFile(os.Getenv("VRP_CONFIG_FILE"))
}

// LoadFile is Load without the .env step. An empty path skips the YAML file.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg.Cache = strings.ToLower(strings.TrimSpace(cfg.Cache))
	switch cfg.Cache {
	case "":
		cfg.Cache = CacheNone
	case CacheNone, CacheSqlite, CachePostgres, CacheRedis:
	default:
		return Config{}, fmt.Errorf("load config: unknown cache backend %q", cfg.Cache)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Token = Get("VRP_API_TOKEN", cfg.Token)
	cfg.BaseURL = Get("VRP_BASE_URL", cfg.BaseURL)
	cfg.Cache = Get("VRP_CACHE", cfg.Cache)
	cfg.CacheDSN = Get("VRP_CACHE_DSN", cfg.CacheDSN)
	cfg.RedisURL = Get("REDIS_URL", cfg.RedisURL)
	cfg.Port = Get("PORT", cfg.Port)

	if v := Get("VRP_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VRP_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := Get("VRP_CACHE_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VRP_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v := Get("VRP_MAX_ATTEMPTS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("VRP_MAX_ATTEMPTS: %w", err)
		}
		cfg.MaxAttempts = n
	}
	if v := Get("VRP_RATE_PER_SEC", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("VRP_RATE_PER_SEC: %w", err)
		}
		cfg.RatePerSec = f
	}
	return nil
}
