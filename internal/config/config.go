package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend kinds for the result table.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

// Catalog sources.
const (
	CatalogBuiltin  = "builtin"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		SubmitRate     float64  `yaml:"submit_rate"`
		SubmitBurst    int      `yaml:"submit_burst"`
	} `yaml:"server"`
	Log struct {
		Env   string `yaml:"env"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Backend struct {
		Kind    string `yaml:"kind"`
		URL     string `yaml:"url"`
		APIKey  string `yaml:"api_key"`
		Table   string `yaml:"table"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`
	Catalog struct {
		Source string `yaml:"source"`
		Path   string `yaml:"path"`
	} `yaml:"catalog"`
	Local struct {
		Path string `yaml:"path"`
	} `yaml:"local"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Server.SubmitRate = 1
	cfg.Server.SubmitBurst = 5
	cfg.Log.Env = "development"
	cfg.Log.Level = "info"
	cfg.Backend.Kind = BackendMemory
	cfg.Backend.Table = "quiz_results"
	cfg.Backend.Timeout = "10s"
	cfg.Catalog.Source = CatalogBuiltin
	cfg.Local.Path = ".quiz"
	return cfg
}

// Load reads YAML config from path on top of the defaults and applies env overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		applyEnv(&cfg)
		return cfg, nil
	}
	return cfg, err
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.Postgres.URL = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("BACKEND_API_KEY"); v != "" {
		cfg.Backend.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
