package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        string `yaml:"port"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		TTL string `yaml:"ttl"`
	} `yaml:"quiz"`
	Judge struct {
		Enabled             bool   `yaml:"enabled"`
		ConfidenceThreshold int    `yaml:"confidence_threshold"`
		Timeout             string `yaml:"timeout"`
		GeminiAPIKey        string `yaml:"gemini_api_key"`
		GeminiModel         string `yaml:"gemini_model"`
	} `yaml:"judge"`
}

// Load reads YAML config from path. The Gemini API key may also come from
// the environment so it stays out of config files.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Judge.GeminiAPIKey == "" {
		cfg.Judge.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Server.FrontendURL == "" {
		cfg.Server.FrontendURL = "http://localhost:3000"
	}
	return cfg, nil
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
