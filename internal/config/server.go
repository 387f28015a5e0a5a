package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ServerConfig holds the HTTP API settings. Every field can be set from the
// environment with the API_ prefix, e.g. API_PORT=9090, API_CACHE_TTL=30m,
// API_CORS_ORIGINS=http://localhost:5173,https://example.org.
type ServerConfig struct {
	Port        string        `koanf:"port"`
	Env         string        `koanf:"env"`
	BatteryDir  string        `koanf:"battery_dir"`
	StaticDir   string        `koanf:"static_dir"`
	CORSOrigins string        `koanf:"cors_origins"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
}

func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:        "8080",
		Env:         "development",
		BatteryDir:  "examples/batteries",
		StaticDir:   "web/dist",
		CORSOrigins: "*",
		CacheTTL:    time.Hour,
	}
}

func (s ServerConfig) Production() bool {
	return s.Env == "production"
}

// AllowedOrigins splits the comma-separated CORSOrigins.
func (s ServerConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LoadServer reads API_* environment variables over DefaultServer().
func LoadServer() (*ServerConfig, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("API_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "API_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	cfg := DefaultServer()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode server config: %w", err)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache_ttl must be > 0")
	}
	return &cfg, nil
}
