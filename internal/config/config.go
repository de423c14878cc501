package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`

	OpenAPI openAPIConfig `koanf:"openapi"`
}

type openAPIConfig struct {
	Enabled    bool   `koanf:"enabled"`
	PublicHost string `koanf:"public_host"`
	PublicPath string `koanf:"public_path"`
}

type storageConfig struct {
	DataDir string `koanf:"data_dir"`
}

type authConfig struct {
	Secret string `koanf:"secret"`
	Issuer string `koanf:"issuer"`
}

type providerConfig struct {
	Token   string `koanf:"token"`
	BaseURL string `koanf:"base_url"`
}

type providersConfig struct {
	Vercel  providerConfig `koanf:"vercel"`
	Netlify providerConfig `koanf:"netlify"`
	Railway providerConfig `koanf:"railway"`

	CreateTimeout time.Duration `koanf:"create_timeout"`
	StatusTimeout time.Duration `koanf:"status_timeout"`
	CancelTimeout time.Duration `koanf:"cancel_timeout"`
}

type pollerConfig struct {
	Interval    time.Duration `koanf:"interval"`
	Workers     int           `koanf:"workers"`
	MaxAttempts int           `koanf:"max_attempts"`
}

type gitConfig struct {
	ValidateSource bool          `koanf:"validate_source"`
	Timeout        time.Duration `koanf:"timeout"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage   storageConfig   `koanf:"storage"`
	Auth      authConfig      `koanf:"auth"`
	Providers providersConfig `koanf:"providers"`
	Poller    pollerConfig    `koanf:"poller"`
	Git       gitConfig       `koanf:"git"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		Auth: authConfig{
			Secret: os.Getenv("AUTOCREA_JWT_SECRET"),
			Issuer: "autocrea",
		},

		Providers: providersConfig{
			Vercel: providerConfig{
				Token:   os.Getenv("VERCEL_TOKEN"),
				BaseURL: "https://api.vercel.com",
			},
			Netlify: providerConfig{
				Token:   os.Getenv("NETLIFY_TOKEN"),
				BaseURL: "https://api.netlify.com",
			},
			Railway: providerConfig{
				Token:   os.Getenv("RAILWAY_TOKEN"),
				BaseURL: "https://backboard.railway.app",
			},
			CreateTimeout: 30 * time.Second,
			StatusTimeout: 10 * time.Second,
			CancelTimeout: 15 * time.Second,
		},

		Poller: pollerConfig{
			Interval:    15 * time.Second,
			Workers:     4,
			MaxAttempts: 5,
		},

		Git: gitConfig{
			ValidateSource: false,
			Timeout:        30 * time.Second,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
