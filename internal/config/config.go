package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is loaded once at startup from config.yaml and overridden by
// environment variables (a .env file is honored in development).
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"` // development | production
	} `yaml:"server"`

	Database struct {
		URI  string `yaml:"uri"` // empty selects the in-memory store (development only)
		Name string `yaml:"name"`
	} `yaml:"database"`

	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`

	OTP struct {
		TTL            time.Duration `yaml:"ttl"`
		ResendCooldown time.Duration `yaml:"resend_cooldown"`
	} `yaml:"otp"`

	Sendgrid struct {
		APIKey    string `yaml:"api_key"`
		FromEmail string `yaml:"from_email"`
		FromName  string `yaml:"from_name"`
	} `yaml:"sendgrid"`
}

// ErrMissingJWTSecret aborts startup: the server must never sign tokens with
// a baked-in fallback secret.
var ErrMissingJWTSecret = errors.New("jwt secret is not configured (set JWT_SECRET or jwt.secret)")

// Load reads config.yaml (path from CONFIG_PATH, default config/config.yaml)
// and applies environment overrides. A missing file is tolerated so the
// server can run from environment variables alone.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		decodeErr := decoder.Decode(cfg)
		f.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, decodeErr)
		}
	}

	applyEnv(cfg)

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.Database.URI == "" && cfg.Server.Env != "development" {
		return nil, errors.New("database uri is required outside development mode")
	}
	if cfg.Sendgrid.APIKey == "" && cfg.Server.Env != "development" {
		// The fallback sender logs codes in plaintext, which must never
		// happen outside development.
		return nil, errors.New("sendgrid api key is required outside development mode")
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"
	cfg.Database.Name = "savaan_database"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.OTP.TTL = 10 * time.Minute
	cfg.OTP.ResendCooldown = 60 * time.Second
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("MONGODB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		cfg.Sendgrid.APIKey = v
	}
	if v := os.Getenv("SENDGRID_FROM_EMAIL"); v != "" {
		cfg.Sendgrid.FromEmail = v
	}
	if v := os.Getenv("SENDGRID_FROM_NAME"); v != "" {
		cfg.Sendgrid.FromName = v
	}
}

// IsDevelopment reports whether the server runs in development mode. OTP
// echoing in responses and 5xx detail exposure key off this.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
