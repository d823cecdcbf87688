package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/jwt"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the serve command's configuration.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	StorageDir     string        `yaml:"storage_dir"`
	DBPath         string        `yaml:"db_path"`
	JWTSecret      string        `yaml:"jwt_secret"`
	SigningKey     string        `yaml:"signing_key"`
	PublicURL      string        `yaml:"public_url"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RateLimit      float64       `yaml:"rate_limit"` // requests per second per user
	RateBurst      int           `yaml:"rate_burst"`
	URLTTL         time.Duration `yaml:"url_ttl"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	DeleteInputs   bool          `yaml:"delete_inputs"`
}

// DefaultServerConfig returns the defaults used before any file, environment
// or flag is applied.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:           ":8080",
		StorageDir:     "data",
		DBPath:         "readdoc.db",
		RateLimit:      2,
		RateBurst:      10,
		URLTTL:         time.Hour,
		MaxUploadBytes: 20 << 20,
		DeleteInputs:   true,
	}
}

// LoadServerConfig reads a YAML config file over the defaults.
// An empty path returns the defaults.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from READDOC_* environment variables.
func (c *ServerConfig) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("READDOC_ADDR", &c.Addr)
	str("READDOC_STORAGE_DIR", &c.StorageDir)
	str("READDOC_DB", &c.DBPath)
	str("READDOC_JWT_SECRET", &c.JWTSecret)
	str("READDOC_SIGNING_KEY", &c.SigningKey)
	str("READDOC_PUBLIC_URL", &c.PublicURL)

	if v := getenv("READDOC_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := getenv("READDOC_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("READDOC_RATE_LIMIT: %w", err)
		}
		c.RateLimit = f
	}
	if v := getenv("READDOC_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("READDOC_RATE_BURST: %w", err)
		}
		c.RateBurst = n
	}
	if v := getenv("READDOC_URL_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("READDOC_URL_TTL: %w", err)
		}
		c.URLTTL = d
	}
	if v := getenv("READDOC_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("READDOC_MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}
	if v := getenv("READDOC_DELETE_INPUTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("READDOC_DELETE_INPUTS: %w", err)
		}
		c.DeleteInputs = b
	}
	return nil
}

// Validate checks that required fields are present and values are sane.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return readdoc.Errorf(readdoc.EINVALID, "addr is required")
	}
	if c.StorageDir == "" {
		return readdoc.Errorf(readdoc.EINVALID, "storage_dir is required")
	}
	if c.JWTSecret == "" {
		return readdoc.Errorf(readdoc.EINVALID, "jwt_secret is required")
	}
	if len(c.JWTSecret) < jwt.MinSecretLen {
		return readdoc.Errorf(readdoc.EINVALID, "jwt_secret must be at least %d bytes", jwt.MinSecretLen)
	}
	if c.SigningKey == "" {
		return readdoc.Errorf(readdoc.EINVALID, "signing_key is required")
	}
	if c.RateLimit < 0 {
		return readdoc.Errorf(readdoc.EINVALID, "rate_limit must be >= 0")
	}
	if c.URLTTL <= 0 {
		return readdoc.Errorf(readdoc.EINVALID, "url_ttl must be > 0")
	}
	if c.MaxUploadBytes <= 0 {
		return readdoc.Errorf(readdoc.EINVALID, "max_upload_bytes must be > 0")
	}
	return nil
}

// BaseURL returns the URL prefix for download links.
func (c *ServerConfig) BaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimSuffix(c.PublicURL, "/")
	}
	host := c.Addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
