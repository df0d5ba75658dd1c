package oss

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const envPrefix = "OSS_"

type Config struct {
	Endpoint          string        `koanf:"endpoint" validate:"required,url"`
	AccessKeyID       string        `koanf:"access_key_id" validate:"required"`
	AccessKeySecret   string        `koanf:"access_key_secret" validate:"required"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	LogLevel          string        `koanf:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	DeleteConcurrency int           `koanf:"delete_concurrency" validate:"gte=1,lte=64"`
}

var defaultConfig = Config{
	Timeout:           defaultTimeout,
	LogLevel:          "info",
	DeleteConcurrency: defaultDeleteConcurrency,
}

// LoadConfig reads path (if it exists) over the defaults, then applies OSS_*
// environment variables, e.g. OSS_ACCESS_KEY_ID.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load config env: %w", err)
	}

	cfg := defaultConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports every field that fails its constraint.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:")
	for _, e := range errs {
		sb.WriteString(fmt.Sprintf(" %s: failed '%s';", e.Field(), e.Tag()))
	}
	return errors.New(sb.String())
}

// NewClientFromConfig creates a client from a validated config
func NewClientFromConfig(cfg *Config) (*Client, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	return NewClient(&ClientOptions{
		AccessKeyID:       cfg.AccessKeyID,
		AccessKeySecret:   cfg.AccessKeySecret,
		Endpoint:          cfg.Endpoint,
		DeleteConcurrency: cfg.DeleteConcurrency,
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		Logger:            newDefaultLogger(level),
	}), nil
}
