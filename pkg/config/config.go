package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the toolkit-wide settings. Values come from defaults first and
// environment variables second (STEPWIRE_ prefix, highest precedence).
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Notify NotifyConfig `koanf:"notify"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// NotifyConfig configures notification rendering and recipient paging.
type NotifyConfig struct {
	// HostURL is the base URL embedded into generated task links.
	HostURL string `koanf:"host_url" validate:"omitempty,url"`
	// PageSize is the default recipient page size for previews.
	PageSize int `koanf:"page_size" validate:"gt=0"`
	// MaxPageSize caps caller-provided page sizes.
	MaxPageSize int `koanf:"max_page_size" validate:"gtefield=PageSize"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Notify: NotifyConfig{
			PageSize:    50,
			MaxPageSize: 500,
		},
	}
}

const envPrefix = "STEPWIRE_"

// Load builds the configuration from defaults plus environment overrides and
// validates the result.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	// The provider's Prefix only filters variables; the callback still sees
	// the full name, so the prefix has to be stripped here.
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct-level constraints on an assembled configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
