package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds override-table settings parsed from environment variables.
type AppConfig struct {
	// Path is the override source file consulted on every lookup.
	Path string `koanf:"path" validate:"required"`

	// ProbeIntervalMS is the delay, in milliseconds, between the two
	// metadata samples of the mid-write stability check.
	ProbeIntervalMS int `koanf:"probe_interval_ms" validate:"gte=0"`

	// CacheSize bounds the decision cache; 0 disables caching.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// Watch enables fsnotify-backed change detection instead of stat
	// polling on every lookup.
	Watch bool `koanf:"watch"`

	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`
}

// DEFAULT_APP_CONFIG defines the default settings for the override table:
// the conventional hosts location, a 1ms stability probe, a modest
// decision cache, and production logging.
var DEFAULT_APP_CONFIG = AppConfig{
	Path:            "/etc/hosts",
	ProbeIntervalMS: 1,
	CacheSize:       1024,
	Watch:           false,
	Env:             "prod",
	LogLevel:        "info",
}

// envLoader is a function that loads environment variables with the prefix
// "HOSTS_". It transforms the keys to lowercase and removes the prefix,
// and can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "HOSTS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "HOSTS_"))
			value = strings.TrimSpace(value)
			return key, value
		},
	}), nil)
}

// defaultLoader loads default configuration values into the provided Koanf
// instance using the structs provider and the DEFAULT_APP_CONFIG struct.
// It returns an error if loading fails.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	// Load default values using structs provider.
	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	// Load environment variables with prefix "HOSTS_".
	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig

	// Unmarshal the loaded configuration into AppConfig struct.
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Validate the configuration.
	validate := validator.New(validator.WithRequiredStructEnabled())

	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
