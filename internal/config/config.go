package config

import (
	"fmt"

	"presignup-linker/internal/auth/credentials"

	"github.com/spf13/viper"
)

const (
	BackendCognito = "cognito"
	BackendMemory  = "memory"
)

type Config struct {
	AppPort  string `mapstructure:"app_port"`
	LogLevel string `mapstructure:"log_level"`

	// DirectoryBackend selects the user directory: "cognito" or "memory".
	DirectoryBackend string `mapstructure:"directory_backend"`

	AWSRegion        string `mapstructure:"aws_region"`
	CognitoEndpoint  string `mapstructure:"cognito_endpoint"`
	CognitoAccessKey string `mapstructure:"cognito_access_key"`
	CognitoSecretKey string `mapstructure:"cognito_secret_key"`

	PasswordLength int `mapstructure:"password_length"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	v := viper.New()

	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_port", "8080")
	v.SetDefault("log_level", "info")

	v.SetDefault("directory_backend", BackendCognito)

	// empty values still need a default so AutomaticEnv picks them up on Unmarshal
	v.SetDefault("aws_region", "")
	v.SetDefault("cognito_endpoint", "")
	v.SetDefault("cognito_access_key", "")
	v.SetDefault("cognito_secret_key", "")

	v.SetDefault("password_length", 32)
}

func validate(cfg Config) error {
	switch cfg.DirectoryBackend {
	case BackendCognito, BackendMemory:
	default:
		return fmt.Errorf("unknown directory_backend %q", cfg.DirectoryBackend)
	}

	if cfg.PasswordLength < credentials.MinPasswordLength {
		return fmt.Errorf("password_length must be at least %d", credentials.MinPasswordLength)
	}

	if (cfg.CognitoAccessKey == "") != (cfg.CognitoSecretKey == "") {
		return fmt.Errorf("cognito_access_key and cognito_secret_key must be set together")
	}

	return nil
}
