package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the application configuration, loaded from YAML with environment
// variable overrides.
type Config struct {
	Env string `yaml:"env" env:"WEEKPLAN_ENV" env-default:"local"`

	Log struct {
		Level  string `yaml:"level" env:"WEEKPLAN_LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"WEEKPLAN_LOG_FORMAT" env-default:"json"`
	} `yaml:"log"`

	Server struct {
		Port        int    `yaml:"port" env:"WEEKPLAN_SERVER_PORT" env-default:"8990"`
		StoragePath string `yaml:"storage_path" env:"WEEKPLAN_STORAGE_PATH" env-default:"weekplan.db"`
	} `yaml:"server"`

	Backend struct {
		BaseURL string `yaml:"base_url" env:"WEEKPLAN_BACKEND_URL" env-default:"http://localhost:8990"`
		Timeout int    `yaml:"timeout" env:"WEEKPLAN_BACKEND_TIMEOUT" env-default:"15"`
	} `yaml:"backend"`
}

// LoadConfig reads the config file at path. A missing file is not an error;
// the env-default values apply.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return &cfg, nil
}
