package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Engine   Engine  `yaml:"engine"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
}

type Engine struct {
	Mark string `yaml:"mark" env:"ENGINE_MARK" env-default:"O"`
	Seed int64  `yaml:"seed" env:"ENGINE_SEED" env-default:"0"`
	// false is the zero value, so learning is switched off rather than on
	DisableLearning bool `yaml:"disable-learning" env:"ENGINE_DISABLE_LEARNING"`
}

func (that *Engine) Learning() bool {
	return !that.DisableLearning
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Record     string `yaml:"record" env:"STORAGE_RECORD" env-default:"markov_learning"`
	FilePath   string `yaml:"file-path" env:"STORAGE_FILE_PATH" env-default:"markov_learning.json"`
	BadgerPath string `yaml:"badger-path" env:"STORAGE_BADGER_PATH" env-default:"data/badger"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path when it exists and otherwise falls back to environment and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
