package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Environment string `yaml:"env" env:"ENV" env-default:"prod"`
	Address     string `yaml:"address" env:"ADDRESS" env-default:"localhost:8000"`
	// APIKeyHash - bcrypt-хэш ключа API. Пустой хэш отключает проверку.
	APIKeyHash string `yaml:"api_key_hash" env:"API_KEY_HASH"`
	Search     ConfigSearch
	Session    ConfigSession
	ConfigDB
}

// ConfigSearch - настройки поиска пути "ножницами".
type ConfigSearch struct {
	ProgressInterval time.Duration `yaml:"progress_interval" env:"SEARCH_PROGRESS_INTERVAL" env-default:"100ms"`
	MaxConcurrent    int64         `yaml:"max_concurrent" env:"SEARCH_MAX_CONCURRENT" env-default:"4"`
}

// ConfigSession - настройки сессий выделения по websocket.
type ConfigSession struct {
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SESSION_IDLE_TIMEOUT" env-default:"10m"`
}

type ConfigDB struct {
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-required:"true"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	DBUsername string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD" env-required:"true"`
}

// MustCreateConfig создает структуру конфига из файла, путь которого
// передан в path. Если возникла ошибка, приложение падает.
func MustCreateConfig(path string) *Config {
	cfg, err := ReadConfig(path)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

// ReadConfig читает конфиг из файла path, переменные окружения имеют приоритет.
func ReadConfig(path string) (*Config, error) {
	var cfg Config
	log.Println("reading config from file: ", path)
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
