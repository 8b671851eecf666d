package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backends soportados para guardar el client id.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config centraliza la configuración del cliente de chat y del backend de desarrollo.
type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	APIBase        string        `env:"CHAT_API_BASE" envDefault:"http://localhost:8080"`
	Language       string        `env:"CHAT_LANGUAGE" envDefault:"zh-Hant"`
	RequestTimeout time.Duration `env:"CHAT_REQUEST_TIMEOUT" envDefault:"0s"`
	ClientIDStore  string        `env:"CLIENT_ID_STORE" envDefault:"file"`
	ClientIDPath   string        `env:"CLIENT_ID_PATH" envDefault:".chat_widget.json"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normaliza y verifica los valores cargados.
func (c *Config) Validate() error {
	c.APIBase = strings.TrimRight(strings.TrimSpace(c.APIBase), "/")
	c.ClientIDStore = strings.ToLower(strings.TrimSpace(c.ClientIDStore))
	if c.APIBase == "" {
		return fmt.Errorf("config: CHAT_API_BASE is empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: CHAT_REQUEST_TIMEOUT must not be negative")
	}
	switch c.ClientIDStore {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: REDIS_ADDR is required when CLIENT_ID_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown CLIENT_ID_STORE %q", c.ClientIDStore)
	}
	return nil
}
