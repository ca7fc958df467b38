package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config — полная конфигурация сервера PetConnect.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Redis     RedisConfig     `koanf:"redis"`
	DeepSeek  DeepSeekConfig  `koanf:"deepseek"`
	Uploads   UploadsConfig   `koanf:"uploads"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type DatabaseConfig struct {
	MainPath string `koanf:"main_path"`
	AuthPath string `koanf:"auth_path"`
}

type AuthConfig struct {
	JWTSecret     string `koanf:"jwt_secret"`
	TokenTTLHours int    `koanf:"token_ttl_hours"`
	Issuer        string `koanf:"issuer"`
}

// RedisConfig описывает подключение к Redis. Пустой Addr отключает и
// серверное хранение скрытых оповещений, и ограничение частоты входа.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type DeepSeekConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	Timeout int    `koanf:"timeout"`
}

type UploadsConfig struct {
	Dir string `koanf:"dir"`
}

type RateLimitConfig struct {
	LoginLimit    int `koanf:"login_limit"`
	WindowSeconds int `koanf:"window_seconds"`
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл
// (если есть), затем переменные окружения.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("PETCONNECT_", ".", func(s string) string {
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Ключи с подчеркиваниями не переводятся в точки автоматически,
	// поэтому секреты пробрасываем явно.
	if secret := os.Getenv("PETCONNECT_JWT_SECRET"); secret != "" {
		k.Set("auth.jwt_secret", secret)
	}
	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		k.Set("deepseek.api_key", apiKey)
	}
	if addr := os.Getenv("PETCONNECT_REDIS_ADDR"); addr != "" {
		k.Set("redis.addr", addr)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет обязательные поля.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set PETCONNECT_JWT_SECRET or add to config file)")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Database.MainPath == "" || c.Database.AuthPath == "" {
		return fmt.Errorf("database.main_path and database.auth_path are required")
	}
	return nil
}
