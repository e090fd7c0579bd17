// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Бэкенды хранилища документов.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	GRPC            `yaml:"grpc"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	Admin           `yaml:"admin"`
	Razorpay        `yaml:"razorpay"`
	RabbitMQ        `yaml:"rabbitmq"`
	RateLimit       `yaml:"rate_limit"`
	Ads             `yaml:"ads"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	PublicURL   string        `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:8080"`
}

// GRPC адрес gRPC-сервера с health-сервисом. Пустой адрес отключает сервер.
type GRPC struct {
	AddressGRPC string `yaml:"address" env:"GRPC_ADDRESS"`
}

// Storage выбор бэкенда хранилища документов
type Storage struct {
	Backend                 string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"memory"`
	StorageConnectionString string `yaml:"connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	KeyPrefix    string        `yaml:"key_prefix"`
	TTL          time.Duration `yaml:"ttl"`
}

// Admin настройки входа администратора
type Admin struct {
	PasswordHash string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"ADMIN_JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"12h"`
}

// Razorpay ключи платёжного шлюза
type Razorpay struct {
	KeyID         string `yaml:"key_id" env:"RAZORPAY_KEY_ID"`
	KeySecret     string `yaml:"key_secret" env:"RAZORPAY_KEY_SECRET"`
	WebhookSecret string `yaml:"webhook_secret" env:"RAZORPAY_WEBHOOK_SECRET"`
	APIURL        string `yaml:"api_url" env-default:"https://api.razorpay.com/v1"`
}

// RabbitMQ брокер событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitMQURL string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange    string `yaml:"exchange" env-default:"finance"`
}

// RateLimit лимит запросов на один IP
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"10"`
	Burst int     `yaml:"burst" env-default:"20"`
}

// Ads идентификатор клиента рекламной сети
type Ads struct {
	AdClientID string `yaml:"client_id" env:"ADS_CLIENT_ID"`
}

// Load читает конфиг из файла path с переопределением через переменные окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.AddressRedis == "" {
			return fmt.Errorf("redis_connection.addressredis is required for backend %q", c.Backend)
		}
	case BackendPostgres:
		if c.StorageConnectionString == "" {
			return fmt.Errorf("storage.connection_string is required for backend %q", c.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
	if c.PasswordHash != "" && c.JWTSecretKey == "" {
		return fmt.Errorf("admin.jwt_secret_key is required when admin.password_hash is set")
	}
	return nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  PublicURL: %s\n"+
			"GRPC:\n"+
			"  Address: %s\n"+
			"Storage:\n"+
			"  Backend: %s\n"+
			"  ConnectionString: %s\n"+
			"  MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"  KeyPrefix: %s\n"+
			"Admin:\n"+
			"  PasswordHash: %s\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Razorpay:\n"+
			"  KeyID: %s\n"+
			"  KeySecret: %s\n"+
			"  WebhookSecret: %s\n"+
			"  APIURL: %s\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"  Exchange: %s\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.PublicURL,
		c.AddressGRPC,
		c.Backend,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressRedis,
		mask(c.Password),
		c.DB,
		c.KeyPrefix,
		mask(c.PasswordHash),
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.KeyID,
		mask(c.KeySecret),
		mask(c.WebhookSecret),
		c.APIURL,
		mask(c.RabbitMQURL),
		c.Exchange,
		c.RPS,
		c.Burst,
	)
}
