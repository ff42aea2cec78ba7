package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	JWT         JWTConfig
	Redis       RedisConfig
	MinIO       MinIOConfig
	Upload      UploadConfig
}

type JWTConfig struct {
	Secret        string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Base URL prefixed to stored keys when deriving public download links.
	// Defaults to the endpoint with the matching scheme.
	PublicBaseURL string
}

type UploadConfig struct {
	// Attachments over this size are rejected before any store call.
	MaxFileSize int64
	// Form drafts expire from Redis after this much inactivity.
	DraftTTL time.Duration
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinIOEndpoint  = "MINIO_ENDPOINT"
	envMinIOAccessKey = "MINIO_ACCESS_KEY"
	envMinIOSecretKey = "MINIO_SECRET_KEY"
	envMinIOBucket    = "MINIO_BUCKET"
	envMinIOUseSSL    = "MINIO_USE_SSL"
	envMinIOPublicURL = "MINIO_PUBLIC_URL"

	envJWTSecret = "JWT_SECRET"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv(envJWTSecret)
	if secret == "" {
		return nil, fmt.Errorf("%s must be set", envJWTSecret)
	}
	cfg.JWT = JWTConfig{
		Secret:        secret,
		ExpiresIn:     24 * time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}

	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return nil, fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	cfg.MinIO.Endpoint = os.Getenv(envMinIOEndpoint)
	cfg.MinIO.AccessKey = os.Getenv(envMinIOAccessKey)
	cfg.MinIO.SecretKey = os.Getenv(envMinIOSecretKey)
	cfg.MinIO.Bucket = os.Getenv(envMinIOBucket)
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = "service-request-files"
	}
	cfg.MinIO.UseSSL = os.Getenv(envMinIOUseSSL) == "true"
	cfg.MinIO.PublicBaseURL = os.Getenv(envMinIOPublicURL)
	if cfg.MinIO.PublicBaseURL == "" {
		scheme := "http"
		if cfg.MinIO.UseSSL {
			scheme = "https"
		}
		cfg.MinIO.PublicBaseURL = fmt.Sprintf("%s://%s", scheme, cfg.MinIO.Endpoint)
	}

	if cfg.Upload.MaxFileSize == 0 {
		cfg.Upload.MaxFileSize = 10 << 20 // 10MB, matches the form hint
	}
	if cfg.Upload.DraftTTL == 0 {
		cfg.Upload.DraftTTL = 24 * time.Hour
	}

	log.Info("config parsed")

	return cfg, nil
}
