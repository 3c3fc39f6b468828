package utils

import (
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// HTTP server
	AppPort     string `yaml:"APP_PORT"`
	CORSOrigins string `yaml:"CORS_ALLOWED_ORIGINS"`
	RateLimit   int    `yaml:"RATE_LIMIT_MAX"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AdminEmail       string `yaml:"ADMIN_EMAIL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Redis (rate limiter storage)
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Logging
	LogLevel string `yaml:"LOG_LEVEL"`
	LogHuman bool   `yaml:"LOG_HUMAN"`
}

var (
	config Config
	mu     sync.RWMutex
)

var defaults = map[string]string{
	"APP_PORT":             "8080",
	"CORS_ALLOWED_ORIGINS": "*",
	"RATE_LIMIT_MAX":       "20",
	"ADMIN_EMAIL":          "admin@bloodbank.com",
	"SMTP_SENDER_NAME":     "Blood Bank",
	"LOG_LEVEL":            "info",
	"DB_PORT":              "5432",
}

// LoadConfig reads the yaml file at path. A missing file is not an error:
// environment variables and defaults still apply.
func LoadConfig(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded Config
	if err := yaml.Unmarshal(file, &loaded); err != nil {
		return err
	}

	mu.Lock()
	config = loaded
	mu.Unlock()
	return nil
}

// SetConfig replaces the loaded configuration.
func SetConfig(c Config) {
	mu.Lock()
	config = c
	mu.Unlock()
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func fileValue(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "APP_PORT":
		return config.AppPort
	case "CORS_ALLOWED_ORIGINS":
		return config.CORSOrigins
	case "RATE_LIMIT_MAX":
		if config.RateLimit > 0 {
			return strconv.Itoa(config.RateLimit)
		}
		return ""
	case "JWT_SECRET":
		return config.JWTSecret
	case "ADMIN_EMAIL":
		return config.AdminEmail
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_HUMAN":
		if config.LogHuman {
			return getBoolString(config.LogHuman)
		}
		return ""
	default:
		return ""
	}
}

// GetConfig resolves key from the environment, then config.yaml, then defaults.
func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := fileValue(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}

func GetConfigBool(key string) bool {
	b, _ := strconv.ParseBool(GetConfig(key))
	return b
}
