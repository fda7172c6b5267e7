package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingJWTSecret is returned by LoadConfig when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Bus      BusConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name           string
	IntakePort     string
	BackofficePort string
	Debug          bool
	LogPath        string
	CORSOrigin     string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// BusConfig selects and configures the review event transport.
type BusConfig struct {
	Driver       string // kafka, sqs or memory
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string
	KafkaDLQ     string
	SQSQueueName string
	SQSEndpoint  string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	FlightTTL time.Duration
}

// LoadConfig reads the optional env file at path and then lets process
// environment variables override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "flight-review")
	v.SetDefault("INTAKE_PORT", "8080")
	v.SetDefault("BACKOFFICE_PORT", "8081")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ORIGIN", "http://localhost:4200")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("BUS_DRIVER", "kafka")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "review.new")
	v.SetDefault("KAFKA_GROUP_ID", "backoffice-review-sync")
	v.SetDefault("SQS_QUEUE_NAME", "reviews-new-queue")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FLIGHT_CACHE_TTL", "10m")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			IntakePort:     v.GetString("INTAKE_PORT"),
			BackofficePort: v.GetString("BACKOFFICE_PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			CORSOrigin:     v.GetString("CORS_ORIGIN"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Bus: BusConfig{
			Driver:       strings.ToLower(v.GetString("BUS_DRIVER")),
			KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),
			KafkaTopic:   v.GetString("KAFKA_TOPIC"),
			KafkaGroupID: v.GetString("KAFKA_GROUP_ID"),
			KafkaDLQ:     v.GetString("KAFKA_DLQ_TOPIC"),
			SQSQueueName: v.GetString("SQS_QUEUE_NAME"),
			SQSEndpoint:  v.GetString("SQS_ENDPOINT"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			FlightTTL: v.GetDuration("FLIGHT_CACHE_TTL"),
		},
	}

	if strings.TrimSpace(config.JWT.Secret) == "" {
		return nil, ErrMissingJWTSecret
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
