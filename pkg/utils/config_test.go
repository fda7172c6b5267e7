package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.App.IntakePort)
	require.Equal(t, "8081", cfg.App.BackofficePort)
	require.Equal(t, "kafka", cfg.Bus.Driver)
	require.Equal(t, []string{"localhost:9092"}, cfg.Bus.KafkaBrokers)
	require.Equal(t, "review.new", cfg.Bus.KafkaTopic)
	require.Equal(t, "reviews-new-queue", cfg.Bus.SQSQueueName)
	require.Equal(t, 10*time.Minute, cfg.Redis.FlightTTL)
	require.EqualValues(t, 10, cfg.Database.MaxConns)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DB_NAME=reviews\nBUS_DRIVER=SQS\nKAFKA_BROKERS=a:9092, b:9092 ,\nJWT_SECRET=from-file\n",
	), 0o600))

	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "reviews", cfg.Database.Name)
	require.Equal(t, "sqs", cfg.Bus.Driver)
	require.Equal(t, []string{"a:9092", "b:9092"}, cfg.Bus.KafkaBrokers)
	require.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig("")
	require.ErrorIs(t, err, ErrMissingJWTSecret)

	t.Setenv("JWT_SECRET", "   ")
	_, err = LoadConfig("")
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}
