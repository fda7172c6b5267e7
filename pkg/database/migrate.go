package database

import (
	"embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"flight-review/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

// migrationLogger adapts zap to the migrate.Logger interface.
type migrationLogger struct {
	log *zap.Logger
}

func (m *migrationLogger) Printf(format string, v ...any) {
	m.log.Info(strings.TrimRight(fmt.Sprintf(format, v...), "\n"))
}

func (m *migrationLogger) Verbose() bool {
	return false
}

// MigrationURL builds the pgx5:// URL understood by the migrate pgx/v5 driver.
func MigrationURL(config utils.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(config.User, config.Password),
		Host:     net.JoinHostPort(config.Host, config.Port),
		Path:     "/" + config.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Migrate applies the embedded schema migrations in the given direction. An
// already up-to-date schema is not an error.
func Migrate(config utils.DatabaseConfig, direction MigrationDirection, log *zap.Logger) (err error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, MigrationURL(config))
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	m.Log = &migrationLogger{log: log.With(zap.String("component", "migrate"))}

	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Schema already up to date", zap.String("direction", string(direction)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		log.Info("Schema migrated",
			zap.String("direction", string(direction)),
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)
	}

	return nil
}
