package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"flight-review/internal/data/repository"
	"flight-review/internal/event"
	"flight-review/internal/wire"
	"flight-review/pkg/cache"
	"flight-review/pkg/database"
	"flight-review/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	roleIntake     = "intake"
	roleBackoffice = "backoffice"
	roleAll        = "all"
)

var serveRole string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP surfaces and the review sync consumer",
	Long: `Run one or both subsystems.

  intake      public review submission and published listing
  backoffice  company API plus the consumer that marks new reviews TREATED
  all         both of the above in one process`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveRole, "role", roleAll, "intake, backoffice or all")
}

func runServe(cmd *cobra.Command, _ []string) error {
	switch serveRole {
	case roleIntake, roleBackoffice, roleAll:
	default:
		return fmt.Errorf("unknown role %q", serveRole)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("role", serveRole),
		zap.String("bus", config.Bus.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	flightCache := openFlightCache(ctx, config.Redis, logger)
	if closer, ok := flightCache.(*cache.RedisCache); ok {
		defer closer.Close()
	}

	repos := repository.NewRepository(db, flightCache, config.Redis.FlightTTL, logger)

	bus, err := event.NewBus(ctx, config.Bus, logger)
	if err != nil {
		return fmt.Errorf("open event bus: %w", err)
	}
	defer bus.Close()

	app := wire.Wiring(repos, bus, config, logger)

	g, gctx := errgroup.WithContext(ctx)

	if serveRole == roleIntake || serveRole == roleAll {
		g.Go(func() error {
			return APIServer(gctx, app.Intake, config.App.IntakePort, logger.With(zap.String("surface", "intake")))
		})
	}

	if serveRole == roleBackoffice || serveRole == roleAll {
		g.Go(func() error {
			return APIServer(gctx, app.Backoffice, config.App.BackofficePort, logger.With(zap.String("surface", "backoffice")))
		})
		g.Go(func() error {
			return app.Service.Sync.Run(gctx, bus)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Shutting down after failure", zap.Error(err))
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}

// openFlightCache returns nil when Redis is not configured or unreachable;
// flight lookups then go straight to Postgres.
func openFlightCache(ctx context.Context, config utils.RedisConfig, logger *zap.Logger) repository.JSONCache {
	if config.Addr == "" {
		return nil
	}

	rc, err := cache.NewRedisCache(ctx, config)
	if err != nil {
		logger.Warn("Flight cache disabled", zap.Error(err))
		return nil
	}

	logger.Info("Flight cache enabled", zap.String("addr", config.Addr), zap.Duration("ttl", config.FlightTTL))
	return rc
}
