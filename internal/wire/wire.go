package wire

import (
	"net/http"

	"flight-review/internal/adaptor"
	"flight-review/internal/data/repository"
	"flight-review/internal/event"
	"flight-review/internal/usecase"
	"flight-review/pkg/middleware"
	"flight-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the two HTTP surfaces and the services behind them.
type App struct {
	Service    *usecase.Service
	Intake     *chi.Mux
	Backoffice *chi.Mux
}

func Wiring(repo *repository.Repository, publisher event.Publisher, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	intake := newRouter(config, logger.With(zap.String("surface", "intake")))
	wireIntake(intake, handler.Intake)

	backoffice := newRouter(config, logger.With(zap.String("surface", "backoffice")))
	wireBackoffice(backoffice, handler, service.Company, logger)

	return &App{
		Service:    service,
		Intake:     intake,
		Backoffice: backoffice,
	}
}

func newRouter(config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
