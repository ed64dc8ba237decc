package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/pedalnorte/championship-api/external/notifier"
	"github.com/pedalnorte/championship-api/internal/config"
	"github.com/pedalnorte/championship-api/internal/domain/club"
	"github.com/pedalnorte/championship-api/internal/domain/event"
	"github.com/pedalnorte/championship-api/internal/domain/registration"
	"github.com/pedalnorte/championship-api/internal/domain/result"
	"github.com/pedalnorte/championship-api/internal/domain/rider"
	"github.com/pedalnorte/championship-api/internal/infrastructure/repository/memory"
	"github.com/pedalnorte/championship-api/internal/infrastructure/repository/postgres"
	"github.com/pedalnorte/championship-api/internal/interfaces/httpapi"
	"github.com/pedalnorte/championship-api/internal/platform/cache"
	idgen "github.com/pedalnorte/championship-api/internal/platform/id"
	"github.com/pedalnorte/championship-api/internal/platform/logging"
	"github.com/pedalnorte/championship-api/internal/usecase"
)

// memoryDBURL selects the in-memory repositories instead of Postgres. Useful
// for local development and demo deployments without a database.
const memoryDBURL = "memory"

type repositories struct {
	requests registration.Repository
	riders   rider.Repository
	clubs    club.Repository
	events   event.Repository
	results  result.Repository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	var registrationNotifier usecase.RegistrationNotifier
	if cfg.NotifierEnabled {
		registrationNotifier = notifier.NewWebhookNotifier(notifier.WebhookNotifierConfig{
			URL:            cfg.NotifierURL,
			Token:          cfg.NotifierToken,
			Timeout:        cfg.NotifierTimeout,
			CircuitBreaker: cfg.NotifierCircuit,
		}, logger)
	}

	categories := usecase.NewCategorySet(cfg.Categories)
	generator := idgen.NewRandomGenerator()

	rankingSvc := usecase.NewRankingService(repos.events, repos.riders, repos.results, store, categories, cfg.RankingWarmWorkers, logger)
	registrationSvc := usecase.NewRegistrationService(repos.requests, repos.riders, categories, generator, registrationNotifier, logger)
	rosterSvc := usecase.NewRosterService(repos.requests, repos.riders, repos.clubs, categories, cfg.DefaultClub, cfg.DefaultCity, generator, logger)
	resultSvc := usecase.NewResultService(repos.results, repos.riders, repos.events, rankingSvc, categories, generator, logger)
	eventSvc := usecase.NewEventService(repos.events)

	handler := httpapi.NewHandler(registrationSvc, rosterSvc, resultSvc, rankingSvc, eventSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.OperatorToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == memoryDBURL {
		logger.Info("using in-memory repositories", "reason", "DB_URL=memory")
		return repositories{
			requests: memory.NewRegistrationRepository(),
			riders:   memory.NewRiderRepository(nil),
			clubs:    memory.NewClubRepository(memory.SeedClubs()),
			events:   memory.NewEventRepository(memory.SeedEvents()),
			results:  memory.NewResultRepository(),
		}, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	return repositories{
		requests: postgres.NewRegistrationRepository(db),
		riders:   postgres.NewRiderRepository(db),
		clubs:    postgres.NewClubRepository(db),
		events:   postgres.NewEventRepository(db),
		results:  postgres.NewResultRepository(db),
	}, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary), opts...)
	if err != nil {
		return nil, err
	}

	return db, nil
}
