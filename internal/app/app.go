package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/wground/wground-api/external/groq"
	"github.com/wground/wground-api/internal/config"
	"github.com/wground/wground-api/internal/domain/announcement"
	"github.com/wground/wground-api/internal/infrastructure/repository/memory"
	"github.com/wground/wground-api/internal/infrastructure/repository/postgres"
	"github.com/wground/wground-api/internal/interfaces/httpapi"
	idgen "github.com/wground/wground-api/internal/platform/id"
	"github.com/wground/wground-api/internal/platform/logging"
	"github.com/wground/wground-api/internal/platform/resilience"
	"github.com/wground/wground-api/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repo, err := newAnnouncementRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	var completer usecase.Completer
	if cfg.GroqConfigured() {
		completer = groq.NewClient(groq.ClientConfig{
			BaseURL:     cfg.GroqBaseURL,
			APIKey:      cfg.GroqAPIKey,
			Model:       cfg.GroqModel,
			Temperature: cfg.GroqTemperature,
			MaxTokens:   cfg.GroqMaxTokens,
			Timeout:     cfg.GroqTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GroqCircuitEnabled,
				FailureThreshold: cfg.GroqCircuitFailureCount,
				OpenTimeout:      cfg.GroqCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GroqCircuitHalfOpenMaxReq,
			},
		}, logger)
	} else {
		// Extraction stays reachable but reports the missing credential
		// instead of calling out with a placeholder key.
		logger.Warn("GROQ_API_KEY is absent or a placeholder, extraction is disabled")
	}

	extractionSvc := usecase.NewExtractionService(completer, logger)
	announcementSvc := usecase.NewAnnouncementService(repo, idgen.NewRandomGenerator(), logger)

	handler := httpapi.NewHandler(extractionSvc, announcementSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

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

func newAnnouncementRepository(cfg config.Config, logger *logging.Logger) (announcement.Repository, error) {
	if !cfg.DBConfigured() {
		logger.Warn("DB_URL is absent or a placeholder, using in-memory store")
		return memory.NewAnnouncementRepository(), nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return postgres.NewAnnouncementRepository(db), nil
}
