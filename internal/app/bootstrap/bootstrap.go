package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	cafeservice "cafescout/contexts/discovery/cafe-service"
	cafepostgres "cafescout/contexts/discovery/cafe-service/adapters/postgres"
	cafeworkers "cafescout/contexts/discovery/cafe-service/application/workers"
	ratingservice "cafescout/contexts/discovery/rating-service"
	ratingcafes "cafescout/contexts/discovery/rating-service/adapters/cafes"
	ratingpostgres "cafescout/contexts/discovery/rating-service/adapters/postgres"
	approvalpipeline "cafescout/contexts/moderation/approval-pipeline"
	"cafescout/contexts/moderation/approval-pipeline/adapters/classifier"
	"cafescout/contexts/moderation/approval-pipeline/adapters/llm"
	pipelinepostgres "cafescout/contexts/moderation/approval-pipeline/adapters/postgres"
	"cafescout/contexts/moderation/approval-pipeline/adapters/submissions"
	submissionservice "cafescout/contexts/moderation/submission-service"
	"cafescout/contexts/moderation/submission-service/adapters/metadata"
	subpostgres "cafescout/contexts/moderation/submission-service/adapters/postgres"
	subworkers "cafescout/contexts/moderation/submission-service/application/workers"
	"cafescout/contexts/moderation/submission-service/ports"
	"cafescout/internal/platform/config"
	"cafescout/internal/platform/db"
	"cafescout/internal/platform/httpserver"
	"cafescout/internal/platform/messaging"
	"cafescout/internal/platform/objectstore"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const submissionApprovedTopic = "submission.approved"

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  subworkers.OutboxRelay
	consumer     cafeworkers.SubmissionApprovedConsumer
	bus          *messaging.Bus
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	photos, err := buildPhotoStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	subRepo := subpostgres.NewRepository(pg.DB, logger)
	subModule := submissionservice.NewModule(submissionservice.Dependencies{
		Repository: subRepo,
		Outbox:     subRepo,
		Metadata:   metadata.NewFetcher(10 * time.Second),
		Photos:     photos,
		Clock:      subpostgres.SystemClock{},
		IDGen:      subpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	cafeRepo := cafepostgres.NewRepository(pg.DB, logger)
	cafeModule := cafeservice.NewModule(cafeservice.Dependencies{
		Repository: cafeRepo,
		Clock:      cafepostgres.SystemClock{},
		IDGen:      cafepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	ratingRepo := ratingpostgres.NewRepository(pg.DB, logger)
	ratingModule := ratingservice.NewModule(ratingservice.Dependencies{
		Repository: ratingRepo,
		Cafes:      ratingcafes.Checker{Queries: cafeModule.Handler.Queries},
		Clock:      ratingpostgres.SystemClock{},
		IDGen:      ratingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	bridge := submissions.Bridge{
		Repository: subRepo,
		AutoReview: subModule.AutoReview,
	}
	scorer := llm.NewScorer(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	pipelineModule := approvalpipeline.NewModule(approvalpipeline.Dependencies{
		Classifier: classifier.AutoClassifier{
			Queue:         bridge,
			Scorer:        scorer,
			Decider:       bridge,
			MinConfidence: cfg.LLM.MinConfidence,
			Logger:        logger,
		},
		Lease:      pipelinepostgres.NewLeaseRepository(pg.DB, logger),
		Clock:      subpostgres.SystemClock{},
		Secret:     cfg.CronSecret,
		BatchSize:  cfg.Pipeline.BatchSize,
		MaxBatches: cfg.Pipeline.MaxBatches,
		Pause:      cfg.Pipeline.Pause,
		LeaseTTL:   cfg.Pipeline.LeaseTTL,
		Verbose:    cfg.Pipeline.Verbose,
		Logger:     logger,
	})

	server := httpserver.New(
		cafeModule,
		ratingModule,
		subModule,
		pipelineModule,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	subRepo := subpostgres.NewRepository(pg.DB, logger)
	cafeRepo := cafepostgres.NewRepository(pg.DB, logger)
	cafeModule := cafeservice.NewModule(cafeservice.Dependencies{
		Repository: cafeRepo,
		Clock:      cafepostgres.SystemClock{},
		IDGen:      cafepostgres.UUIDGenerator{},
		Logger:     logger,
	})

	pollInterval := cfg.OutboxPollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	return &WorkerApp{
		postgres: pg,
		outboxRelay: subworkers.OutboxRelay{
			Outbox:    subRepo,
			Publisher: bus,
			Clock:     subpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		consumer:     cafeModule.Consumer,
		bus:          bus,
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

func buildPhotoStore(cfg config.Config, logger *slog.Logger) (ports.PhotoStore, error) {
	if strings.TrimSpace(cfg.Photos.Bucket) == "" {
		logger.Warn("photo bucket not configured, storing photos in memory",
			"event", "bootstrap_photo_store_memory",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return objectstore.NewMemoryStore(), nil
	}
	return objectstore.NewS3Store(objectstore.S3Config{
		Region:   cfg.Photos.Region,
		Bucket:   cfg.Photos.Bucket,
		Endpoint: cfg.Photos.Endpoint,
	}, logger)
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.bus.Subscribe(ctx, submissionApprovedTopic, "cafe-materializer-cg", w.consumer.Handle); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
