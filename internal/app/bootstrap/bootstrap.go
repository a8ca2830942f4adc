package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	pressservice "caucus/contexts/content/press-service"
	presspostgres "caucus/contexts/content/press-service/adapters/postgres"
	digitalauditservice "caucus/contexts/endorsement/digital-audit-service"
	"caucus/contexts/endorsement/digital-audit-service/adapters/dispatch"
	auditpostgres "caucus/contexts/endorsement/digital-audit-service/adapters/postgres"
	auditworkers "caucus/contexts/endorsement/digital-audit-service/application/workers"
	vettingservice "caucus/contexts/endorsement/vetting-service"
	vettingpostgres "caucus/contexts/endorsement/vetting-service/adapters/postgres"
	vettingworkers "caucus/contexts/endorsement/vetting-service/application/workers"
	"caucus/contexts/endorsement/vetting-service/domain/entities"
	"caucus/contexts/endorsement/vetting-service/domain/services"
	membershipservice "caucus/contexts/identity/membership-service"
	membershippostgres "caucus/contexts/identity/membership-service/adapters/postgres"
	"caucus/internal/platform/config"
	"caucus/internal/platform/db"
	"caucus/internal/platform/httpserver"
	"caucus/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres       *db.Postgres
	outboxRelay    vettingworkers.OutboxRelay
	orphanDetector auditworkers.OrphanDetector
	relayEnabled   bool
	orphansEnabled bool
	pollInterval   time.Duration
	logger         *slog.Logger
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

	membershipRepo := membershippostgres.NewRepository(pg.DB, logger)
	membershipModule := membershipservice.NewModule(membershipservice.Dependencies{
		Members: membershipRepo,
		Clock:   membershippostgres.SystemClock{},
		Logger:  logger,
	})

	pressRepo := presspostgres.NewRepository(pg.DB, logger)
	pressModule := pressservice.NewModule(pressservice.Dependencies{
		Posts:  pressRepo,
		Clock:  presspostgres.SystemClock{},
		IDGen:  presspostgres.UUIDGenerator{},
		Logger: logger,
	})

	vettingRepo := vettingpostgres.NewRepository(pg.DB, logger)
	vettingModule := vettingservice.NewModule(vettingservice.Dependencies{
		Vettings:         vettingRepo,
		Sections:         vettingRepo,
		Votes:            vettingRepo,
		Actors:           vettingActorDirectory{actors: membershipModule.Actors},
		Candidates:       vettingRepo,
		Press:            pressPublisher{posts: pressModule.Posts},
		Outbox:           vettingRepo,
		Clock:            vettingpostgres.SystemClock{},
		IDGen:            vettingpostgres.UUIDGenerator{},
		TiePolicy:        tiePolicyFromConfig(cfg.TiePolicy),
		OrgName:          cfg.OrgName,
		RequiredSections: requiredSectionsFromConfig(cfg.RequiredSections),
		Logger:           logger,
	})

	auditRepo := auditpostgres.NewRepository(pg.DB, logger)
	auditModule := digitalauditservice.NewModule(digitalauditservice.Dependencies{
		Audits:     auditRepo,
		Vettings:   auditVettingDirectory{vettings: vettingRepo},
		Actors:     auditActorDirectory{actors: membershipModule.Actors},
		Dispatcher: &dispatch.GoDispatcher{Logger: logger},
		Clock:      auditpostgres.SystemClock{},
		IDGen:      auditpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(
		vettingModule,
		auditModule,
		pressModule,
		membershipModule,
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

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	vettingRepo := vettingpostgres.NewRepository(pg.DB, logger)
	auditRepo := auditpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: vettingworkers.OutboxRelay{
			Outbox:    vettingRepo,
			Publisher: kafka,
			Clock:     vettingpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		orphanDetector: auditworkers.OrphanDetector{
			Audits: auditRepo,
			Clock:  auditpostgres.SystemClock{},
			MaxAge: cfg.AuditOrphanAge,
			Logger: logger,
		},
		relayEnabled:   cfg.EnableOutboxRelay,
		orphansEnabled: cfg.EnableOrphanDetector,
		pollInterval:   cfg.WorkerPollInterval,
		logger:         logger,
	}, nil
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
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"outbox_relay", w.relayEnabled,
		"orphan_detector", w.orphansEnabled,
	)

	for {
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		if w.orphansEnabled {
			if _, err := w.orphanDetector.RunOnce(ctx); err != nil {
				return err
			}
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

func tiePolicyFromConfig(raw string) services.TiePolicy {
	if strings.EqualFold(strings.TrimSpace(raw), "conservative") {
		return services.TiePolicyConservative
	}
	return services.TiePolicyReject
}

func requiredSectionsFromConfig(raw []string) []entities.SectionType {
	if len(raw) == 0 {
		return nil // module default applies
	}
	sections := make([]entities.SectionType, 0, len(raw))
	for _, value := range raw {
		sectionType := entities.SectionType(strings.TrimSpace(value))
		if entities.IsValidSectionType(sectionType) {
			sections = append(sections, sectionType)
		}
	}
	if len(sections) == 0 {
		return nil
	}
	return sections
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
