package digitalauditservice

import (
	"log/slog"

	"caucus/contexts/endorsement/digital-audit-service/adapters/dispatch"
	httpadapter "caucus/contexts/endorsement/digital-audit-service/adapters/http"
	"caucus/contexts/endorsement/digital-audit-service/adapters/memory"
	"caucus/contexts/endorsement/digital-audit-service/adapters/research"
	"caucus/contexts/endorsement/digital-audit-service/application/commands"
	"caucus/contexts/endorsement/digital-audit-service/application/queries"
	"caucus/contexts/endorsement/digital-audit-service/application/workers"
	"caucus/contexts/endorsement/digital-audit-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Runner     workers.AuditRunner
	Store      *memory.Store
	Dispatcher *dispatch.GoDispatcher
}

type Dependencies struct {
	Audits     ports.AuditRepository
	Vettings   ports.VettingDirectory
	Actors     ports.ActorDirectory
	Researcher ports.Researcher
	Dispatcher ports.Dispatcher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	researcher := deps.Researcher
	if researcher == nil {
		researcher = research.NewHeuristicResearcher()
	}
	runner := workers.AuditRunner{
		Audits:     deps.Audits,
		Researcher: researcher,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	triggerUseCase := commands.TriggerUseCase{
		Audits:     deps.Audits,
		Vettings:   deps.Vettings,
		Actors:     deps.Actors,
		Dispatcher: deps.Dispatcher,
		Runner:     runner,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	auditQueries := queries.AuditQueries{
		Audits:   deps.Audits,
		Vettings: deps.Vettings,
	}
	return Module{
		Handler: httpadapter.Handler{
			Trigger: triggerUseCase,
			Queries: auditQueries,
			Logger:  deps.Logger,
		},
		Runner: runner,
	}
}

// NewInMemoryModule wires the module onto the in-memory store with the
// built-in heuristic researcher and a goroutine dispatcher. Tests call
// Dispatcher.Wait to observe audit outcomes deterministically.
func NewInMemoryModule(
	vettings ports.VettingDirectory,
	actors ports.ActorDirectory,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	dispatcher := &dispatch.GoDispatcher{Logger: logger}
	module := NewModule(Dependencies{
		Audits:     store,
		Vettings:   vettings,
		Actors:     actors,
		Dispatcher: dispatcher,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	module.Dispatcher = dispatcher
	return module
}
