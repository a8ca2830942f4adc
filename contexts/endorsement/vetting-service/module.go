package vettingservice

import (
	"log/slog"

	httpadapter "caucus/contexts/endorsement/vetting-service/adapters/http"
	"caucus/contexts/endorsement/vetting-service/adapters/memory"
	"caucus/contexts/endorsement/vetting-service/application/commands"
	"caucus/contexts/endorsement/vetting-service/application/queries"
	"caucus/contexts/endorsement/vetting-service/domain/entities"
	"caucus/contexts/endorsement/vetting-service/domain/services"
	"caucus/contexts/endorsement/vetting-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Vettings         ports.VettingRepository
	Sections         ports.SectionRepository
	Votes            ports.VoteRepository
	Actors           ports.ActorDirectory
	Candidates       ports.CandidateResponseDirectory
	Press            ports.PressPublisher
	Outbox           ports.OutboxWriter
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	TiePolicy        services.TiePolicy
	OrgName          string
	RequiredSections []entities.SectionType
	Logger           *slog.Logger
}

// DefaultRequiredSections is the default completed-section gate for opening
// the board vote. The exact set is deployment configuration.
func DefaultRequiredSections() []entities.SectionType {
	return []entities.SectionType{
		entities.SectionExecutiveSummary,
		entities.SectionCandidateBackground,
	}
}

func NewModule(deps Dependencies) Module {
	tiePolicy := deps.TiePolicy
	if tiePolicy == "" {
		tiePolicy = services.TiePolicyReject
	}
	required := deps.RequiredSections
	if required == nil {
		required = DefaultRequiredSections()
	}
	vettingUseCase := commands.VettingUseCase{
		Vettings:         deps.Vettings,
		Sections:         deps.Sections,
		Votes:            deps.Votes,
		Actors:           deps.Actors,
		Candidates:       deps.Candidates,
		Outbox:           deps.Outbox,
		Clock:            deps.Clock,
		IDGen:            deps.IDGen,
		RequiredSections: required,
		Logger:           deps.Logger,
	}
	finalizeUseCase := commands.FinalizeUseCase{
		Vettings:   deps.Vettings,
		Votes:      deps.Votes,
		Actors:     deps.Actors,
		Candidates: deps.Candidates,
		Press:      deps.Press,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		TiePolicy:  tiePolicy,
		OrgName:    deps.OrgName,
		Logger:     deps.Logger,
	}
	reportUseCase := queries.ReportUseCase{
		Vettings:  deps.Vettings,
		Sections:  deps.Sections,
		Votes:     deps.Votes,
		TiePolicy: tiePolicy,
	}
	return Module{
		Handler: httpadapter.Handler{
			Vettings: vettingUseCase,
			Finalize: finalizeUseCase,
			Reports:  reportUseCase,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module onto a single in-memory store for tests
// and local runs. Actors and Press stay injectable because they belong to
// other modules.
func NewInMemoryModule(
	seed []entities.Vetting,
	actors ports.ActorDirectory,
	press ports.PressPublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Vettings:   store,
		Sections:   store,
		Votes:      store,
		Actors:     actors,
		Candidates: store,
		Press:      press,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
