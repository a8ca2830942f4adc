package membershipservice

import (
	"log/slog"

	httpadapter "caucus/contexts/identity/membership-service/adapters/http"
	"caucus/contexts/identity/membership-service/adapters/memory"
	"caucus/contexts/identity/membership-service/application/commands"
	"caucus/contexts/identity/membership-service/application/queries"
	"caucus/contexts/identity/membership-service/domain/entities"
	"caucus/contexts/identity/membership-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Actors  queries.ActorQueries
	Store   *memory.Store
}

type Dependencies struct {
	Members ports.MemberRepository
	Clock   ports.Clock
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	roleUseCase := commands.RoleUseCase{
		Members: deps.Members,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	actorQueries := queries.ActorQueries{Members: deps.Members}
	return Module{
		Handler: httpadapter.Handler{
			Roles:  roleUseCase,
			Actors: actorQueries,
			Logger: deps.Logger,
		},
		Actors: actorQueries,
	}
}

// NewInMemoryModule wires the module onto the in-memory store seeded with the
// given members.
func NewInMemoryModule(seed []entities.Member, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Members: store,
		Clock:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
