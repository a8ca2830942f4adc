package pressservice

import (
	"log/slog"

	httpadapter "caucus/contexts/content/press-service/adapters/http"
	"caucus/contexts/content/press-service/adapters/memory"
	"caucus/contexts/content/press-service/application/commands"
	"caucus/contexts/content/press-service/application/queries"
	"caucus/contexts/content/press-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Posts   commands.PostUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Posts  ports.PostRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	postUseCase := commands.PostUseCase{
		Posts:  deps.Posts,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	postQueries := queries.PostQueries{Posts: deps.Posts}
	return Module{
		Handler: httpadapter.Handler{
			Queries: postQueries,
			Logger:  deps.Logger,
		},
		Posts: postUseCase,
	}
}

// NewInMemoryModule wires the module onto the in-memory store for tests and
// local runs.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Posts:  store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
