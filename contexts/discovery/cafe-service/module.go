package cafeservice

import (
	"log/slog"

	httpadapter "cafescout/contexts/discovery/cafe-service/adapters/http"
	"cafescout/contexts/discovery/cafe-service/adapters/memory"
	"cafescout/contexts/discovery/cafe-service/application/commands"
	"cafescout/contexts/discovery/cafe-service/application/queries"
	"cafescout/contexts/discovery/cafe-service/application/workers"
	"cafescout/contexts/discovery/cafe-service/domain/entities"
	"cafescout/contexts/discovery/cafe-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Consumer workers.SubmissionApprovedConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCafe := commands.CreateCafeUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	updateCafe := commands.UpdateCafeUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCafe: createCafe,
			UpdateCafe: updateCafe,
			Queries:    queryUseCase,
			Logger:     deps.Logger,
		},
		Consumer: workers.SubmissionApprovedConsumer{
			CreateCafe: createCafe,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Cafe, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
