package ratingservice

import (
	"log/slog"

	httpadapter "cafescout/contexts/discovery/rating-service/adapters/http"
	"cafescout/contexts/discovery/rating-service/adapters/memory"
	"cafescout/contexts/discovery/rating-service/application"
	"cafescout/contexts/discovery/rating-service/domain/entities"
	"cafescout/contexts/discovery/rating-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Cafes      ports.CafeChecker
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.RatingService{
		Repository: deps.Repository,
		Cafes:      deps.Cafes,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Rating, cafes ports.CafeChecker, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Cafes:      cafes,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
