package submissionservice

import (
	"log/slog"

	httpadapter "cafescout/contexts/moderation/submission-service/adapters/http"
	"cafescout/contexts/moderation/submission-service/adapters/memory"
	"cafescout/contexts/moderation/submission-service/application/commands"
	"cafescout/contexts/moderation/submission-service/application/queries"
	"cafescout/contexts/moderation/submission-service/domain/entities"
	"cafescout/contexts/moderation/submission-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	AutoReview commands.AutoReviewUseCase
	Store      *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Outbox     ports.OutboxWriter
	Metadata   ports.MetadataFetcher
	Photos     ports.PhotoStore
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createSubmission := commands.CreateSubmissionUseCase{
		Repository: deps.Repository,
		Metadata:   deps.Metadata,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	reviewSubmission := commands.ReviewSubmissionUseCase{
		Repository: deps.Repository,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	attachPhoto := commands.AttachPhotoUseCase{
		Repository: deps.Repository,
		Photos:     deps.Photos,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	autoReview := commands.AutoReviewUseCase{
		Repository: deps.Repository,
		Outbox:     deps.Outbox,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateSubmission: createSubmission,
			ReviewSubmission: reviewSubmission,
			AttachPhoto:      attachPhoto,
			Queries:          queryUseCase,
			Logger:           deps.Logger,
		},
		AutoReview: autoReview,
	}
}

func NewInMemoryModule(seed []entities.Submission, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Outbox:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
