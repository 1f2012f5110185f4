package approvalpipeline

import (
	"log/slog"
	"time"

	httpadapter "cafescout/contexts/moderation/approval-pipeline/adapters/http"
	"cafescout/contexts/moderation/approval-pipeline/adapters/memory"
	"cafescout/contexts/moderation/approval-pipeline/application"
	"cafescout/contexts/moderation/approval-pipeline/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Classifier ports.Classifier
	Lease      ports.RunLease
	Clock      ports.Clock
	Secret     string
	BatchSize  int
	MaxBatches int
	Pause      time.Duration
	LeaseTTL   time.Duration
	Verbose    bool
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	batchSize := deps.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}
	maxBatches := deps.MaxBatches
	if maxBatches <= 0 {
		maxBatches = 5
	}
	pause := deps.Pause
	if pause < 0 {
		pause = 0
	}
	lease := deps.Lease
	if lease == nil {
		lease = memory.NewLeaseStore(deps.Clock)
	}

	return Module{
		Handler: httpadapter.Handler{
			Gate: application.TriggerGate{
				Secret: deps.Secret,
				Logger: deps.Logger,
			},
			Orchestrator: application.Orchestrator{
				Classifier: deps.Classifier,
				Pause:      pause,
				Verbose:    deps.Verbose,
				Logger:     deps.Logger,
			},
			Lease:      lease,
			Clock:      deps.Clock,
			BatchSize:  batchSize,
			MaxBatches: maxBatches,
			LeaseTTL:   deps.LeaseTTL,
			Logger:     deps.Logger,
		},
	}
}
