package entities

// BatchResult is the outcome of one classifier invocation. Values are
// aggregate counts only; the pipeline never sees individual submissions.
// Immutable once returned by the classifier.
type BatchResult struct {
	TotalProcessed    int
	Approved          int
	Rejected          int
	Flagged           int
	Errors            int
	ExternalCallCount int
}

// Consistent reports whether the decision counters can belong to a batch
// that was asked for at most requestedLimit submissions. Some processed
// items may end in an error state distinct from the three decisions, so the
// decision sum may be below TotalProcessed but never above it.
func (b BatchResult) Consistent(requestedLimit int) bool {
	if b.TotalProcessed < 0 || b.TotalProcessed > requestedLimit {
		return false
	}
	if b.Approved < 0 || b.Rejected < 0 || b.Flagged < 0 || b.Errors < 0 {
		return false
	}
	return b.Approved+b.Rejected+b.Flagged+b.Errors <= b.TotalProcessed
}

// RunSummary is the aggregate across all batches of one triggered run.
// Batches keeps the per-batch results in invocation order for audit.
type RunSummary struct {
	TotalProcessed    int
	BatchRuns         int
	Approved          int
	Rejected          int
	Flagged           int
	Errors            int
	ExternalCallCount int
	Batches           []BatchResult
}
