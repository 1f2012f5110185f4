package http

// ErrorResponse is the trigger endpoint error body. Field names follow the
// scheduler contract, not the platform-wide error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

type ReportSummary struct {
	Approved          int `json:"approved"`
	Rejected          int `json:"rejected"`
	Flagged           int `json:"flagged"`
	Errors            int `json:"errors"`
	ExternalCallCount int `json:"externalCallCount"`
}

type ReportBatch struct {
	TotalProcessed    int `json:"totalProcessed"`
	Approved          int `json:"approved"`
	Rejected          int `json:"rejected"`
	Flagged           int `json:"flagged"`
	Errors            int `json:"errors"`
	ExternalCallCount int `json:"externalCallCount"`
}

// RunReport is the externally visible outcome of one triggered run. The
// scheduler always receives this shape with an explicit success flag. On a
// systemic failure any batches completed before the fault are still
// included and the report is tagged partial.
type RunReport struct {
	Success        bool          `json:"success"`
	Timestamp      string        `json:"timestamp"`
	Error          string        `json:"error,omitempty"`
	Partial        bool          `json:"partial,omitempty"`
	TotalProcessed int           `json:"totalProcessed"`
	BatchRuns      int           `json:"batchRuns"`
	Summary        ReportSummary `json:"summary"`
	Batches        []ReportBatch `json:"batches"`
}
