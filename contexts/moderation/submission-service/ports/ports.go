package ports

import (
	"context"
	"time"

	"cafescout/contexts/moderation/submission-service/domain/entities"
	"cafescout/internal/shared/events"
)

type SubmissionFilter struct {
	SubmitterID string
	Status      entities.SubmissionStatus
}

type Repository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) error
	UpdateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]entities.Submission, error)
	// ListPendingBatch returns up to limit pending submissions, oldest
	// first. Resolved submissions are excluded by status, which is what
	// keeps repeated pipeline runs from reprocessing decided items.
	ListPendingBatch(ctx context.Context, limit int) ([]entities.Submission, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event events.Envelope) error
}

// OutboxRow is a pending outbox record as seen by the relay worker.
type OutboxRow struct {
	OutboxID  string
	EventType string
	Payload   []byte
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxRow, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, at time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// SiteMetadata is what the enrichment fetch extracts from a submitted
// website.
type SiteMetadata struct {
	Title       string
	Description string
}

type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (SiteMetadata, error)
}

// PhotoStore persists an uploaded photo and returns its public URL.
type PhotoStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) (string, error)
}
