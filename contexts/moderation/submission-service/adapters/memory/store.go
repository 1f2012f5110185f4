package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"cafescout/contexts/moderation/submission-service/domain/entities"
	domainerrors "cafescout/contexts/moderation/submission-service/domain/errors"
	"cafescout/contexts/moderation/submission-service/ports"
	"cafescout/internal/shared/events"

	"github.com/google/uuid"
)

// Store backs submission tests and local runs. It also implements Clock,
// IDGenerator and OutboxWriter so a module can be wired from it alone.
type outboxEntry struct {
	id        string
	event     events.Envelope
	payload   []byte
	published bool
}

type Store struct {
	mu sync.RWMutex

	submissions map[string]entities.Submission
	outbox      []outboxEntry
}

func NewStore(seed []entities.Submission) *Store {
	submissions := make(map[string]entities.Submission, len(seed))
	for _, item := range seed {
		submissions[item.SubmissionID] = item
	}
	return &Store{submissions: submissions}
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.submissions {
		if existing.SubmitterID == submission.SubmitterID &&
			strings.EqualFold(existing.Name, submission.Name) &&
			strings.EqualFold(existing.Address, submission.Address) &&
			existing.Status != entities.SubmissionStatusRejected {
			return domainerrors.ErrDuplicateSubmission
		}
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) UpdateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) ListSubmissions(_ context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0, len(s.submissions))
	for _, item := range s.submissions {
		if filter.SubmitterID != "" && item.SubmitterID != filter.SubmitterID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListPendingBatch(_ context.Context, limit int) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0, limit)
	for _, item := range s.submissions {
		if item.Status == entities.SubmissionStatusPending {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, event events.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.outbox = append(s.outbox, outboxEntry{
		id:      uuid.NewString(),
		event:   event,
		payload: payload,
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]ports.OutboxRow, 0, limit)
	for _, entry := range s.outbox {
		if entry.published {
			continue
		}
		rows = append(rows, ports.OutboxRow{
			OutboxID:  entry.id,
			EventType: entry.event.EventType,
			Payload:   entry.payload,
		})
		if limit > 0 && len(rows) == limit {
			break
		}
	}
	return rows, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].id == outboxID {
			s.outbox[i].published = true
			return nil
		}
	}
	return nil
}

// OutboxEvents returns appended envelopes in order, for assertions.
func (s *Store) OutboxEvents() []events.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]events.Envelope, 0, len(s.outbox))
	for _, entry := range s.outbox {
		items = append(items, entry.event)
	}
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
