package memory

import (
	"context"
	"sync"
	"time"

	"cafescout/contexts/moderation/approval-pipeline/ports"
)

// LeaseStore is the in-memory RunLease used by tests and single-process
// deployments.
type LeaseStore struct {
	mu     sync.Mutex
	leases map[string]time.Time
	clock  ports.Clock
}

func NewLeaseStore(clock ports.Clock) *LeaseStore {
	return &LeaseStore{
		leases: make(map[string]time.Time),
		clock:  clock,
	}
}

func (s *LeaseStore) now() time.Time {
	if s.clock != nil {
		return s.clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *LeaseStore) Acquire(_ context.Context, jobID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiry, held := s.leases[jobID]; held && now.Before(expiry) {
		return false, nil
	}
	s.leases[jobID] = now.Add(ttl)
	return true, nil
}

func (s *LeaseStore) Release(_ context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.leases, jobID)
	return nil
}
