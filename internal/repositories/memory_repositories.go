package repositories

import (
	"context"
	"sync"
	"time"

	"golang-restaurant-explorer/internal/models"
)

type memoryEntry struct {
	snapshot  models.ViewSnapshot
	expiresAt time.Time
}

type memoryViewStateRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryViewStateRepository keeps snapshots in process memory. A zero ttl never expires.
func NewMemoryViewStateRepository(ttl time.Duration) ViewStateRepository {
	return &memoryViewStateRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the snapshot and pushes its expiry forward
func (r *memoryViewStateRepository) Get(ctx context.Context, sessionID string) (*models.ViewSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := r.now()
	if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
		delete(r.entries, sessionID)
		return nil, ErrSessionNotFound
	}
	if r.ttl > 0 {
		entry.expiresAt = now.Add(r.ttl)
		r.entries[sessionID] = entry
	}

	snapshot := entry.snapshot
	return &snapshot, nil
}

func (r *memoryViewStateRepository) Save(ctx context.Context, snapshot *models.ViewSnapshot) error {
	entry := memoryEntry{snapshot: *snapshot}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	r.entries[snapshot.SessionID] = entry
	r.mu.Unlock()
	return nil
}

func (r *memoryViewStateRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
	return nil
}
