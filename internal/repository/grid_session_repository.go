package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"edumanager/internal/tabular"

	"github.com/redis/go-redis/v9"
)

const gridSessionKeyPrefix = "edumanager:grid:"

// GridSessionRepository keeps open edit sessions in Redis between requests.
type GridSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGridSessionRepository(client *redis.Client, ttl time.Duration) *GridSessionRepository {
	return &GridSessionRepository{client: client, ttl: ttl}
}

func (r *GridSessionRepository) Save(ctx context.Context, grid *tabular.Grid) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to encode grid session: %w", err)
	}
	return r.client.Set(ctx, gridSessionKeyPrefix+grid.SessionID, data, r.ttl).Err()
}

func (r *GridSessionRepository) Get(ctx context.Context, sessionID string) (*tabular.Grid, error) {
	data, err := r.client.Get(ctx, gridSessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var grid tabular.Grid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil, fmt.Errorf("corrupt grid session %s: %w", sessionID, err)
	}
	return &grid, nil
}

func (r *GridSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, gridSessionKeyPrefix+sessionID).Err()
}

type memoryGridEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryGridSessionRepository is used when Redis is unavailable. Sessions are
// stored serialized so callers never share a grid.
type MemoryGridSessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryGridEntry
	now      func() time.Time
}

func NewMemoryGridSessionRepository(ttl time.Duration) *MemoryGridSessionRepository {
	return &MemoryGridSessionRepository{
		ttl:      ttl,
		sessions: make(map[string]memoryGridEntry),
		now:      time.Now,
	}
}

func (r *MemoryGridSessionRepository) Save(_ context.Context, grid *tabular.Grid) error {
	data, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to encode grid session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictExpired()
	r.sessions[grid.SessionID] = memoryGridEntry{data: data, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryGridSessionRepository) Get(_ context.Context, sessionID string) (*tabular.Grid, error) {
	r.mu.Lock()
	entry, ok := r.sessions[sessionID]
	if ok && !r.now().Before(entry.expiresAt) {
		delete(r.sessions, sessionID)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}

	var grid tabular.Grid
	if err := json.Unmarshal(entry.data, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

func (r *MemoryGridSessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *MemoryGridSessionRepository) evictExpired() {
	now := r.now()
	for id, entry := range r.sessions {
		if !now.Before(entry.expiresAt) {
			delete(r.sessions, id)
		}
	}
}
