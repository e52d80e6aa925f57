package positions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Position
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Position)}
}

// Create stores a new position.
func (r *MemoryRepo) Create(ctx context.Context, pos Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[pos.ID] = pos
	return nil
}

// GetByID returns one position.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.data[id]
	if !ok {
		return Position{}, ErrNotFound
	}
	return pos, nil
}

// List returns all positions ordered by title.
func (r *MemoryRepo) List(ctx context.Context) ([]Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Position, 0, len(r.data))
	for _, pos := range r.data {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Update rewrites a position's mutable fields.
func (r *MemoryRepo) Update(ctx context.Context, pos Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[pos.ID]; !ok {
		return ErrNotFound
	}
	r.data[pos.ID] = pos
	return nil
}

// Delete removes a position.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// PositionExists reports whether a position with the id is stored.
func (r *MemoryRepo) PositionExists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.data[id]
	return ok, nil
}

var _ Repo = (*MemoryRepo)(nil)
