package positions

import (
	"context"
	"strings"
	"time"

	"careers-backend/internal/shared/util"
)

// JobChecker reports whether any job is posted under a position. It is
// implemented by the jobs repository and guards deletes in memory mode; the
// Postgres schema enforces the same rule with a foreign key.
type JobChecker interface {
	PositionHasJobs(ctx context.Context, positionID string) (bool, error)
}

// Service contains business logic for positions.
type Service struct {
	Repo Repo
	Jobs JobChecker
}

// Create validates and stores a new position.
func (s *Service) Create(ctx context.Context, title, description string) (Position, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Position{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	pos := Position{
		ID:          util.NewID("pos"),
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, pos); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// Get returns one position.
func (s *Service) Get(ctx context.Context, id string) (Position, error) {
	if id == "" {
		return Position{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all positions.
func (s *Service) List(ctx context.Context) ([]Position, error) {
	return s.Repo.List(ctx)
}

// Update changes a position's title and description.
func (s *Service) Update(ctx context.Context, id, title, description string) (Position, error) {
	title = strings.TrimSpace(title)
	if id == "" || title == "" {
		return Position{}, ErrInvalidInput
	}

	pos, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Position{}, err
	}
	pos.Title = title
	pos.Description = strings.TrimSpace(description)
	pos.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, pos); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// Delete removes a position unless jobs are still posted under it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if s.Jobs != nil {
		has, err := s.Jobs.PositionHasJobs(ctx, id)
		if err != nil {
			return err
		}
		if has {
			return ErrHasJobs
		}
	}
	return s.Repo.Delete(ctx, id)
}
