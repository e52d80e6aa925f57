package positions

import "context"

// Repo defines persistence operations for positions.
type Repo interface {
	Create(ctx context.Context, pos Position) error
	GetByID(ctx context.Context, id string) (Position, error)
	List(ctx context.Context) ([]Position, error)
	Update(ctx context.Context, pos Position) error
	Delete(ctx context.Context, id string) error
	PositionExists(ctx context.Context, id string) (bool, error)
}
