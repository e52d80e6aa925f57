package positions

import "time"

// Position is an organizational role that jobs are posted under.
type Position struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
