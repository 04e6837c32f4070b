package domain

import "time"

// Subject is a coached client whose tracked items are scored.
type Subject struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
