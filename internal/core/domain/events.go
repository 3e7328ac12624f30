package domain

import "time"

// UserRegisteredEvent is emitted once a signup has been persisted.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Username     string
	Email        string
	RegisteredAt time.Time
}
