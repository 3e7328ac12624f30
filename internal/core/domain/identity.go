package domain

import "time"

// User mirrors the persisted representation in the users table.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserSummary is the caller-facing view of a user. It never carries the password hash.
type UserSummary struct {
	ID       string
	Username string
	Email    string
	Phone    string
}

// Summary strips credential material from the user.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}
