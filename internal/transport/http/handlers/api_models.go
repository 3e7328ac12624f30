package handlers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/bikram73/Netflix-Clone/internal/core/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NotFoundResponse echoes the path that matched no route.
type NotFoundResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

// SignupRequest defines the payload for the signup endpoint.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    PhoneNumber `json:"phone"`
}

// PhoneNumber accepts the phone as a JSON string or a bare JSON number.
// Numbers keep their literal text so digit validation sees what the client sent.
type PhoneNumber string

func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PhoneNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PhoneNumber(n.String())
	return nil
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the client session identity. The key name userid is what existing clients read.
type UserResponse struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

func newUserResponse(u domain.UserSummary) UserResponse {
	return UserResponse{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}

// newLoginUserResponse leaves the phone out; login responses never carry it.
func newLoginUserResponse(u domain.UserSummary) UserResponse {
	resp := newUserResponse(u)
	resp.Phone = ""
	return resp
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// APIStatusResponse reports that the backend is up and whether a metadata key is set.
type APIStatusResponse struct {
	Status        string `json:"status"`
	KeyConfigured bool   `json:"key_configured"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse lists the outcome of each dependency check.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
