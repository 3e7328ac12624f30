package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bikram73/Netflix-Clone/internal/core/domain"
	"github.com/bikram73/Netflix-Clone/internal/usecase"
)

// AuthService is the account behaviour the handlers need.
type AuthService interface {
	Register(ctx context.Context, username, password, email, phone string) (domain.UserSummary, error)
	Authenticate(ctx context.Context, email, password string) (domain.UserSummary, error)
}

var (
	signupErrorCases = []ErrorCase{
		{Err: usecase.ErrValidation, Status: http.StatusBadRequest},
		{Err: usecase.ErrConflict, Status: http.StatusBadRequest, Message: "User already exists with this email."},
	}
	loginErrorCases = []ErrorCase{
		{Err: usecase.ErrInvalidCredentials, Status: http.StatusBadRequest, Message: "Invalid email or password"},
	}
)

// AuthHandler exposes signup and login.
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes binds signup and login on the given group.
func (h *AuthHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
}

// Signup creates an account. A body that is not valid JSON is treated as all fields missing.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = SignupRequest{}
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.Email, string(req.Phone))
	if err != nil {
		RespondWithMappedError(c, err, signupErrorCases, http.StatusInternalServerError, "Server error during signup")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message: "User created successfully",
		User:    newUserResponse(user),
	})
}

// Login checks credentials and returns the session identity.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = LoginRequest{}
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, loginErrorCases, http.StatusInternalServerError, "Server error during login")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		User:    newLoginUserResponse(user),
	})
}
