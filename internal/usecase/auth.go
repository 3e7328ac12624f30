package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bikram73/Netflix-Clone/internal/core/domain"
	"github.com/bikram73/Netflix-Clone/internal/core/port"
	"github.com/bikram73/Netflix-Clone/internal/infra/logger"
	"github.com/bikram73/Netflix-Clone/internal/infra/security"
	"github.com/bikram73/Netflix-Clone/internal/repository"
)

const (
	opSignup = "signup"
	opLogin  = "login"

	msgAllFieldsRequired = "All fields are required"
)

// PasswordHasher hashes new passwords and verifies stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// InputValidator checks a single signup field.
type InputValidator interface {
	Validate(value string) error
}

// AuthMetrics counts signup and login outcomes.
type AuthMetrics interface {
	AuthAttempt(operation, outcome string)
}

// AuthService registers users and checks their credentials.
type AuthService struct {
	users     port.UserRepository
	hasher    PasswordHasher
	publisher port.EventPublisher
	logger    *zap.Logger
	metrics   AuthMetrics

	passwordRules InputValidator
	phoneRules    InputValidator

	now   func() time.Time
	newID IDGenerator
}

// NewAuthService wires the service with the default signup rules.
// publisher may be nil, in which case no events are emitted.
func NewAuthService(users port.UserRepository, hasher PasswordHasher, publisher port.EventPublisher, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:         users,
		hasher:        hasher,
		publisher:     publisher,
		logger:        log,
		passwordRules: security.DefaultPasswordValidator(),
		phoneRules:    security.DefaultPhoneValidator(),
		now:           func() time.Time { return time.Now().UTC() },
		newID:         NewUserID,
	}
}

// WithMetrics attaches an outcome counter.
func (s *AuthService) WithMetrics(metrics AuthMetrics) *AuthService {
	s.metrics = metrics
	return s
}

// WithClock overrides the time source.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithIDGenerator overrides user id generation.
func (s *AuthService) WithIDGenerator(gen IDGenerator) *AuthService {
	if gen != nil {
		s.newID = gen
	}
	return s
}

// Register validates the signup fields, stores a new user and returns its summary.
// Fields are taken as given; no trimming or case folding is applied.
func (s *AuthService) Register(ctx context.Context, username, password, email, phone string) (domain.UserSummary, error) {
	summary, err := s.register(ctx, username, password, email, phone)
	s.record(opSignup, err)
	return summary, err
}

func (s *AuthService) register(ctx context.Context, username, password, email, phone string) (domain.UserSummary, error) {
	if username == "" || password == "" || email == "" || phone == "" {
		return domain.UserSummary{}, newValidationError(CodeMissingField, msgAllFieldsRequired)
	}
	if err := s.passwordRules.Validate(password); err != nil {
		return domain.UserSummary{}, asValidationError(err, CodePasswordTooShort)
	}
	if err := s.phoneRules.Validate(phone); err != nil {
		return domain.UserSummary{}, asValidationError(err, CodeInvalidPhone)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.UserSummary{}, ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.UserSummary{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.UserSummary{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	id, err := s.newID(now)
	if err != nil {
		return domain.UserSummary{}, err
	}

	user := domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.UserSummary{}, ErrConflict
		}
		return domain.UserSummary{}, fmt.Errorf("create user: %w", err)
	}

	logger.WithContext(ctx, s.logger).Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
		zap.String("phone", logger.MaskPhone(user.Phone)),
	)

	s.publishRegistered(ctx, user)

	return user.Summary(), nil
}

func (s *AuthService) publishRegistered(ctx context.Context, user domain.User) {
	if s.publisher == nil {
		return
	}
	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		logger.WithContext(ctx, s.logger).Warn("failed to publish user registered event",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}
}

// Authenticate checks the password for the account registered under email.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.UserSummary, error) {
	summary, err := s.authenticate(ctx, email, password)
	s.record(opLogin, err)
	return summary, err
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (domain.UserSummary, error) {
	if email == "" || password == "" {
		return domain.UserSummary{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserSummary{}, ErrInvalidCredentials
		}
		return domain.UserSummary{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return domain.UserSummary{}, fmt.Errorf("verify password for %s: %w", user.ID, err)
	}
	if !ok {
		return domain.UserSummary{}, ErrInvalidCredentials
	}

	return user.Summary(), nil
}

func (s *AuthService) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.AuthAttempt(operation, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid_input"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}

// asValidationError keeps the code and message of a rule violation.
func asValidationError(err error, fallbackCode string) error {
	var violation *security.RuleViolation
	if errors.As(err, &violation) {
		return newValidationError(violation.Code, violation.Message)
	}
	return newValidationError(fallbackCode, err.Error())
}
