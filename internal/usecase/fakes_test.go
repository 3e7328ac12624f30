package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/bikram73/Netflix-Clone/internal/core/domain"
	"github.com/bikram73/Netflix-Clone/internal/infra/security"
	"github.com/bikram73/Netflix-Clone/internal/repository"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]domain.User
	reads   int
	writes  int
	findErr error
	// createErr is returned by Create instead of storing the user.
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.users[user.Email]; exists {
		return repository.ErrDuplicate
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type fakePublisher struct {
	events []domain.UserRegisteredEvent
	err    error
}

func (p *fakePublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	if p == nil {
		return nil
	}
	p.events = append(p.events, event)
	return p.err
}

type fakeMetrics struct {
	outcomes map[string]int
}

func (m *fakeMetrics) AuthAttempt(operation, outcome string) {
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[operation+"/"+outcome]++
}

type fakeProvider struct {
	searches []string
	details  []string
	body     json.RawMessage
	err      error
}

func (p *fakeProvider) SearchTitles(_ context.Context, query string) (json.RawMessage, error) {
	p.searches = append(p.searches, query)
	return p.body, p.err
}

func (p *fakeProvider) GetTitleDetails(_ context.Context, id string) (json.RawMessage, error) {
	p.details = append(p.details, id)
	return p.body, p.err
}

func newTestHasher(t *testing.T) *security.PasswordHasher {
	t.Helper()
	hasher, err := security.NewPasswordHasher(security.Argon2Config{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("NewPasswordHasher returned error: %v", err)
	}
	return hasher
}
