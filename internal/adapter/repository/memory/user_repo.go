package memory

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	domain "user-table-service/internal/domain/user"
	pkgerrors "user-table-service/pkg/errors"
)

// UserRepo keeps users in an ordered slice guarded by a mutex.
// IDs come from a counter that only moves forward, so deleted IDs are never reused.
type UserRepo struct {
	mu     sync.RWMutex
	users  []domain.User
	lastID int64
	log    *zap.Logger
}

// NewUserRepo creates an empty in-memory repository.
func NewUserRepo(log *zap.Logger) *UserRepo {
	return &UserRepo{
		users: make([]domain.User, 0, 16),
		log:   log,
	}
}

// List returns the users matching query in insertion order.
func (r *UserRepo) List(ctx context.Context, query string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if u.Matches(query) {
			out = append(out, u)
		}
	}
	return out, nil
}

// GetByID returns a copy of the user with the given ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, pkgerrors.NewNotFoundError("user", "User not found")
	}
	u := r.users[i]
	return &u, nil
}

// Create appends a user with the next ID.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	created := *u
	created.ID = r.lastID
	r.users = append(r.users, created)

	r.log.Debug("user created in memory", zap.Int64("id", created.ID))
	return &created, nil
}

// Update replaces name, age and job of an existing user, keeping its ID.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(u.ID)
	if i < 0 {
		return nil, pkgerrors.NewNotFoundError("user", "User not found")
	}
	r.users[i].FullName = u.FullName
	r.users[i].Age = u.Age
	r.users[i].Job = u.Job

	updated := r.users[i]
	return &updated, nil
}

// UpdateAge overwrites only the age of an existing user.
func (r *UserRepo) UpdateAge(ctx context.Context, id int64, age int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, pkgerrors.NewNotFoundError("user", "User not found")
	}
	r.users[i].Age = age

	updated := r.users[i]
	return &updated, nil
}

// Delete removes a user and returns it.
func (r *UserRepo) Delete(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, pkgerrors.NewNotFoundError("user", "User not found")
	}
	removed := r.users[i]
	r.users = append(r.users[:i], r.users[i+1:]...)

	r.log.Debug("user deleted from memory", zap.Int64("id", id))
	return &removed, nil
}

// indexOf must be called with r.mu held.
func (r *UserRepo) indexOf(id int64) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
