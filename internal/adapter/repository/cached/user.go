package cached

import (
	"context"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-table-service/internal/adapter/cache"
	domain "user-table-service/internal/domain/user"
	"user-table-service/internal/usecase/user"
	"user-table-service/pkg/logger"
)

// UserRepository implements user.Repository with cache-aside reads of single users.
// Cache failures are logged and never fail the request.
type UserRepository struct {
	next  user.Repository
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group

	// generation is bumped by every eviction. A load that overlaps one may
	// have read the old row and must not leave it in the cache.
	generation atomic.Uint64
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository wraps next with c.
func NewUserRepository(next user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		next:  next,
		cache: c,
		log:   log,
	}
}

// List delegates to the wrapped repository; list results are not cached.
func (r *UserRepository) List(ctx context.Context, query string) ([]domain.User, error) {
	return r.next.List(ctx, query)
}

// GetByID serves from cache when possible. Concurrent misses for the same ID
// share a single load from the wrapped repository.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.WithContext(ctx, r.log)

	if u, err := r.cache.Get(ctx, id); err != nil {
		log.Warn("cache get error, falling back to store", zap.Int64("id", id), zap.Error(err))
	} else if u != nil {
		return u, nil
	}

	result, err, _ := r.group.Do(strconv.FormatInt(id, 10), func() (any, error) {
		gen := r.generation.Load()

		u, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, u); err != nil {
			log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			return u, nil
		}
		if r.generation.Load() != gen {
			log.Debug("record changed during load, dropping cached copy", zap.Int64("id", id))
			if err := r.cache.Delete(ctx, id); err != nil {
				log.Warn("failed to invalidate cache", zap.Int64("id", id), zap.Error(err))
			}
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers may mutate the result; hand each one its own copy
	u := *result.(*domain.User)
	return &u, nil
}

// Create delegates to the wrapped repository.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.next.Create(ctx, u)
}

// Update replaces the user and evicts the cached copy.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	updated, err := r.next.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, updated.ID)
	return updated, nil
}

// UpdateAge overwrites the age and evicts the cached copy.
func (r *UserRepository) UpdateAge(ctx context.Context, id int64, age int) (*domain.User, error) {
	updated, err := r.next.UpdateAge(ctx, id, age)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return updated, nil
}

// Delete removes the user and evicts the cached copy.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	removed, err := r.next.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return removed, nil
}

func (r *UserRepository) evict(ctx context.Context, id int64) {
	r.generation.Add(1)
	if err := r.cache.Delete(ctx, id); err != nil {
		logger.WithContext(ctx, r.log).Warn("failed to invalidate cache", zap.Int64("id", id), zap.Error(err))
	}
}
