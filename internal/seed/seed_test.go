package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-table-service/internal/adapter/repository/memory"
	domain "user-table-service/internal/domain/user"
)

func TestFakeUsers(t *testing.T) {
	users := FakeUsers(gofakeit.New(42), 25)
	require.Len(t, users, 25)

	for _, u := range users {
		assert.Zero(t, u.ID)
		assert.NotEmpty(t, u.FullName)
		assert.NotEmpty(t, u.Job)
		assert.GreaterOrEqual(t, u.Age, 18)
		assert.LessOrEqual(t, u.Age, 65)
	}
}

func TestFakeUsers_SameSeedSameUsers(t *testing.T) {
	assert.Equal(t, FakeUsers(gofakeit.New(7), 5), FakeUsers(gofakeit.New(7), 5))
}

func TestInsert(t *testing.T) {
	repo := memory.NewUserRepo(zaptest.NewLogger(t))

	n, err := Insert(context.Background(), repo, domain.DemoUsers())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	users, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "Jane Doe", users[2].FullName)
}

type failingRepo struct {
	*memory.UserRepo
	failAfter int
	calls     int
}

func (r *failingRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.calls++
	if r.calls > r.failAfter {
		return nil, errors.New("disk full")
	}
	return r.UserRepo.Create(ctx, u)
}

func TestInsert_StopsOnError(t *testing.T) {
	repo := &failingRepo{UserRepo: memory.NewUserRepo(zaptest.NewLogger(t)), failAfter: 1}

	n, err := Insert(context.Background(), repo, domain.DemoUsers())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "John Doe")
}
