// Package repotest provides a behavioural test suite shared by every
// user.Repository implementation.
package repotest

import (
	"context"
	"sync"

	"github.com/stretchr/testify/suite"

	domain "user-table-service/internal/domain/user"
	"user-table-service/internal/usecase/user"
	pkgerrors "user-table-service/pkg/errors"
)

// RepositorySuite runs the same assertions against any Repository.
// NewRepo must return a fresh, empty repository for each test.
type RepositorySuite struct {
	suite.Suite
	NewRepo func() user.Repository

	repo user.Repository
	ctx  context.Context
}

// SetupTest creates a fresh repository seeded with the demo users.
func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.NewRepo()
	for _, u := range domain.DemoUsers() {
		_, err := s.repo.Create(s.ctx, &u)
		s.Require().NoError(err)
	}
}

func (s *RepositorySuite) requireNotFound(err error) {
	var nf *pkgerrors.NotFoundError
	s.Require().ErrorAs(err, &nf)
}

func (s *RepositorySuite) TestList_All() {
	users, err := s.repo.List(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(users, 3)

	s.Equal(int64(1), users[0].ID)
	s.Equal("Pouria Navipour", users[0].FullName)
	s.Equal(int64(3), users[2].ID)
	s.Equal("UI/UX Designer", users[2].Job)
}

func (s *RepositorySuite) TestList_Query() {
	tests := []struct {
		query string
		ids   []int64
	}{
		{query: "doe", ids: []int64{2, 3}},
		{query: "DOE", ids: []int64{2, 3}},
		{query: "developer", ids: []int64{1, 2}},
		{query: "2", ids: []int64{2, 3}},
		{query: "18", ids: []int64{1}},
		{query: "ui/ux", ids: []int64{3}},
		{query: "%", ids: []int64{}},
		{query: "_", ids: []int64{}},
		{query: "nobody", ids: []int64{}},
	}

	for _, tt := range tests {
		users, err := s.repo.List(s.ctx, tt.query)
		s.Require().NoError(err, tt.query)
		s.NotNil(users, tt.query)

		ids := make([]int64, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		s.Equal(tt.ids, ids, "query %q", tt.query)
	}
}

func (s *RepositorySuite) TestList_QueryFoldsNonASCII() {
	created, err := s.repo.Create(s.ctx, &domain.User{FullName: "Élodie Ñúñez", Age: 31, Job: "Ingénieure"})
	s.Require().NoError(err)

	for _, query := range []string{"élodie", "ÉLODIE", "ñúñez", "ÑÚÑEZ", "INGÉNIEURE"} {
		users, err := s.repo.List(s.ctx, query)
		s.Require().NoError(err, query)
		s.Require().Len(users, 1, "query %q", query)
		s.Equal(created.ID, users[0].ID, "query %q", query)
	}
}

func (s *RepositorySuite) TestGetByID() {
	u, err := s.repo.GetByID(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(domain.User{ID: 2, FullName: "John Doe", Age: 26, Job: "Backend developer"}, *u)

	_, err = s.repo.GetByID(s.ctx, 99)
	s.requireNotFound(err)
}

func (s *RepositorySuite) TestCreate_AssignsNextID() {
	created, err := s.repo.Create(s.ctx, &domain.User{FullName: "Ada Lovelace", Age: 36, Job: "Analyst"})
	s.Require().NoError(err)
	s.Equal(int64(4), created.ID)

	users, err := s.repo.List(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(users, 4)
	s.Equal(*created, users[3])
}

func (s *RepositorySuite) TestCreate_IgnoresCallerID() {
	created, err := s.repo.Create(s.ctx, &domain.User{ID: 1, FullName: "Dup", Age: 1, Job: "Dup"})
	s.Require().NoError(err)
	s.Equal(int64(4), created.ID)
}

func (s *RepositorySuite) TestCreate_NeverReusesDeletedIDs() {
	_, err := s.repo.Delete(s.ctx, 3)
	s.Require().NoError(err)
	_, err = s.repo.Delete(s.ctx, 2)
	s.Require().NoError(err)

	created, err := s.repo.Create(s.ctx, &domain.User{FullName: "Ada", Age: 36, Job: "Analyst"})
	s.Require().NoError(err)
	s.Equal(int64(4), created.ID)

	users, err := s.repo.List(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.NotEqual(users[0].ID, users[1].ID)
}

func (s *RepositorySuite) TestUpdate() {
	updated, err := s.repo.Update(s.ctx, &domain.User{ID: 2, FullName: "John Smith", Age: 27, Job: "Tech lead"})
	s.Require().NoError(err)
	s.Equal(domain.User{ID: 2, FullName: "John Smith", Age: 27, Job: "Tech lead"}, *updated)

	got, err := s.repo.GetByID(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(*updated, *got)

	_, err = s.repo.Update(s.ctx, &domain.User{ID: 42, FullName: "X", Age: 1, Job: "Y"})
	s.requireNotFound(err)
}

func (s *RepositorySuite) TestUpdateAge() {
	updated, err := s.repo.UpdateAge(s.ctx, 1, 19)
	s.Require().NoError(err)
	s.Equal(domain.User{ID: 1, FullName: "Pouria Navipour", Age: 19, Job: "Frontend developer"}, *updated)

	_, err = s.repo.UpdateAge(s.ctx, 42, 30)
	s.requireNotFound(err)

	users, err := s.repo.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(users, 3)
}

func (s *RepositorySuite) TestDelete() {
	removed, err := s.repo.Delete(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal("John Doe", removed.FullName)

	_, err = s.repo.GetByID(s.ctx, 2)
	s.requireNotFound(err)

	users, err := s.repo.List(s.ctx, "")
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(int64(1), users[0].ID)
	s.Equal(int64(3), users[1].ID)

	_, err = s.repo.Delete(s.ctx, 2)
	s.requireNotFound(err)
}

func (s *RepositorySuite) TestConcurrentCreates() {
	const n = 20

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := s.repo.Create(s.ctx, &domain.User{FullName: "Worker", Age: 30, Job: "Load"})
			if err == nil {
				ids <- u.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		s.False(seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	s.Len(seen, n)
}
