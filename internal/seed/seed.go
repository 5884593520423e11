// Package seed fills a fresh store with startup records.
package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	domain "user-table-service/internal/domain/user"
	"user-table-service/internal/usecase/user"
)

// FakeUsers generates n users with realistic names, ages between 18 and 65 and job titles.
func FakeUsers(faker *gofakeit.Faker, n int) []domain.User {
	users := make([]domain.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, domain.User{
			FullName: faker.Name(),
			Age:      faker.IntRange(18, 65),
			Job:      faker.JobTitle(),
		})
	}
	return users
}

// Insert creates users in order and returns how many were stored.
func Insert(ctx context.Context, repo user.Repository, users []domain.User) (int, error) {
	for i, u := range users {
		if _, err := repo.Create(ctx, &u); err != nil {
			return i, fmt.Errorf("failed to seed user %q: %w", u.FullName, err)
		}
	}
	return len(users), nil
}
