package user

import (
	"strconv"

	"user-table-service/pkg/search"
)

// User represents a user record in the table.
type User struct {
	ID       int64  `json:"id"`       // ID is assigned by the store and never reused
	FullName string `json:"fullName"` // FullName is the display name of the user
	Age      int    `json:"age"`      // Age in years
	Job      string `json:"job"`      // Job is the user's job title
}

// Matches reports whether the record satisfies a list query: the query must
// occur in the full name, the decimal age or the job, ignoring case.
// An empty query matches every record.
func (u User) Matches(query string) bool {
	if query == "" {
		return true
	}
	return search.ContainsFold(u.FullName, query) ||
		search.ContainsFold(strconv.Itoa(u.Age), query) ||
		search.ContainsFold(u.Job, query)
}

// DemoUsers returns the records the table is seeded with on startup.
func DemoUsers() []User {
	return []User{
		{FullName: "Pouria Navipour", Age: 18, Job: "Frontend developer"},
		{FullName: "John Doe", Age: 26, Job: "Backend developer"},
		{FullName: "Jane Doe", Age: 20, Job: "UI/UX Designer"},
	}
}
