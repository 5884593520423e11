package user

// ListUsersRequest represents the request payload for listing users.
// An empty Query lists every record.
type ListUsersRequest struct {
	Query string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// CreateUserRequest represents the request payload for creating a new user.
// Age follows the same presence rule as the text fields: zero counts as missing.
type CreateUserRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Age      int    `json:"age" validate:"required"`
	Job      string `json:"job" validate:"required"`
}

// CreateUserResponse carries the new record and the full set after insertion.
type CreateUserResponse struct {
	Created User
	Users   []User
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// PatchUserRequest overwrites only the age of an existing user.
type PatchUserRequest struct {
	ID  int64 `json:"-"`
	Age int   `json:"age" validate:"required"`
}

// UpdateUserRequest replaces every mutable field of an existing user.
// Values are stored as sent.
type UpdateUserRequest struct {
	ID       int64
	FullName string
	Age      int
	Job      string
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID       int64
	FullName string
	Age      int
	Job      string
}
