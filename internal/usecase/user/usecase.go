package user

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-table-service/internal/domain/user"
	pkgerrors "user-table-service/pkg/errors"
	"user-table-service/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Implementations must be safe for concurrent use, assign IDs that are never
// reused, and report absent records with *pkgerrors.NotFoundError.
type Repository interface {
	List(ctx context.Context, query string) ([]domain.User, error)          // List users matching query, in insertion order
	GetByID(ctx context.Context, id int64) (*domain.User, error)            // Retrieve user by ID
	Create(ctx context.Context, u *domain.User) (*domain.User, error)       // Insert a user and assign its ID
	Update(ctx context.Context, u *domain.User) (*domain.User, error)       // Replace name, age and job of an existing user
	UpdateAge(ctx context.Context, id int64, age int) (*domain.User, error) // Overwrite only the age
	Delete(ctx context.Context, id int64) (*domain.User, error)             // Remove a user and return it
}

// EventPublisher announces record changes to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, u domain.User) error
}

// Service implements the business logic for the users table.
type Service struct {
	repo     Repository
	events   EventPublisher
	log      *zap.Logger
	validate *validator.Validate
}

var _ Usecase = (*Service)(nil)

// New creates a new Service. A nil publisher disables change events.
func New(r Repository, events EventPublisher, log *zap.Logger) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return &Service{repo: r, events: events, log: log, validate: v}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	details := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", e.Field()))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return pkgerrors.NewValidationError("", pkgerrors.ErrMissingFields.Message, details...)
}

// ListUsers returns every user, or those matching in.Query.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Debug("listing users", zap.String("query", in.Query))

	users, err := s.repo.List(ctx, in.Query)
	if err != nil {
		log.Error("failed to list users", zap.String("query", in.Query), zap.Error(err))
		return nil, err
	}

	return &ListUsersResponse{Users: toDTOs(users)}, nil
}

// CreateUser validates the request, stores the user and returns it together
// with the full set of users.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("creating user", zap.String("full_name", in.FullName), zap.Int("age", in.Age), zap.String("job", in.Job))

	if err := s.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		FullName: in.FullName,
		Age:      in.Age,
		Job:      in.Job,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.publish(ctx, domain.EventCreated, *created)

	all, err := s.repo.List(ctx, "")
	if err != nil {
		log.Error("failed to list users after create", zap.Int64("id", created.ID), zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{Created: toDTO(*created), Users: toDTOs(all)}, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.logFailure(ctx, "failed to get user", in.ID, err)
		return nil, err
	}

	dto := toDTO(*u)
	return &dto, nil
}

// PatchUser overwrites the age of an existing user.
func (s *Service) PatchUser(ctx context.Context, in PatchUserRequest) (*User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("patching user", zap.Int64("id", in.ID), zap.Int("age", in.Age))

	if err := s.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.repo.UpdateAge(ctx, in.ID, in.Age)
	if err != nil {
		s.logFailure(ctx, "failed to patch user", in.ID, err)
		return nil, err
	}

	s.publish(ctx, domain.EventUpdated, *u)

	dto := toDTO(*u)
	return &dto, nil
}

// UpdateUser replaces the name, age and job of an existing user.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, s.log)
	log.Info("updating user", zap.Int64("id", in.ID), zap.String("full_name", in.FullName), zap.Int("age", in.Age), zap.String("job", in.Job))

	u, err := s.repo.Update(ctx, &domain.User{
		ID:       in.ID,
		FullName: in.FullName,
		Age:      in.Age,
		Job:      in.Job,
	})
	if err != nil {
		s.logFailure(ctx, "failed to update user", in.ID, err)
		return nil, err
	}

	s.publish(ctx, domain.EventUpdated, *u)

	dto := toDTO(*u)
	return &dto, nil
}

// DeleteUser removes a user and returns the removed record.
func (s *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error) {
	logger.WithContext(ctx, s.log).Info("deleting user", zap.Int64("id", in.ID))

	u, err := s.repo.Delete(ctx, in.ID)
	if err != nil {
		s.logFailure(ctx, "failed to delete user", in.ID, err)
		return nil, err
	}

	s.publish(ctx, domain.EventDeleted, *u)

	dto := toDTO(*u)
	return &dto, nil
}

// logFailure logs a repository error; absent records are expected and logged at warn.
func (s *Service) logFailure(ctx context.Context, msg string, id int64, err error) {
	log := logger.WithContext(ctx, s.log)

	var nf *pkgerrors.NotFoundError
	if errors.As(err, &nf) {
		log.Warn(msg, zap.Int64("id", id), zap.String("reason", "not found"))
		return
	}
	log.Error(msg, zap.Int64("id", id), zap.Error(err))
}

// publish sends a change event. Failures are logged and never fail the request.
func (s *Service) publish(ctx context.Context, eventType string, u domain.User) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, u); err != nil {
		logger.WithContext(ctx, s.log).Warn("failed to publish user event",
			zap.String("event_type", eventType),
			zap.Int64("id", u.ID),
			zap.Error(err),
		)
	}
}

func toDTO(u domain.User) User {
	return User{
		ID:       u.ID,
		FullName: u.FullName,
		Age:      u.Age,
		Job:      u.Job,
	}
}

func toDTOs(users []domain.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = toDTO(u)
	}
	return out
}
