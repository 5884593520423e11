package sqlite

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-table-service/internal/domain/user"
	pkgerrors "user-table-service/pkg/errors"
	"user-table-service/pkg/search"
)

// createTableSQL declares the id column AUTOINCREMENT so SQLite never hands
// out the id of a deleted row again.
const createTableSQL = `CREATE TABLE IF NOT EXISTS users (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	full_name TEXT    NOT NULL,
	age       INTEGER NOT NULL,
	job       TEXT    NOT NULL
)`

var searchClause = fmt.Sprintf(
	`%[1]s(full_name) LIKE ? ESCAPE '\' OR CAST(age AS TEXT) LIKE ? ESCAPE '\' OR %[1]s(job) LIKE ? ESCAPE '\'`,
	lowerFunc,
)

// UserRepo implements the user repository on top of GORM and SQLite.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo. Call Migrate before use.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	FullName string `gorm:"column:full_name;not null"`
	Age      int    `gorm:"column:age;not null"`
	Job      string `gorm:"column:job;not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		ID:       m.ID,
		FullName: m.FullName,
		Age:      m.Age,
		Job:      m.Job,
	}
}

// Migrate creates the users table if it does not exist.
func (r *UserRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// List retrieves users whose name, age or job contains query, ordered by ID.
func (r *UserRepo) List(ctx context.Context, query string) ([]user.User, error) {
	tx := r.db.WithContext(ctx).Order("id")
	if query != "" {
		pattern := search.LikePattern(query)
		tx = tx.Where(searchClause, pattern, pattern, pattern)
	}

	var models []UserSchema
	if err := tx.Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err), zap.String("query", query))
		return nil, pkgerrors.NewInternalError("failed to list users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}
	return users, nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	model, err := first(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// Create inserts a new user; the database assigns the ID.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		FullName: u.FullName,
		Age:      u.Age,
		Job:      u.Job,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create user", err)
	}

	r.log.Debug("user created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Update overwrites name, age and job of an existing user.
func (r *UserRepo) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	return r.update(ctx, u.ID, map[string]any{
		"full_name": u.FullName,
		"age":       u.Age,
		"job":       u.Job,
	})
}

// UpdateAge overwrites only the age of an existing user.
func (r *UserRepo) UpdateAge(ctx context.Context, id int64, age int) (*user.User, error) {
	return r.update(ctx, id, map[string]any{"age": age})
}

// update applies columns and reads the row back inside one transaction.
// A map is used so zero values are written too.
func (r *UserRepo) update(ctx context.Context, id int64, columns map[string]any) (*user.User, error) {
	var model *UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&UserSchema{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return pkgerrors.NewInternalError("failed to update user", res.Error)
		}
		if res.RowsAffected == 0 {
			return pkgerrors.NewNotFoundError("user", "User not found")
		}

		var err error
		model, err = first(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.log.Debug("user updated in db", zap.Int64("id", id))
	return model.toDomain(), nil
}

// Delete removes a user and returns the removed row.
func (r *UserRepo) Delete(ctx context.Context, id int64) (*user.User, error) {
	var model *UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		model, err = first(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&UserSchema{}, id).Error; err != nil {
			return pkgerrors.NewInternalError("failed to delete user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Debug("user deleted in db", zap.Int64("id", id))
	return model.toDomain(), nil
}

func first(db *gorm.DB, id int64) (*UserSchema, error) {
	var model UserSchema
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFoundError("user", "User not found")
		}
		return nil, pkgerrors.NewInternalError("failed to get user", err)
	}
	return &model, nil
}
