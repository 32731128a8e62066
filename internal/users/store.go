package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// UserSchema represents the users table schema
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64  `bun:"id,pk" json:"id"`
	FirstName string `bun:"firstname" json:"firstName"`
	LastName  string `bun:"lastname" json:"lastName"`
}

// UserStoreImpl implements the UserStore interface with configurable SQL
type UserStoreImpl struct {
	db      *bun.DB
	queries Queries
}

// NewUserStore creates a new user store instance
func NewUserStore(db *bun.DB, queries Queries) *UserStoreImpl {
	return &UserStoreImpl{
		db:      db,
		queries: queries.WithDefaults(),
	}
}

// FindAll returns every user row
func (s *UserStoreImpl) FindAll(ctx context.Context) ([]User, error) {
	var rows []UserSchema
	if err := s.db.NewRaw(s.queries.FindAll).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	result := make([]User, 0, len(rows))
	for _, row := range rows {
		result = append(result, *UserSchemaToUser(row))
	}
	return result, nil
}

// Save inserts a new user and returns it with the id assigned by the database.
// An insert statement without RETURNING still writes the row, the user then
// comes back unchanged.
func (s *UserStoreImpl) Save(ctx context.Context, user *User) (*User, error) {
	var id int64
	err := s.db.NewRaw(s.queries.Save, user.FirstName, user.LastName).Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, nil
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	user.ID = id
	return user, nil
}

// DeleteByID deletes the user with the given id. Deleting a missing id is a no-op.
func (s *UserStoreImpl) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.queries.DeleteByID, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

// GetOne retrieves a user by id
func (s *UserStoreImpl) GetOne(ctx context.Context, id int64) (*User, error) {
	var row UserSchema
	err := s.db.NewRaw(s.queries.GetOne, id).Scan(ctx, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	return UserSchemaToUser(row), nil
}

// Update overwrites the names of the user with the same id. Updating a missing id is a no-op.
func (s *UserStoreImpl) Update(ctx context.Context, user *User) (*User, error) {
	_, err := s.db.ExecContext(ctx, s.queries.Update, user.FirstName, user.LastName, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return user, nil
}

// UserSchemaToUser converts a scanned row to the User model
func UserSchemaToUser(schema UserSchema) *User {
	return &User{
		ID:        schema.ID,
		FirstName: schema.FirstName,
		LastName:  schema.LastName,
	}
}
