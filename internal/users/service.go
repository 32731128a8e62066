package users

import (
	"context"
)

// UserServiceImpl implements the UserService interface. Every call is
// forwarded to the store unchanged.
type UserServiceImpl struct {
	store UserStore
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore) *UserServiceImpl {
	return &UserServiceImpl{
		store: store,
	}
}

// FindAll returns all users
func (s *UserServiceImpl) FindAll(ctx context.Context) ([]User, error) {
	return s.store.FindAll(ctx)
}

// Save creates a new user
func (s *UserServiceImpl) Save(ctx context.Context, user *User) (*User, error) {
	return s.store.Save(ctx, user)
}

// DeleteByID deletes a user
func (s *UserServiceImpl) DeleteByID(ctx context.Context, id int64) error {
	return s.store.DeleteByID(ctx, id)
}

// GetOne retrieves a user
func (s *UserServiceImpl) GetOne(ctx context.Context, id int64) (*User, error) {
	return s.store.GetOne(ctx, id)
}

// Update updates a user
func (s *UserServiceImpl) Update(ctx context.Context, user *User) (*User, error) {
	return s.store.Update(ctx, user)
}
