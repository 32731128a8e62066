package users

import (
	"context"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, user *User) (*User, error)
	DeleteByID(ctx context.Context, id int64) error
	GetOne(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
}

// UserService defines the interface for user service operations
type UserService interface {
	UserStore
}
