package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	FindByID(ctx context.Context, id string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
}
