package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	// FindByID devuelve found=false si no existe.
	FindByID(ctx context.Context, id string) (Pet, bool, error)
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
