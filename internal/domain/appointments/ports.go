package appointments

import (
	"context"

	"gestion-citas/internal/domain/pets"
	"gestion-citas/internal/domain/users"
)

// Store persiste citas. found=false significa ausente; err queda para fallas de infraestructura.
type Store interface {
	FindByID(ctx context.Context, id string) (Appointment, bool, error)
	// Save hace upsert; si ID viene vacío el store lo asigna.
	Save(ctx context.Context, a Appointment) (Appointment, error)
	FindByVeterinarianID(ctx context.Context, veterinarianID string) ([]Appointment, error)
	FindAll(ctx context.Context) ([]Appointment, error)
}

type PetDirectory interface {
	FindByID(ctx context.Context, id string) (pets.Pet, bool, error)
}

type UserDirectory interface {
	FindByID(ctx context.Context, id string) (users.User, bool, error)
}
