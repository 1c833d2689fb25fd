// Package remote resuelve mascotas y veterinarios contra servicios HTTP externos.
// Un 404 significa "no existe"; cualquier otro no-2xx es error.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gestion-citas/internal/domain/pets"
	"gestion-citas/internal/domain/users"
	"gestion-citas/internal/platform/httpclient"
)

type petDTO struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	Sex         string     `json:"sex"`
	BirthDate   *time.Time `json:"birth_date"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type userDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PetDirectory struct {
	client *httpclient.Client
}

func NewPetDirectory(client *httpclient.Client) *PetDirectory {
	return &PetDirectory{client: client}
}

func (d *PetDirectory) FindByID(ctx context.Context, id string) (pets.Pet, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, false, nil
	}

	var dto petDTO
	found, err := get(ctx, d.client, &dto, "pets", id)
	if err != nil || !found {
		return pets.Pet{}, false, err
	}

	return pets.Pet{
		ID:          dto.ID,
		OwnerUserID: dto.OwnerUserID,
		Name:        dto.Name,
		Species:     pets.Species(dto.Species),
		Breed:       dto.Breed,
		Sex:         pets.Sex(dto.Sex),
		BirthDate:   dto.BirthDate,
		Notes:       dto.Notes,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}, true, nil
}

type UserDirectory struct {
	client *httpclient.Client
}

func NewUserDirectory(client *httpclient.Client) *UserDirectory {
	return &UserDirectory{client: client}
}

func (d *UserDirectory) FindByID(ctx context.Context, id string) (users.User, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, false, nil
	}

	var dto userDTO
	found, err := get(ctx, d.client, &dto, "users", id)
	if err != nil || !found {
		return users.User{}, false, err
	}

	return users.User{
		ID:        dto.ID,
		Name:      dto.Name,
		Email:     dto.Email,
		Role:      users.Role(dto.Role),
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}, true, nil
}

func get(ctx context.Context, c *httpclient.Client, out any, resource, id string) (bool, error) {
	err := c.GetJSON(ctx, out, resource, id)
	switch {
	case err == nil:
		return true, nil
	case httpclient.IsStatus(err, http.StatusNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("remote %s directory: %w", resource, err)
	}
}
