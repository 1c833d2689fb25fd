package appointments

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
)

// Kind identifica qué referencia no se pudo resolver.
type Kind string

const (
	KindPet          Kind = "pet"
	KindVeterinarian Kind = "veterinarian"
	KindAppointment  Kind = "appointment"
)

// NotFoundError lleva el tipo de entidad y el id que faltó.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind Kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
