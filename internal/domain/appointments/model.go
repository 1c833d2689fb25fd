package appointments

import "time"

// Status define el estado de una cita.
// @Enum PENDING, CANCELLED, COMPLETED
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Terminal indica si el estado ya no vuelve a PENDING.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Appointment es una cita entre una mascota y un veterinario.
type Appointment struct {
	ID string

	PetID          string
	VeterinarianID string

	Status Status

	// Metadata opaca para el scheduler
	ScheduledAt *time.Time
	Reason      string
	Notes       string

	// Los setea el store
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAppointment arma una cita nueva en PENDING.
func NewAppointment(petID, veterinarianID string) Appointment {
	return Appointment{
		PetID:          petID,
		VeterinarianID: veterinarianID,
		Status:         StatusPending,
	}
}
