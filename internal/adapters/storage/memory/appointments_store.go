package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"gestion-citas/internal/domain/appointments"

	"github.com/google/uuid"
)

// appointmentStore guarda citas en memoria. Los listados respetan el orden de alta.
type appointmentStore struct {
	mu    sync.RWMutex
	byID  map[string]appointments.Appointment
	order []string
	now   func() time.Time
}

func NewAppointmentStore() appointments.Store {
	return &appointmentStore{
		byID: make(map[string]appointments.Appointment),
		now:  time.Now,
	}
}

func (s *appointmentStore) FindByID(ctx context.Context, id string) (appointments.Appointment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	return a, ok, nil
}

// Save hace upsert: asigna ID si falta y conserva CreatedAt de la primera escritura.
func (s *appointmentStore) Save(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}

	now := s.now()
	if prev, exists := s.byID[a.ID]; exists {
		a.CreatedAt = prev.CreatedAt
	} else {
		a.CreatedAt = now
		s.order = append(s.order, a.ID)
	}
	a.UpdatedAt = now

	s.byID[a.ID] = a
	return a, nil
}

func (s *appointmentStore) FindByVeterinarianID(ctx context.Context, veterinarianID string) ([]appointments.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, id := range s.order {
		if a := s.byID[id]; a.VeterinarianID == veterinarianID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *appointmentStore) FindAll(ctx context.Context) ([]appointments.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]appointments.Appointment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}
