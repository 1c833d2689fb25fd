package appointments

import (
	"context"
	"fmt"

	"gestion-citas/internal/platform/logger"
)

// Scheduler valida referencias, aplica las transiciones de estado y persiste citas.
// No hace locking: en cancel/complete concurrentes gana la última escritura.
type Scheduler struct {
	store Store
	pets  PetDirectory
	users UserDirectory
	log   logger.Logger
}

func NewScheduler(store Store, pets PetDirectory, users UserDirectory, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		store: store,
		pets:  pets,
		users: users,
		log:   log.With(map[string]any{"component": "scheduler"}),
	}
}

// Schedule persiste la cita tal como viene (el estado lo define quien llama, normalmente PENDING).
func (s *Scheduler) Schedule(ctx context.Context, a Appointment) (Appointment, error) {
	if err := s.checkReferences(ctx, a); err != nil {
		return Appointment{}, err
	}

	saved, err := s.store.Save(ctx, a)
	if err != nil {
		return Appointment{}, fmt.Errorf("save appointment: %w", err)
	}

	s.log.Info("appointment scheduled", map[string]any{
		"appointment_id":  saved.ID,
		"pet_id":          saved.PetID,
		"veterinarian_id": saved.VeterinarianID,
		"status":          string(saved.Status),
	})
	return saved, nil
}

// Update sobrescribe la cita completa. Un estado vacío, o PENDING sobre un estado
// terminal, conserva el estado guardado.
func (s *Scheduler) Update(ctx context.Context, a Appointment) (Appointment, error) {
	current, err := s.find(ctx, a.ID)
	if err != nil {
		return Appointment{}, err
	}
	if err := s.checkReferences(ctx, a); err != nil {
		return Appointment{}, err
	}

	if a.Status == "" || (a.Status == StatusPending && current.Status.Terminal()) {
		a.Status = current.Status
	}

	saved, err := s.store.Save(ctx, a)
	if err != nil {
		return Appointment{}, fmt.Errorf("save appointment: %w", err)
	}

	s.log.Info("appointment updated", map[string]any{
		"appointment_id": saved.ID,
		"status":         string(saved.Status),
	})
	return saved, nil
}

func (s *Scheduler) Cancel(ctx context.Context, id string) error {
	a, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	a.Status = StatusCancelled
	if _, err := s.store.Save(ctx, a); err != nil {
		return fmt.Errorf("save appointment: %w", err)
	}

	s.log.Info("appointment cancelled", map[string]any{"appointment_id": id})
	return nil
}

// Complete marca la cita como COMPLETED. Si no existe devuelve found=false sin error
// (a diferencia de Cancel). No verifica si la cita estaba cancelada.
func (s *Scheduler) Complete(ctx context.Context, id string) (Appointment, bool, error) {
	a, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Appointment{}, false, fmt.Errorf("find appointment %s: %w", id, err)
	}
	if !found {
		s.log.Debug("complete on missing appointment", map[string]any{"appointment_id": id})
		return Appointment{}, false, nil
	}

	a.Status = StatusCompleted
	saved, err := s.store.Save(ctx, a)
	if err != nil {
		return Appointment{}, false, fmt.Errorf("save appointment: %w", err)
	}

	s.log.Info("appointment completed", map[string]any{"appointment_id": id})
	return saved, true, nil
}

func (s *Scheduler) Get(ctx context.Context, id string) (Appointment, error) {
	return s.find(ctx, id)
}

func (s *Scheduler) ListByVeterinarian(ctx context.Context, veterinarianID string) ([]Appointment, error) {
	return s.store.FindByVeterinarianID(ctx, veterinarianID)
}

func (s *Scheduler) ListAll(ctx context.Context) ([]Appointment, error) {
	return s.store.FindAll(ctx)
}

func (s *Scheduler) find(ctx context.Context, id string) (Appointment, error) {
	a, found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Appointment{}, fmt.Errorf("find appointment %s: %w", id, err)
	}
	if !found {
		s.log.Debug("appointment not found", map[string]any{"appointment_id": id})
		return Appointment{}, notFound(KindAppointment, id)
	}
	return a, nil
}

// checkReferences exige que la mascota y el veterinario existan (en ese orden).
func (s *Scheduler) checkReferences(ctx context.Context, a Appointment) error {
	_, found, err := s.pets.FindByID(ctx, a.PetID)
	if err != nil {
		return fmt.Errorf("find pet %s: %w", a.PetID, err)
	}
	if !found {
		s.log.Debug("pet not found", map[string]any{"pet_id": a.PetID})
		return notFound(KindPet, a.PetID)
	}

	_, found, err = s.users.FindByID(ctx, a.VeterinarianID)
	if err != nil {
		return fmt.Errorf("find veterinarian %s: %w", a.VeterinarianID, err)
	}
	if !found {
		s.log.Debug("veterinarian not found", map[string]any{"veterinarian_id": a.VeterinarianID})
		return notFound(KindVeterinarian, a.VeterinarianID)
	}
	return nil
}
