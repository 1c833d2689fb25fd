package appointments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestion-citas/internal/domain/pets"
	"gestion-citas/internal/domain/users"
)

// -------------------------
// Fakes
// -------------------------

type fakeStore struct {
	order []string
	byID  map[string]Appointment

	saves   []Appointment
	findErr error
	saveErr error
}

func newFakeStore(items ...Appointment) *fakeStore {
	s := &fakeStore{byID: map[string]Appointment{}}
	for _, a := range items {
		s.order = append(s.order, a.ID)
		s.byID[a.ID] = a
	}
	return s
}

func (s *fakeStore) FindByID(ctx context.Context, id string) (Appointment, bool, error) {
	if s.findErr != nil {
		return Appointment{}, false, s.findErr
	}
	a, ok := s.byID[id]
	return a, ok, nil
}

func (s *fakeStore) Save(ctx context.Context, a Appointment) (Appointment, error) {
	s.saves = append(s.saves, a)
	if s.saveErr != nil {
		return Appointment{}, s.saveErr
	}
	if a.ID == "" {
		a.ID = "generated"
	}
	if _, ok := s.byID[a.ID]; !ok {
		s.order = append(s.order, a.ID)
	}
	s.byID[a.ID] = a
	return a, nil
}

func (s *fakeStore) FindByVeterinarianID(ctx context.Context, veterinarianID string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, id := range s.order {
		if a := s.byID[id]; a.VeterinarianID == veterinarianID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeStore) FindAll(ctx context.Context) ([]Appointment, error) {
	out := make([]Appointment, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

type fakePets struct {
	known map[string]bool
	err   error
}

func (d fakePets) FindByID(ctx context.Context, id string) (pets.Pet, bool, error) {
	if d.err != nil {
		return pets.Pet{}, false, d.err
	}
	if !d.known[id] {
		return pets.Pet{}, false, nil
	}
	return pets.Pet{ID: id}, true, nil
}

type fakeUsers struct {
	known map[string]bool
}

func (d fakeUsers) FindByID(ctx context.Context, id string) (users.User, bool, error) {
	if !d.known[id] {
		return users.User{}, false, nil
	}
	return users.User{ID: id}, true, nil
}

func pendingAppointment() Appointment {
	a := NewAppointment("1", "1")
	a.ID = "1"
	return a
}

func newTestScheduler(store *fakeStore) *Scheduler {
	return NewScheduler(
		store,
		fakePets{known: map[string]bool{"1": true}},
		fakeUsers{known: map[string]bool{"1": true}},
		nil,
	)
}

func requireNotFound(t *testing.T, err error, kind Kind, id string) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, IsNotFound(err), "expected not found, got %v", err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, kind, nf.Kind)
	assert.Equal(t, id, nf.ID)
}

// -------------------------
// Schedule
// -------------------------

func TestScheduler_Schedule_Succeeds(t *testing.T) {
	store := newFakeStore()
	svc := newTestScheduler(store)

	a := pendingAppointment()
	got, err := svc.Schedule(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, got.Status)
	require.Len(t, store.saves, 1)
	assert.Equal(t, a, store.saves[0])
}

func TestScheduler_Schedule_KeepsCallerStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTestScheduler(store)

	a := pendingAppointment()
	a.Status = StatusCompleted

	got, err := svc.Schedule(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestScheduler_Schedule_PetNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestScheduler(store)

	a := pendingAppointment()
	a.PetID = "missing-pet"

	_, err := svc.Schedule(context.Background(), a)
	requireNotFound(t, err, KindPet, "missing-pet")
	assert.Empty(t, store.saves)
}

func TestScheduler_Schedule_VeterinarianNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestScheduler(store)

	a := pendingAppointment()
	a.VeterinarianID = "missing-vet"

	_, err := svc.Schedule(context.Background(), a)
	requireNotFound(t, err, KindVeterinarian, "missing-vet")
	assert.Empty(t, store.saves)
}

func TestScheduler_Schedule_DirectoryErrorIsNotNotFound(t *testing.T) {
	store := newFakeStore()
	boom := errors.New("directory down")
	svc := NewScheduler(store, fakePets{err: boom}, fakeUsers{}, nil)

	_, err := svc.Schedule(context.Background(), pendingAppointment())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsNotFound(err))
	assert.Empty(t, store.saves)
}

func TestScheduler_Schedule_SaveError(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	svc := newTestScheduler(store)

	_, err := svc.Schedule(context.Background(), pendingAppointment())
	assert.ErrorIs(t, err, store.saveErr)
}

// -------------------------
// Update
// -------------------------

func TestScheduler_Update_Succeeds(t *testing.T) {
	store := newFakeStore(pendingAppointment())
	svc := newTestScheduler(store)

	a := pendingAppointment()
	a.Notes = "traer carnet de vacunas"

	got, err := svc.Update(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, "traer carnet de vacunas", got.Notes)
	require.Len(t, store.saves, 1)
	assert.Equal(t, a, store.saves[0])
}

func TestScheduler_Update_UnknownAppointment(t *testing.T) {
	store := newFakeStore()
	svc := newTestScheduler(store)

	a := pendingAppointment()
	a.ID = "99"

	_, err := svc.Update(context.Background(), a)
	requireNotFound(t, err, KindAppointment, "99")
	assert.Empty(t, store.saves)
}

func TestScheduler_Update_UnknownPetAndVeterinarian(t *testing.T) {
	store := newFakeStore(pendingAppointment())
	svc := newTestScheduler(store)

	a := pendingAppointment()
	a.PetID = "7"
	_, err := svc.Update(context.Background(), a)
	requireNotFound(t, err, KindPet, "7")

	a = pendingAppointment()
	a.VeterinarianID = "8"
	_, err = svc.Update(context.Background(), a)
	requireNotFound(t, err, KindVeterinarian, "8")

	assert.Empty(t, store.saves)
}

func TestScheduler_Update_DoesNotResurrectTerminalStatus(t *testing.T) {
	cancelled := pendingAppointment()
	cancelled.Status = StatusCancelled
	store := newFakeStore(cancelled)
	svc := newTestScheduler(store)

	a := pendingAppointment() // PENDING
	got, err := svc.Update(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	a.Status = ""
	got, err = svc.Update(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

// -------------------------
// Cancel / Complete
// -------------------------

func TestScheduler_Cancel_SetsCancelled(t *testing.T) {
	store := newFakeStore(pendingAppointment())
	svc := newTestScheduler(store)

	require.NoError(t, svc.Cancel(context.Background(), "1"))

	require.Len(t, store.saves, 1)
	assert.Equal(t, "1", store.saves[0].ID)
	assert.Equal(t, StatusCancelled, store.saves[0].Status)
	assert.Equal(t, StatusCancelled, store.byID["1"].Status)
}

func TestScheduler_Cancel_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestScheduler(store)

	err := svc.Cancel(context.Background(), "99")
	requireNotFound(t, err, KindAppointment, "99")
	assert.Empty(t, store.saves)
}

func TestScheduler_Complete_Scenario(t *testing.T) {
	store := newFakeStore(pendingAppointment())
	svc := newTestScheduler(store)

	got, found, err := svc.Complete(context.Background(), "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, StatusCompleted, got.Status)
	require.Len(t, store.saves, 1)
	assert.Equal(t, "1", store.saves[0].ID)

	got, found, err = svc.Complete(context.Background(), "99")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Appointment{}, got)
	assert.Len(t, store.saves, 1, "complete on a missing id must not save")
}

func TestScheduler_Complete_StoreError(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("timeout")
	svc := newTestScheduler(store)

	_, found, err := svc.Complete(context.Background(), "1")
	assert.ErrorIs(t, err, store.findErr)
	assert.False(t, found)
}

func TestScheduler_Complete_AllowsCancelled(t *testing.T) {
	cancelled := pendingAppointment()
	cancelled.Status = StatusCancelled
	store := newFakeStore(cancelled)
	svc := newTestScheduler(store)

	got, found, err := svc.Complete(context.Background(), "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, StatusCompleted, got.Status)
}

// -------------------------
// Listings / Get
// -------------------------

func TestScheduler_ListByVeterinarian_PreservesStoreOrder(t *testing.T) {
	a1 := Appointment{ID: "a1", PetID: "1", VeterinarianID: "v1", Status: StatusPending}
	a2 := Appointment{ID: "a2", PetID: "1", VeterinarianID: "v2", Status: StatusPending}
	a3 := Appointment{ID: "a3", PetID: "2", VeterinarianID: "v1", Status: StatusCompleted}
	store := newFakeStore(a1, a2, a3)
	svc := newTestScheduler(store)

	got, err := svc.ListByVeterinarian(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, []Appointment{a1, a3}, got)

	got, err = svc.ListByVeterinarian(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScheduler_ListAll(t *testing.T) {
	a1 := Appointment{ID: "a1", VeterinarianID: "v1"}
	a2 := Appointment{ID: "a2", VeterinarianID: "v2"}
	store := newFakeStore(a1, a2)
	svc := newTestScheduler(store)

	got, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Appointment{a1, a2}, got)
}

func TestScheduler_Get(t *testing.T) {
	store := newFakeStore(pendingAppointment())
	svc := newTestScheduler(store)

	got, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	_, err = svc.Get(context.Background(), "2")
	requireNotFound(t, err, KindAppointment, "2")
}
