package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"gestion-citas/internal/domain/appointments"

	"github.com/google/uuid"
)

type AppointmentStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewAppointmentStore(db *sql.DB) *AppointmentStore {
	return &AppointmentStore{db: db, now: time.Now}
}

const appointmentColumns = `
	id, pet_id, veterinarian_id,
	status, scheduled_at,
	reason, notes,
	created_at, updated_at
`

func (s *AppointmentStore) FindByID(ctx context.Context, id string) (appointments.Appointment, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, false, nil
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)

	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, false, nil
		}
		return appointments.Appointment{}, false, err
	}
	return a, true, nil
}

// Save hace upsert por id; created_at se conserva en updates.
func (s *AppointmentStore) Save(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}
	now := s.now()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
		ON CONFLICT (id) DO UPDATE SET
			pet_id          = EXCLUDED.pet_id,
			veterinarian_id = EXCLUDED.veterinarian_id,
			status          = EXCLUDED.status,
			scheduled_at    = EXCLUDED.scheduled_at,
			reason          = EXCLUDED.reason,
			notes           = EXCLUDED.notes,
			updated_at      = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`,
		a.ID,
		a.PetID,
		a.VeterinarianID,
		string(a.Status),
		toNullTime(a.ScheduledAt),
		a.Reason,
		a.Notes,
		now,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (s *AppointmentStore) FindByVeterinarianID(ctx context.Context, veterinarianID string) ([]appointments.Appointment, error) {
	return s.query(ctx, `
		SELECT `+appointmentColumns+` FROM appointments
		WHERE veterinarian_id = $1
		ORDER BY created_at ASC, id ASC
	`, veterinarianID)
}

func (s *AppointmentStore) FindAll(ctx context.Context) ([]appointments.Appointment, error) {
	return s.query(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY created_at ASC, id ASC`)
}

func (s *AppointmentStore) query(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var (
		a         appointments.Appointment
		status    string
		scheduled sql.NullTime
	)
	if err := s.Scan(
		&a.ID,
		&a.PetID,
		&a.VeterinarianID,
		&status,
		&scheduled,
		&a.Reason,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	a.Status = appointments.Status(status)
	a.ScheduledAt = fromNullTime(scheduled)
	return a, nil
}
