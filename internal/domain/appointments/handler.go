package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gestion-citas/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Scheduler, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", scheduleHandler(svc, log))
		ar.Get("/", listHandler(svc, log))

		ar.Get("/{appointmentID}", getHandler(svc, log))
		ar.Put("/{appointmentID}", updateHandler(svc, log))
		ar.Post("/{appointmentID}/cancel", cancelHandler(svc, log))
		ar.Post("/{appointmentID}/complete", completeHandler(svc, log))
	})

	r.Get("/veterinarians/{veterinarianID}/appointments", listByVeterinarianHandler(svc, log))
}

type appointmentRequest struct {
	PetID          string `json:"pet_id"`
	VeterinarianID string `json:"veterinarian_id"`
	Status         Status `json:"status"`
	ScheduledAt    string `json:"scheduled_at"` // RFC3339 opcional
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

type appointmentResponse struct {
	ID             string     `json:"id"`
	PetID          string     `json:"pet_id"`
	VeterinarianID string     `json:"veterinarian_id"`
	Status         Status     `json:"status"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func decodeAppointment(r *http.Request) (Appointment, error) {
	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Appointment{}, errors.New("invalid json")
	}

	if req.Status != "" && !req.Status.Valid() {
		return Appointment{}, errors.New("status must be PENDING, CANCELLED or COMPLETED")
	}

	a := Appointment{
		PetID:          strings.TrimSpace(req.PetID),
		VeterinarianID: strings.TrimSpace(req.VeterinarianID),
		Status:         req.Status,
		Reason:         strings.TrimSpace(req.Reason),
		Notes:          strings.TrimSpace(req.Notes),
	}

	if s := strings.TrimSpace(req.ScheduledAt); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Appointment{}, errors.New("scheduled_at must be RFC3339")
		}
		a.ScheduledAt = &t
	}
	return a, nil
}

// scheduleHandler godoc
// @Summary Programar cita
// @Tags appointments
// @Accept json
// @Produce json
// @Success 201
// @Failure 400
// @Failure 404
// @Router /appointments [post]
func scheduleHandler(svc *Scheduler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := decodeAppointment(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if a.Status == "" {
			a.Status = StatusPending
		}

		saved, err := svc.Schedule(r.Context(), a)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(saved))
	}
}

// listHandler godoc
// @Summary Listar citas (todas o por veterinario)
// @Tags appointments
// @Produce json
// @Param veterinarian_id query string false "ID del veterinario"
// @Success 200
// @Router /appointments [get]
func listHandler(svc *Scheduler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items []Appointment
			err   error
		)
		if vetID := strings.TrimSpace(r.URL.Query().Get("veterinarian_id")); vetID != "" {
			items, err = svc.ListByVeterinarian(r.Context(), vetID)
		} else {
			items, err = svc.ListAll(r.Context())
		}
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

// listByVeterinarianHandler godoc
// @Summary Citas de un veterinario
// @Tags appointments
// @Produce json
// @Param veterinarianID path string true "ID del veterinario"
// @Success 200
// @Router /veterinarians/{veterinarianID}/appointments [get]
func listByVeterinarianHandler(svc *Scheduler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByVeterinarian(r.Context(), chi.URLParam(r, "veterinarianID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

// getHandler godoc
// @Summary Obtener cita
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200
// @Failure 404
// @Router /appointments/{appointmentID} [get]
func getHandler(svc *Scheduler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Get(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// updateHandler godoc
// @Summary Actualizar cita (reemplazo completo)
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200
// @Failure 400
// @Failure 404
// @Router /appointments/{appointmentID} [put]
func updateHandler(svc *Scheduler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := decodeAppointment(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// El id del path manda sobre el body.
		a.ID = chi.URLParam(r, "appointmentID")

		saved, err := svc.Update(r.Context(), a)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(saved))
	}
}

// cancelHandler godoc
// @Summary Cancelar cita
// @Tags appointments
// @Param appointmentID path string true "ID de la cita"
// @Success 204
// @Failure 404
// @Router /appointments/{appointmentID}/cancel [post]
func cancelHandler(svc *Scheduler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Cancel(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
			writeError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// completeHandler godoc
// @Summary Completar cita (204 si no existe)
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID de la cita"
// @Success 200
// @Success 204
// @Router /appointments/{appointmentID}/complete [post]
func completeHandler(svc *Scheduler, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, found, err := svc.Complete(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		if !found {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		http.Error(w, nf.Error(), http.StatusNotFound)
		return
	}
	log.Error("appointment request failed", map[string]any{"err": err})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		PetID:          a.PetID,
		VeterinarianID: a.VeterinarianID,
		Status:         a.Status,
		ScheduledAt:    a.ScheduledAt,
		Reason:         a.Reason,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toAppointmentResponses(items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
