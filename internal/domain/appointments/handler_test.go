package appointments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, store *fakeStore) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	RegisterRoutes(r, newTestScheduler(store), nil)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out bytes.Buffer
	_, _ = out.ReadFrom(res.Body)
	return res, out.Bytes()
}

func TestHandler_Schedule_DefaultsToPending(t *testing.T) {
	store := newFakeStore()
	ts := newTestServer(t, store)

	res, body := do(t, http.MethodPost, ts.URL+"/appointments", map[string]any{
		"pet_id":          "1",
		"veterinarian_id": "1",
		"scheduled_at":    "2026-05-04T10:30:00Z",
		"reason":          "control anual",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))

	var got appointmentResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, "control anual", got.Reason)
	require.NotNil(t, got.ScheduledAt)
	require.Len(t, store.saves, 1)
}

func TestHandler_Schedule_Errors(t *testing.T) {
	store := newFakeStore()
	ts := newTestServer(t, store)

	res, _ := do(t, http.MethodPost, ts.URL+"/appointments", map[string]any{
		"pet_id":          "404",
		"veterinarian_id": "1",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = do(t, http.MethodPost, ts.URL+"/appointments", map[string]any{
		"pet_id":          "1",
		"veterinarian_id": "1",
		"status":          "ARCHIVED",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = do(t, http.MethodPost, ts.URL+"/appointments", map[string]any{
		"pet_id":          "1",
		"veterinarian_id": "1",
		"scheduled_at":    "mañana",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	assert.Empty(t, store.saves)
}

func TestHandler_CancelAndComplete(t *testing.T) {
	store := newFakeStore(pendingAppointment())
	ts := newTestServer(t, store)

	res, body := do(t, http.MethodPost, ts.URL+"/appointments/1/complete", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var got appointmentResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, StatusCompleted, got.Status)

	res, _ = do(t, http.MethodPost, ts.URL+"/appointments/99/complete", nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = do(t, http.MethodPost, ts.URL+"/appointments/1/cancel", nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, StatusCancelled, store.byID["1"].Status)

	res, _ = do(t, http.MethodPost, ts.URL+"/appointments/99/cancel", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHandler_Update_UsesPathID(t *testing.T) {
	store := newFakeStore(pendingAppointment())
	ts := newTestServer(t, store)

	res, body := do(t, http.MethodPut, ts.URL+"/appointments/1", map[string]any{
		"pet_id":          "1",
		"veterinarian_id": "1",
		"notes":           "ayuno de 12 horas",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	require.Len(t, store.saves, 1)
	assert.Equal(t, "1", store.saves[0].ID)
	assert.Equal(t, StatusPending, store.saves[0].Status)
	assert.Equal(t, "ayuno de 12 horas", store.saves[0].Notes)

	res, _ = do(t, http.MethodPut, ts.URL+"/appointments/2", map[string]any{
		"pet_id":          "1",
		"veterinarian_id": "1",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestHandler_Listings(t *testing.T) {
	store := newFakeStore(
		Appointment{ID: "a1", PetID: "1", VeterinarianID: "v1", Status: StatusPending},
		Appointment{ID: "a2", PetID: "1", VeterinarianID: "v2", Status: StatusPending},
	)
	ts := newTestServer(t, store)

	decode := func(body []byte) []appointmentResponse {
		var out []appointmentResponse
		require.NoError(t, json.Unmarshal(body, &out))
		return out
	}

	res, body := do(t, http.MethodGet, ts.URL+"/appointments", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode(body), 2)

	res, body = do(t, http.MethodGet, ts.URL+"/appointments?veterinarian_id=v2", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	items := decode(body)
	require.Len(t, items, 1)
	assert.Equal(t, "a2", items[0].ID)

	res, body = do(t, http.MethodGet, ts.URL+"/veterinarians/v1/appointments", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	items = decode(body)
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].ID)

	res, _ = do(t, http.MethodGet, ts.URL+"/appointments/a1", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = do(t, http.MethodGet, ts.URL+"/appointments/zz", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
