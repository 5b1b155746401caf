package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/infra/storage/memory"
	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

func newUseCase(t *testing.T) *getAvailableSlots.UseCase {
	t.Helper()

	open := types.MustTimeString("09:00")
	closeAt := types.MustTimeString("12:00")

	var hours domain.WorkingHours
	hours[time.Wednesday] = domain.DaySchedule{Open: &open, Close: &closeAt}

	store := memory.NewStore()
	store.PutResource(domain.Resource{ID: "anna", Timezone: "UTC", SlotIntervalMinutes: 60, WorkingHours: hours})
	store.PutService(domain.ServiceSpec{ID: "haircut", DurationMinutes: 60})
	store.PutService(domain.ServiceSpec{ID: "coloring", DurationMinutes: 90, BufferMinutes: 30})

	return getAvailableSlots.NewUseCase(store, store, store, store, nil, logger.NewNop())
}

func serve(h *Handler, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/resources/{resourceId}/available-slots", h.Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandler_ReturnsSlots(t *testing.T) {
	h := NewHandler(newUseCase(t), logger.NewNop())

	w := serve(h, "/api/v1/resources/anna/available-slots?serviceId=haircut&date=2025-10-15")
	require.Equal(t, http.StatusOK, w.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{
		"2025-10-15T09:00:00Z",
		"2025-10-15T10:00:00Z",
		"2025-10-15T11:00:00Z",
	}, body.Slots)
}

func TestHandler_ReturnsBufferMinutes(t *testing.T) {
	h := NewHandler(newUseCase(t), logger.NewNop())

	w := serve(h, "/api/v1/resources/anna/available-slots?serviceId=coloring&date=2025-10-15")
	require.Equal(t, http.StatusOK, w.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 90, body.DurationMinutes)
	assert.Equal(t, 30, body.BufferMinutes)
	assert.Equal(t, []string{"2025-10-15T09:00:00Z", "2025-10-15T10:00:00Z"}, body.Slots)
	assert.Contains(t, w.Body.String(), `"bufferMinutes":30`)
}

func TestHandler_ClosedDayReturnsEmptyList(t *testing.T) {
	h := NewHandler(newUseCase(t), logger.NewNop())

	w := serve(h, "/api/v1/resources/anna/available-slots?serviceId=haircut&date=2025-10-16")
	require.Equal(t, http.StatusOK, w.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotNil(t, body.Slots)
	assert.Empty(t, body.Slots)
}

func TestHandler_Errors(t *testing.T) {
	h := NewHandler(newUseCase(t), logger.NewNop())

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"missing service", "/api/v1/resources/anna/available-slots?date=2025-10-15", http.StatusBadRequest},
		{"missing date", "/api/v1/resources/anna/available-slots?serviceId=haircut", http.StatusBadRequest},
		{"bad date", "/api/v1/resources/anna/available-slots?serviceId=haircut&date=15.10.2025", http.StatusBadRequest},
		{"unknown resource", "/api/v1/resources/bob/available-slots?serviceId=haircut&date=2025-10-15", http.StatusNotFound},
		{"unknown service", "/api/v1/resources/anna/available-slots?serviceId=nails&date=2025-10-15", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(h, tt.url).Code)
		})
	}
}

var _ GetAvailableSlotsUseCase = (*getAvailableSlots.UseCase)(nil)

func TestHandler_StoreUnavailable(t *testing.T) {
	h := NewHandler(failingUseCase{}, logger.NewNop())
	w := serve(h, "/api/v1/resources/anna/available-slots?serviceId=haircut&date=2025-10-15")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type failingUseCase struct{}

func (failingUseCase) Execute(context.Context, *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	return nil, getAvailableSlots.ErrStoreUnavailable
}
