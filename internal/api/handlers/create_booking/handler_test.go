package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
	got  *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{"resourceId":"anna","serviceId":"haircut","clientId":"c1","slotStart":"2025-10-15T13:00:00+03:00"}`

func TestHandler_Created(t *testing.T) {
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID: "b1", ResourceID: "anna", ServiceID: "haircut", ClientID: "c1",
		Start: start, End: start.Add(time.Hour), Status: "confirmed", CreatedAt: start,
	}}
	h := NewHandler(uc, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, uc.got.SlotStart.Equal(start))

	var body BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "b1", body.ID)
	assert.Equal(t, "2025-10-15T10:00:00Z", body.Start)
	assert.Equal(t, "2025-10-15T11:00:00Z", body.End)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"conflict", fmt.Errorf("%w: taken", createBooking.ErrConflict), http.StatusConflict},
		{"resource not found", createBooking.ErrResourceNotFound, http.StatusNotFound},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"outside schedule", createBooking.ErrOutsideSchedule, http.StatusBadRequest},
		{"invalid input", fmt.Errorf("%w: clientId is required", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{"store unavailable", fmt.Errorf("%w: timeout", createBooking.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", "{"},
		{"slot without offset", `{"resourceId":"anna","serviceId":"haircut","clientId":"c1","slotStart":"2025-10-15 13:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.got)
		})
	}
}
