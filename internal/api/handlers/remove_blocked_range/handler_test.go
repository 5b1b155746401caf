package remove_blocked_range

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingEngine/internal/service/resources"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
)

type serviceFunc func(ctx context.Context, resourceID, blockID string) error

func (f serviceFunc) RemoveBlockedRange(ctx context.Context, resourceID, blockID string) error {
	return f(ctx, resourceID, blockID)
}

func remove(h *Handler, resourceID, blockID string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/resources/"+resourceID+"/blocked-ranges/"+blockID, nil)
	r = mux.SetURLVars(r, map[string]string{"resourceId": resourceID, "blockId": blockID})

	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandler_RemoveBlockedRange(t *testing.T) {
	var gotResource, gotBlock string
	svc := serviceFunc(func(ctx context.Context, resourceID, blockID string) error {
		gotResource, gotBlock = resourceID, blockID
		return nil
	})

	w := remove(NewHandler(svc, logger.NewNop()), "anna", "blk-1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "anna", gotResource)
	assert.Equal(t, "blk-1", gotBlock)
}

func TestHandler_RemoveBlockedRange_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"block not found", fmt.Errorf("%w: id=blk-1", resources.ErrBlockedRangeNotFound), http.StatusNotFound},
		{"invalid id", fmt.Errorf("%w: empty block id", resources.ErrInvalidInput), http.StatusBadRequest},
		{"internal", fmt.Errorf("%w: connection reset", resources.ErrInternal), http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceFunc(func(ctx context.Context, resourceID, blockID string) error {
				return tt.err
			})

			w := remove(NewHandler(svc, logger.NewNop()), "anna", "blk-1")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
