package remove_blocked_range

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/service/resources"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgNotFound       = "блокировка не найдена"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/resources/{resourceId}/blocked-ranges/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID := vars["resourceId"]
	blockID := vars["blockId"]

	if err := h.service.RemoveBlockedRange(r.Context(), resourceID, blockID); err != nil {
		switch {
		case errors.Is(err, resources.ErrBlockedRangeNotFound):
			h.logger.Warn("DELETE /resources/{id}/blocked-ranges/{id} - Not found: resource_id=%s, block_id=%s",
				resourceID, blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("DELETE /resources/{id}/blocked-ranges/{id} - Invalid block ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlockID)

		default:
			h.logger.Error("DELETE /resources/{id}/blocked-ranges/{id} - Failed to remove: block_id=%s, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{id}/blocked-ranges/{id} - Blocked range removed: resource_id=%s, block_id=%s",
		resourceID, blockID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
