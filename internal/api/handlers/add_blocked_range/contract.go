package add_blocked_range

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/service/resources/models"
)

type ResourceService interface {
	AddBlockedRange(ctx context.Context, resourceID string, req *models.CreateBlockedRangeRequest) (*models.BlockedRangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
