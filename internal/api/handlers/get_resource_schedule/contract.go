package get_resource_schedule

import (
	"context"

	"github.com/m04kA/SMC-BookingEngine/internal/service/resources/models"
)

type ResourceService interface {
	GetSchedule(ctx context.Context, resourceID string) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
