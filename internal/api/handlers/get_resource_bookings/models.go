package get_resource_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// from, to - RFC3339; includeCanceled - опционально, bool
func ToServiceRequest(resourceID, fromStr, toStr, includeCanceledStr string) (*models.ListResourceBookingsRequest, error) {
	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}

	includeCanceled := false
	if includeCanceledStr != "" {
		includeCanceled, err = strconv.ParseBool(includeCanceledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCanceled: %w", err)
		}
	}

	return &models.ListResourceBookingsRequest{
		ResourceID:      resourceID,
		From:            from,
		To:              to,
		IncludeCanceled: includeCanceled,
	}, nil
}
