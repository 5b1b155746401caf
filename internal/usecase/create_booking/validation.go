package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := validateID("resourceID", req.ResourceID); err != nil {
		return err
	}

	if err := validateID("serviceID", req.ServiceID); err != nil {
		return err
	}

	if err := validateID("clientID", req.ClientID); err != nil {
		return err
	}

	// Проверяем, что время начала указано
	if req.SlotStart.IsZero() {
		return fmt.Errorf("%w: slotStart is required", ErrInvalidInput)
	}

	return nil
}

func validateID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	if len(value) > domain.MaxIdentifierLength {
		return fmt.Errorf("%w: %s is too long", ErrInvalidInput, name)
	}
	return nil
}

// fitsAnyWindow проверяет, что занимаемый диапазон целиком лежит в одном из окон
func fitsAnyWindow(occupied domain.TimeRange, windows []domain.TimeRange) bool {
	for _, window := range windows {
		if window.Contains(occupied) {
			return true
		}
	}
	return false
}
