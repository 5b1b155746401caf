package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
)

// validateRequest валидирует входные данные запроса и парсит дату
func validateRequest(req *Request) (scheduling.Date, error) {
	if err := validateID("resourceID", req.ResourceID); err != nil {
		return scheduling.Date{}, err
	}

	if err := validateID("serviceID", req.ServiceID); err != nil {
		return scheduling.Date{}, err
	}

	if req.Date == "" {
		return scheduling.Date{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return scheduling.Date{}, fmt.Errorf("%w: date must be in format YYYY-MM-DD: %v", ErrInvalidInput, err)
	}

	return date, nil
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
