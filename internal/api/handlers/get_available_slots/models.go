package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ResourceID          string   `json:"resourceId"`
	ServiceID           string   `json:"serviceId"`
	Date                string   `json:"date"`
	Timezone            string   `json:"timezone"`
	DurationMinutes     int      `json:"durationMinutes"`
	BufferMinutes       int      `json:"bufferMinutes"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes"`
	Slots               []string `json:"slots"` // ISO-8601 в UTC
}

// ToUseCaseRequest формирует запрос к use case
func ToUseCaseRequest(resourceID, serviceID, date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		ResourceID: resourceID,
		ServiceID:  serviceID,
		Date:       date,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.UTC().Format(time.RFC3339))
	}

	return &AvailableSlotsResponse{
		ResourceID:          resp.ResourceID,
		ServiceID:           resp.ServiceID,
		Date:                resp.Date,
		Timezone:            resp.Timezone,
		DurationMinutes:     resp.DurationMinutes,
		BufferMinutes:       resp.BufferMinutes,
		SlotIntervalMinutes: resp.SlotIntervalMinutes,
		Slots:               slots,
	}
}
