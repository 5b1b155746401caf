package models

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// DaySchedule рабочие часы дня; open и close отсутствуют - выходной
type DaySchedule struct {
	Open  *types.TimeString `json:"open,omitempty"`
	Close *types.TimeString `json:"close,omitempty"`
}

// WorkingHours расписание на неделю
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// Request модели

// UpdateScheduleRequest запрос на обновление расписания ресурса
// Все поля опциональны - обновляются только переданные значения.
// WorkingHours заменяет недельное расписание целиком.
type UpdateScheduleRequest struct {
	Timezone            *string       `json:"timezone,omitempty"`
	SlotIntervalMinutes *int          `json:"slotIntervalMinutes,omitempty"`
	WorkingHours        *WorkingHours `json:"workingHours,omitempty"`
}

// CreateBlockedRangeRequest запрос на блокировку времени ресурса
type CreateBlockedRangeRequest struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason string    `json:"reason,omitempty"`
}

// Response модели

// ScheduleResponse расписание ресурса
type ScheduleResponse struct {
	ResourceID          string       `json:"resourceId"`
	Name                string       `json:"name"`
	Timezone            string       `json:"timezone"`
	SlotIntervalMinutes int          `json:"slotIntervalMinutes"`
	WorkingHours        WorkingHours `json:"workingHours"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// BlockedRangeResponse блокировка времени
type BlockedRangeResponse struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resourceId"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToDomain конвертирует расписание в domain.WorkingHours
func (w WorkingHours) ToDomain() domain.WorkingHours {
	var hours domain.WorkingHours
	hours[time.Monday] = w.Monday.toDomain()
	hours[time.Tuesday] = w.Tuesday.toDomain()
	hours[time.Wednesday] = w.Wednesday.toDomain()
	hours[time.Thursday] = w.Thursday.toDomain()
	hours[time.Friday] = w.Friday.toDomain()
	hours[time.Saturday] = w.Saturday.toDomain()
	hours[time.Sunday] = w.Sunday.toDomain()
	return hours
}

func (d DaySchedule) toDomain() domain.DaySchedule {
	return domain.DaySchedule{Open: d.Open, Close: d.Close}
}

// FromDomainWorkingHours конвертирует domain.WorkingHours в модель ответа
func FromDomainWorkingHours(hours domain.WorkingHours) WorkingHours {
	day := func(d time.Weekday) DaySchedule {
		schedule := hours.ForWeekday(d)
		return DaySchedule{Open: schedule.Open, Close: schedule.Close}
	}
	return WorkingHours{
		Monday:    day(time.Monday),
		Tuesday:   day(time.Tuesday),
		Wednesday: day(time.Wednesday),
		Thursday:  day(time.Thursday),
		Friday:    day(time.Friday),
		Saturday:  day(time.Saturday),
		Sunday:    day(time.Sunday),
	}
}

// FromDomainResource конвертирует domain.Resource в ScheduleResponse
func FromDomainResource(resource *domain.Resource) *ScheduleResponse {
	return &ScheduleResponse{
		ResourceID:          resource.ID,
		Name:                resource.Name,
		Timezone:            resource.Timezone,
		SlotIntervalMinutes: resource.SlotInterval(),
		WorkingHours:        FromDomainWorkingHours(resource.WorkingHours),
		UpdatedAt:           resource.UpdatedAt,
	}
}

// FromDomainBlockedRange конвертирует domain.BlockedRange в BlockedRangeResponse
func FromDomainBlockedRange(block *domain.BlockedRange) *BlockedRangeResponse {
	return &BlockedRangeResponse{
		ID:         block.ID,
		ResourceID: block.ResourceID,
		Start:      block.Range.Start.UTC(),
		End:        block.Range.End.UTC(),
		Reason:     block.Reason,
		CreatedAt:  block.CreatedAt,
	}
}
