package domain

import "time"

// BlockedRange период недоступности ресурса (отпуск, внешнее событие)
type BlockedRange struct {
	ID         string
	ResourceID string
	Range      TimeRange
	Reason     string
	CreatedAt  time.Time
}
