package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultTimezone            = "UTC"
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 480 // 8 hours
	MaxServiceDurationMinutes   = 720
	MaxCancellationReasonLength = 500
	MaxBlockedRangeReasonLength = 255
	MaxIdentifierLength         = 64
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие время ресурса
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
