package remove_blocked_range

import "context"

type ResourceService interface {
	RemoveBlockedRange(ctx context.Context, resourceID, blockID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
