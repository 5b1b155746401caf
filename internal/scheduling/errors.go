package scheduling

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (интервал, длительность, расписание)
	ErrInvalidInput = errors.New("scheduling: invalid input")
)
