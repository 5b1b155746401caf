package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ResourceID string // ID ресурса (мастера)
	ServiceID  string // ID услуги
	Date       string // Дата в часовом поясе ресурса, YYYY-MM-DD
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ResourceID          string
	ServiceID           string
	Date                string
	Timezone            string
	DurationMinutes     int
	BufferMinutes       int
	SlotIntervalMinutes int
	Slots               []time.Time // Время начала слотов в UTC по возрастанию
}
