package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ResourceID string    // ID ресурса (мастера)
	ServiceID  string    // ID услуги
	ClientID   string    // ID клиента
	SlotStart  time.Time // Начало выбранного слота
}

// Options бизнес-политика создания бронирований
type Options struct {
	// InitialStatus статус нового бронирования (pending или confirmed)
	InitialStatus string
	// ConflictPrecheck быстрая проверка по текущему списку бронирований до коммита
	ConflictPrecheck bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            string
	ResourceID    string
	ServiceID     string
	ClientID      string
	Start         time.Time
	End           time.Time
	BufferMinutes int
	Status        string
	CreatedAt     time.Time
}
