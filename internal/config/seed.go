package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

// Seed начальные данные для хранилища в памяти
type Seed struct {
	Resources []SeedResource `toml:"resources"`
	Services  []SeedService  `toml:"services"`
}

// SeedResource ресурс с рабочими часами; ключи working_hours - дни недели
// ("monday", ...), значение - "09:00-18:00"
type SeedResource struct {
	ID                  string            `toml:"id"`
	Name                string            `toml:"name"`
	Timezone            string            `toml:"timezone"`
	SlotIntervalMinutes int               `toml:"slot_interval_minutes"`
	WorkingHours        map[string]string `toml:"working_hours"`
}

// SeedService услуга каталога
type SeedService struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
	BufferMinutes   int    `toml:"buffer_minutes"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// LoadSeed загружает и проверяет файл начальных данных
func LoadSeed(path string) (*Seed, error) {
	var seed Seed
	if _, err := toml.DecodeFile(path, &seed); err != nil {
		return nil, fmt.Errorf("config: decode seed %s: %w", path, err)
	}

	for _, r := range seed.Resources {
		if _, err := r.ToDomain(); err != nil {
			return nil, err
		}
	}
	for _, s := range seed.Services {
		if err := s.ToDomain().Validate(); err != nil {
			return nil, fmt.Errorf("%w: service %q: %v", ErrInvalidConfig, s.ID, err)
		}
	}

	return &seed, nil
}

// ToDomain конвертирует ресурс в domain.Resource
func (r SeedResource) ToDomain() (domain.Resource, error) {
	resource := domain.Resource{
		ID:                  r.ID,
		Name:                r.Name,
		Timezone:            r.Timezone,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
	}
	if resource.Timezone == "" {
		resource.Timezone = domain.DefaultTimezone
	}
	if resource.SlotIntervalMinutes == 0 {
		resource.SlotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}

	for name, hours := range r.WorkingHours {
		day, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return domain.Resource{}, fmt.Errorf("%w: resource %q: unknown weekday %q", ErrInvalidConfig, r.ID, name)
		}

		openStr, closeStr, found := strings.Cut(hours, "-")
		if !found {
			return domain.Resource{}, fmt.Errorf("%w: resource %q: %s: expected HH:MM-HH:MM", ErrInvalidConfig, r.ID, name)
		}
		open, err := types.NewTimeStringFromString(strings.TrimSpace(openStr))
		if err != nil {
			return domain.Resource{}, fmt.Errorf("%w: resource %q: %s: %v", ErrInvalidConfig, r.ID, name, err)
		}
		closeAt, err := types.NewTimeStringFromString(strings.TrimSpace(closeStr))
		if err != nil {
			return domain.Resource{}, fmt.Errorf("%w: resource %q: %s: %v", ErrInvalidConfig, r.ID, name, err)
		}

		resource.WorkingHours[day] = domain.DaySchedule{Open: &open, Close: &closeAt}
	}

	if _, err := resource.Location(); err != nil {
		return domain.Resource{}, fmt.Errorf("%w: resource %q: %v", ErrInvalidConfig, r.ID, err)
	}
	if err := resource.WorkingHours.Validate(); err != nil {
		return domain.Resource{}, fmt.Errorf("%w: resource %q: %v", ErrInvalidConfig, r.ID, err)
	}

	return resource, nil
}

// ToDomain конвертирует услугу в domain.ServiceSpec
func (s SeedService) ToDomain() domain.ServiceSpec {
	return domain.ServiceSpec{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		BufferMinutes:   s.BufferMinutes,
	}
}
