package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingEngine/internal/integrations/catalog"
	"github.com/m04kA/SMC-BookingEngine/internal/service/commitguard"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/types"
)

type guardFunc func(ctx context.Context, req domain.NewBooking) (*domain.Booking, error)

func (f guardFunc) Commit(ctx context.Context, req domain.NewBooking) (*domain.Booking, error) {
	return f(ctx, req)
}

type catalogFunc func(ctx context.Context, serviceID string) (*domain.ServiceSpec, error)

func (f catalogFunc) GetService(ctx context.Context, serviceID string) (*domain.ServiceSpec, error) {
	return f(ctx, serviceID)
}

type conflictCounter struct {
	mu     sync.Mutex
	stages []string
}

func (c *conflictCounter) BookingConflict(stage string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages = append(c.stages, stage)
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func newStore(t *testing.T) *memory.Store {
	t.Helper()

	open := types.MustTimeString("09:00")
	closeAt := types.MustTimeString("18:00")

	resource := domain.Resource{ID: "anna", Name: "Anna", Timezone: "UTC", SlotIntervalMinutes: 30}
	resource.WorkingHours[time.Wednesday] = domain.DaySchedule{Open: &open, Close: &closeAt}

	store := memory.NewStore()
	store.PutResource(resource)
	store.PutService(domain.ServiceSpec{ID: "haircut", DurationMinutes: 60})
	store.PutService(domain.ServiceSpec{ID: "coloring", DurationMinutes: 90, BufferMinutes: 15})
	return store
}

func newUseCase(t *testing.T, store *memory.Store, guard CommitGuard, metrics MetricsRecorder, precheck bool) *UseCase {
	t.Helper()

	uc, err := NewUseCase(store, store, store, store, guard, metrics, logger.NewNop(), Options{
		InitialStatus:    "confirmed",
		ConflictPrecheck: precheck,
	})
	require.NoError(t, err)
	return uc
}

func realGuard(store *memory.Store) *commitguard.Guard {
	return commitguard.NewGuard(store, time.Second, nil, logger.NewNop())
}

func request(serviceID string, start time.Time) *Request {
	return &Request{ResourceID: "anna", ServiceID: serviceID, ClientID: "client-1", SlotStart: start}
}

func TestUseCase_Execute_Success(t *testing.T) {
	store := newStore(t)
	uc := newUseCase(t, store, realGuard(store), nil, true)

	resp, err := uc.Execute(context.Background(), request("coloring", at(9, 0)))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, at(9, 0), resp.Start)
	assert.Equal(t, at(10, 30), resp.End)
	assert.Equal(t, 15, resp.BufferMinutes)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestUseCase_Execute_BoundaryTouchingAccepted(t *testing.T) {
	store := newStore(t)
	uc := newUseCase(t, store, realGuard(store), nil, true)

	_, err := uc.Execute(context.Background(), request("haircut", at(10, 0)))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), request("haircut", at(11, 0)))
	assert.NoError(t, err)
	_, err = uc.Execute(context.Background(), request("haircut", at(9, 0)))
	assert.NoError(t, err)
}

func TestUseCase_Execute_PrecheckConflict(t *testing.T) {
	store := newStore(t)
	counter := &conflictCounter{}

	committed := 0
	guard := guardFunc(func(ctx context.Context, req domain.NewBooking) (*domain.Booking, error) {
		committed++
		return store.InsertBookingIfFree(ctx, req)
	})
	uc := newUseCase(t, store, guard, counter, true)

	_, err := uc.Execute(context.Background(), request("haircut", at(10, 0)))
	require.NoError(t, err)

	// 10:30 пересекает 10:00-11:00
	_, err = uc.Execute(context.Background(), request("haircut", at(10, 30)))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, committed)
	assert.Equal(t, []string{ConflictStagePrecheck}, counter.stages)
}

func TestUseCase_Execute_GuardConflictWithoutPrecheck(t *testing.T) {
	store := newStore(t)
	uc := newUseCase(t, store, realGuard(store), nil, false)

	_, err := uc.Execute(context.Background(), request("haircut", at(10, 0)))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), request("haircut", at(10, 59)))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	store := newStore(t)
	uc := newUseCase(t, store, realGuard(store), nil, true)

	const clients = 10
	errs := make([]error, clients)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Execute(context.Background(), request("haircut", at(10, 0)))
		}(i)
	}
	close(start)
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, wins)
}

func TestUseCase_Execute_OutsideSchedule(t *testing.T) {
	store := newStore(t)
	_, err := store.CreateBlockedRange(context.Background(), domain.BlockedRange{
		ResourceID: "anna",
		Range:      domain.TimeRange{Start: at(13, 0), End: at(14, 0)},
	})
	require.NoError(t, err)

	uc := newUseCase(t, store, realGuard(store), nil, true)

	tests := []struct {
		name      string
		serviceID string
		start     time.Time
	}{
		{"before opening", "haircut", at(8, 30)},
		{"runs past closing", "haircut", at(17, 30)},
		{"buffer runs past closing", "coloring", at(16, 30)},
		{"hits blocked range", "haircut", at(12, 30)},
		{"closed day", "haircut", at(10, 0).AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), request(tt.serviceID, tt.start))
			assert.ErrorIs(t, err, ErrOutsideSchedule)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	store := newStore(t)
	uc := newUseCase(t, store, realGuard(store), nil, true)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"empty client", &Request{ResourceID: "anna", ServiceID: "haircut", SlotStart: at(10, 0)}, ErrInvalidInput},
		{"zero slot", &Request{ResourceID: "anna", ServiceID: "haircut", ClientID: "c"}, ErrInvalidInput},
		{"unknown resource", &Request{ResourceID: "bob", ServiceID: "haircut", ClientID: "c", SlotStart: at(10, 0)}, ErrResourceNotFound},
		{"unknown service", &Request{ResourceID: "anna", ServiceID: "massage", ClientID: "c", SlotStart: at(10, 0)}, ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_StoreUnavailable(t *testing.T) {
	store := newStore(t)
	guard := guardFunc(func(ctx context.Context, req domain.NewBooking) (*domain.Booking, error) {
		return nil, errors.Join(commitguard.ErrStoreUnavailable, context.DeadlineExceeded)
	})
	uc := newUseCase(t, store, guard, nil, false)

	_, err := uc.Execute(context.Background(), request("haircut", at(10, 0)))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestUseCase_Execute_InvalidCatalogService(t *testing.T) {
	store := newStore(t)
	committed := false
	guard := guardFunc(func(ctx context.Context, req domain.NewBooking) (*domain.Booking, error) {
		committed = true
		return nil, nil
	})
	invalid := catalogFunc(func(ctx context.Context, serviceID string) (*domain.ServiceSpec, error) {
		spec := domain.ServiceSpec{ID: serviceID, DurationMinutes: 0}
		return nil, fmt.Errorf("%w: %w", catalog.ErrInvalidResponse, spec.Validate())
	})

	uc, err := NewUseCase(store, store, store, invalid, guard, nil, logger.NewNop(), Options{InitialStatus: "confirmed"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), request("haircut", at(10, 0)))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
	assert.False(t, committed)
}

func TestNewUseCase_InitialStatus(t *testing.T) {
	store := newStore(t)

	_, err := NewUseCase(store, store, store, store, realGuard(store), nil, logger.NewNop(), Options{InitialStatus: "canceled"})
	assert.Error(t, err)

	_, err = NewUseCase(store, store, store, store, realGuard(store), nil, logger.NewNop(), Options{InitialStatus: "unknown"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	uc, err := NewUseCase(store, store, store, store, realGuard(store), nil, logger.NewNop(), Options{InitialStatus: "pending"})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), request("haircut", at(10, 0)))
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}
