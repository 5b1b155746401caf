package commitguard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/infra/storage/memory"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
)

type storeFunc func(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error)

func (f storeFunc) InsertBookingIfFree(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error) {
	return f(ctx, booking)
}

type countingMetrics struct {
	mu        sync.Mutex
	committed map[string]int
	conflicts map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{committed: map[string]int{}, conflicts: map[string]int{}}
}

func (m *countingMetrics) BookingCommitted(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed[status]++
}

func (m *countingMetrics) BookingConflict(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts[stage]++
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func request(start, end time.Time) domain.NewBooking {
	return domain.NewBooking{
		ResourceID: "res-1",
		ServiceID:  "haircut",
		ClientID:   "client-1",
		Range:      domain.TimeRange{Start: start, End: end},
		Status:     domain.StatusConfirmed,
	}
}

func TestGuard_Commit(t *testing.T) {
	m := newCountingMetrics()
	guard := NewGuard(memory.NewStore(), time.Second, m, logger.NewNop())

	booking, err := guard.Commit(context.Background(), request(at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, "res-1", booking.ResourceID)
	assert.Equal(t, at(10, 0), booking.Range.Start)
	assert.Equal(t, 1, m.committed["confirmed"])

	_, err = guard.Commit(context.Background(), request(at(10, 30), at(11, 30)))
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, m.conflicts[ConflictStageCommit])
}

// Два клиента одновременно бронируют 10:00-11:00: ровно один успешен
func TestGuard_ConcurrentCommitsExactlyOneWins(t *testing.T) {
	guard := NewGuard(memory.NewStore(), time.Second, nil, logger.NewNop())

	const clients = 16
	results := make([]error, clients)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = guard.Commit(context.Background(), request(at(10, 0), at(11, 0)))
		}(i)
	}
	close(start)
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, clients-1, conflicts)
}

func TestGuard_DisjointRangesDoNotConflict(t *testing.T) {
	guard := NewGuard(memory.NewStore(), time.Second, nil, logger.NewNop())

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = guard.Commit(context.Background(), request(at(9+i, 0), at(10+i, 0)))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestGuard_InvalidInput(t *testing.T) {
	called := false
	store := storeFunc(func(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error) {
		called = true
		return nil, nil
	})
	guard := NewGuard(store, time.Second, nil, logger.NewNop())

	tests := []struct {
		name   string
		modify func(*domain.NewBooking)
	}{
		{"start equals end", func(b *domain.NewBooking) { b.Range.End = b.Range.Start }},
		{"start after end", func(b *domain.NewBooking) { b.Range.Start, b.Range.End = b.Range.End, b.Range.Start }},
		{"empty resource", func(b *domain.NewBooking) { b.ResourceID = "" }},
		{"empty client", func(b *domain.NewBooking) { b.ClientID = " " }},
		{"canceled status", func(b *domain.NewBooking) { b.Status = domain.StatusCanceled }},
		{"negative buffer", func(b *domain.NewBooking) { b.BufferMinutes = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(at(10, 0), at(11, 0))
			tt.modify(&req)

			_, err := guard.Commit(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.False(t, called)
}

func TestGuard_StoreTimeout(t *testing.T) {
	store := storeFunc(func(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	guard := NewGuard(store, 20*time.Millisecond, nil, logger.NewNop())

	_, err := guard.Commit(context.Background(), request(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestGuard_StoreFailure(t *testing.T) {
	store := storeFunc(func(ctx context.Context, booking domain.NewBooking) (*domain.Booking, error) {
		return nil, errors.New("connection refused")
	})
	guard := NewGuard(store, time.Second, nil, logger.NewNop())

	_, err := guard.Commit(context.Background(), request(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
