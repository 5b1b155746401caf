package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 15, hour, minute, 0, 0, time.UTC)
}

func rng(h1, m1, h2, m2 int) domain.TimeRange {
	return domain.TimeRange{Start: at(h1, m1), End: at(h2, m2)}
}

func newBooking(resourceID string, r domain.TimeRange) domain.NewBooking {
	return domain.NewBooking{
		ResourceID: resourceID,
		ServiceID:  "haircut",
		ClientID:   "client-1",
		Range:      r,
		Status:     domain.StatusConfirmed,
	}
}

func TestStore_InsertBookingIfFree(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 30, 11, 30)))
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	// касание границ не конфликт
	_, err = store.InsertBookingIfFree(ctx, newBooking("res-1", rng(11, 0, 12, 0)))
	assert.NoError(t, err)

	// другой ресурс
	_, err = store.InsertBookingIfFree(ctx, newBooking("res-2", rng(10, 0, 11, 0)))
	assert.NoError(t, err)
}

func TestStore_InsertBookingIfFree_Buffer(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	withBuffer := newBooking("res-1", rng(10, 0, 11, 0))
	withBuffer.BufferMinutes = 15
	_, err := store.InsertBookingIfFree(ctx, withBuffer)
	require.NoError(t, err)

	_, err = store.InsertBookingIfFree(ctx, newBooking("res-1", rng(11, 0, 11, 30)))
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	_, err = store.InsertBookingIfFree(ctx, newBooking("res-1", rng(11, 15, 11, 45)))
	assert.NoError(t, err)
}

func TestStore_CanceledBookingFreesTime(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
	require.NoError(t, err)

	reason := "client called"
	canceled, err := store.UpdateBookingStatus(ctx, created.ID, domain.StatusConfirmed, domain.StatusCanceled, &reason)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, canceled.Status)
	require.NotNil(t, canceled.CanceledAt)
	assert.Equal(t, &reason, canceled.CancellationReason)

	_, err = store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
	assert.NoError(t, err)
}

func TestStore_UpdateBookingStatus_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.UpdateBookingStatus(ctx, "missing", domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	created, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
	require.NoError(t, err)

	_, err = store.UpdateBookingStatus(ctx, created.ID, domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestStore_ConcurrentInsertsSameRange(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, domain.ErrSlotTaken) {
				taken++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, taken)

	bookings, err := store.ListBookings(ctx, domain.ResourceBookingsFilter{ResourceID: "res-1", From: at(0, 0), To: at(23, 0)})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestStore_OverlapCheckRunsUnderReadLock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
	require.NoError(t, err)

	// параллельное чтение держит RLock: отказ по пересечению не должен ждать записи
	store.mu.RLock()
	defer store.mu.RUnlock()

	done := make(chan error, 1)
	go func() {
		_, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 30, 11, 30)))
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrSlotTaken)
	case <-time.After(time.Second):
		t.Fatal("overlap check waited for the write lock")
	}
}

func TestStore_ConcurrentInsertsDifferentResources(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	const resources = 16
	var wg sync.WaitGroup
	errs := make(chan error, resources*2)

	start := make(chan struct{})
	for i := 0; i < resources; i++ {
		resourceID := fmt.Sprintf("res-%d", i)
		for _, r := range []domain.TimeRange{rng(10, 0, 11, 0), rng(11, 0, 12, 0)} {
			wg.Add(1)
			go func(r domain.TimeRange) {
				defer wg.Done()
				<-start
				_, err := store.InsertBookingIfFree(ctx, newBooking(resourceID, r))
				errs <- err
			}(r)
		}
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	for i := 0; i < resources; i++ {
		bookings, err := store.ListBookings(ctx, domain.ResourceBookingsFilter{ResourceID: fmt.Sprintf("res-%d", i), From: at(0, 0), To: at(23, 0)})
		require.NoError(t, err)
		assert.Len(t, bookings, 2)
	}
}

func TestStore_ListBookings(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	late, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(15, 0, 16, 0)))
	require.NoError(t, err)
	early, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(9, 0, 10, 0)))
	require.NoError(t, err)
	_, err = store.UpdateBookingStatus(ctx, late.ID, domain.StatusConfirmed, domain.StatusCanceled, nil)
	require.NoError(t, err)

	active, err := store.ListBookings(ctx, domain.ResourceBookingsFilter{ResourceID: "res-1", From: at(0, 0), To: at(23, 0)})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, early.ID, active[0].ID)

	all, err := store.ListBookings(ctx, domain.ResourceBookingsFilter{
		ResourceID: "res-1", From: at(0, 0), To: at(23, 0), IncludeCanceled: true,
	})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, late.ID, all[1].ID)

	outside, err := store.ListBookings(ctx, domain.ResourceBookingsFilter{ResourceID: "res-1", From: at(10, 0), To: at(12, 0)})
	require.NoError(t, err)
	assert.Empty(t, outside)
}

func TestStore_ListClientBookings(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
	require.NoError(t, err)
	second, err := store.InsertBookingIfFree(ctx, newBooking("res-2", rng(12, 0, 13, 0)))
	require.NoError(t, err)

	other := newBooking("res-1", rng(14, 0, 15, 0))
	other.ClientID = "client-2"
	_, err = store.InsertBookingIfFree(ctx, other)
	require.NoError(t, err)

	_, err = store.UpdateBookingStatus(ctx, first.ID, domain.StatusConfirmed, domain.StatusCanceled, nil)
	require.NoError(t, err)

	bookings, err := store.ListClientBookings(ctx, domain.ClientBookingsFilter{ClientID: "client-1"})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Equal(t, first.ID, bookings[1].ID)

	canceled := domain.StatusCanceled
	bookings, err = store.ListClientBookings(ctx, domain.ClientBookingsFilter{ClientID: "client-1", Status: &canceled})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, first.ID, bookings[0].ID)
}

func TestStore_ResourcesAndBlocks(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.GetResource(ctx, "res-1")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = store.CreateBlockedRange(ctx, domain.BlockedRange{ResourceID: "res-1", Range: rng(12, 0, 13, 0)})
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	store.PutResource(domain.Resource{ID: "res-1", Name: "Anna", Timezone: "UTC", SlotIntervalMinutes: 30})

	updated, err := store.UpdateSchedule(ctx, &domain.Resource{ID: "res-1", Timezone: "Europe/Moscow", SlotIntervalMinutes: 15})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "Europe/Moscow", updated.Timezone)
	assert.Equal(t, 15, updated.SlotIntervalMinutes)

	block, err := store.CreateBlockedRange(ctx, domain.BlockedRange{ResourceID: "res-1", Range: rng(12, 0, 13, 0), Reason: "lunch"})
	require.NoError(t, err)
	assert.NotEmpty(t, block.ID)

	blocks, err := store.ListBlockedRanges(ctx, "res-1", at(0, 0), at(23, 0))
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	assert.ErrorIs(t, store.DeleteBlockedRange(ctx, "res-2", block.ID), domain.ErrBlockedRangeNotFound)
	require.NoError(t, store.DeleteBlockedRange(ctx, "res-1", block.ID))

	blocks, err = store.ListBlockedRanges(ctx, "res-1", at(0, 0), at(23, 0))
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().InsertBookingIfFree(ctx, newBooking("res-1", rng(10, 0, 11, 0)))
	assert.ErrorIs(t, err, context.Canceled)
}
