package services

import (
	"testing"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicMaxCapacity(t *testing.T) {
	assert.Equal(t, 20, DynamicMaxCapacity(0))
	assert.Equal(t, 15, DynamicMaxCapacity(5))
	assert.Equal(t, 0, DynamicMaxCapacity(20))
	assert.Equal(t, 0, DynamicMaxCapacity(25), "floored at zero, never negative")
}

func TestWindowBounds(t *testing.T) {
	from, to := WindowBounds(entity.Clock(18 * 60))
	assert.Equal(t, "17:00", from.String())
	assert.Equal(t, "19:00", to.String())

	// clamped at the edges of the day
	from, to = WindowBounds(entity.Clock(30))
	assert.Equal(t, "00:00", from.String())
	assert.Equal(t, "01:30", to.String())

	from, to = WindowBounds(entity.Clock(23*60 + 30))
	assert.Equal(t, "22:30", from.String())
	assert.Equal(t, "23:59", to.String())
}

func TestFitsStaticCeiling(t *testing.T) {
	assert.True(t, FitsStaticCeiling(0, 20))
	assert.True(t, FitsStaticCeiling(19, 1))
	assert.False(t, FitsStaticCeiling(19, 2))
	assert.False(t, FitsStaticCeiling(20, 1))
}

func TestTableAvailabilityUsesDynamicCeiling(t *testing.T) {
	db := setupTestDB(t)
	svc := newReservationService(t, db)

	_, err := svc.Create(&CreateReservationReq{
		CustomerName:    "Party",
		ReservationDate: testDate,
		ReservationTime: mustClock(t, "18:00"),
		NumberOfPlaces:  6,
	})
	require.NoError(t, err)

	// one record stored, so the projected ceiling is 19
	avail, err := svc.TableAvailability(testDate, mustClock(t, "18:30"))
	require.NoError(t, err)
	assert.Equal(t, 19, avail.TotalCapacity)
	assert.Equal(t, 6, avail.ReservedCapacity)
	assert.Equal(t, 13, avail.AvailableCapacity)
	assert.True(t, avail.IsAvailable)
	assert.Len(t, avail.ActiveReservations, 1)
}

func TestLiveTableStatusSlotsAndOccupancy(t *testing.T) {
	db := setupTestDB(t)
	svc := newReservationService(t, db)

	_, err := svc.Create(&CreateReservationReq{
		CustomerName:    "Early",
		ReservationDate: testDate,
		ReservationTime: mustClock(t, "18:00"),
		NumberOfPlaces:  4,
	})
	require.NoError(t, err)
	_, err = svc.Create(&CreateReservationReq{
		CustomerName:    "Late",
		ReservationDate: testDate,
		ReservationTime: mustClock(t, "21:00"),
		NumberOfPlaces:  2,
	})
	require.NoError(t, err)

	status, err := svc.LiveTableStatus(&testDate)
	require.NoError(t, err)

	// 17:30 through 21:30, half-hour steps
	require.Len(t, status.TimeSlots, 9)
	assert.Equal(t, "17:30", status.TimeSlots[0].Time.String())
	assert.Equal(t, "21:30", status.TimeSlots[8].Time.String())

	// two records stored: ceiling 18; whole-day reserved 6
	assert.Equal(t, 18, status.TotalCapacity)
	assert.Equal(t, 6, status.CurrentOccupancy)
	assert.Equal(t, 12, status.AvailableCapacity)
	assert.InDelta(t, 33.33, status.OccupancyPercentage, 0.001)

	// 18:00 slot sees only the 18:00 party; 21:00 only the late one
	slot1800 := status.TimeSlots[1]
	assert.Equal(t, "18:00", slot1800.Time.String())
	assert.Equal(t, 4, slot1800.ReservedCapacity)
	assert.Equal(t, 1, slot1800.NumberOfReservations)

	slot2100 := status.TimeSlots[7]
	assert.Equal(t, "21:00", slot2100.Time.String())
	assert.Equal(t, 2, slot2100.ReservedCapacity)

	// summaries sorted by time
	require.Len(t, status.TodaysReservations, 2)
	assert.Equal(t, "Early", status.TodaysReservations[0].CustomerName)
	assert.Equal(t, "Late", status.TodaysReservations[1].CustomerName)
}

func TestLiveTableStatusZeroCapacity(t *testing.T) {
	db := setupTestDB(t)
	svc := newReservationService(t, db)

	// 20 one-place records on another date exhaust the dynamic ceiling
	other := testDate.AddDate(0, 0, 7)
	for i := 0; i < 20; i++ {
		res := &entity.Reservation{
			CustomerName:    "Filler",
			ReservationDate: entity.DateOnly(other),
			ReservationTime: mustClock(t, "18:00"),
			NumberOfPlaces:  1,
			IsConfirmed:     true,
		}
		require.NoError(t, db.Create(res).Error)
	}

	status, err := svc.LiveTableStatus(&testDate)
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalCapacity)
	assert.Equal(t, 0, status.AvailableCapacity)
	assert.Equal(t, 0.0, status.OccupancyPercentage, "zero capacity reads as zero percent, not a division error")
	for _, slot := range status.TimeSlots {
		assert.False(t, slot.IsAvailable)
	}
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	svc := newReservationService(t, db)

	confirmed := &entity.Reservation{
		CustomerName:    "Confirmed",
		ReservationDate: entity.DateOnly(testDate),
		ReservationTime: mustClock(t, "18:00"),
		NumberOfPlaces:  4,
		IsConfirmed:     true,
	}
	pending := &entity.Reservation{
		CustomerName:    "Pending",
		ReservationDate: entity.DateOnly(testDate),
		ReservationTime: mustClock(t, "19:00"),
		NumberOfPlaces:  3,
	}
	require.NoError(t, db.Create(confirmed).Error)
	require.NoError(t, db.Create(pending).Error)

	status, stats, err := svc.DashboardFor(testDate)
	require.NoError(t, err)
	require.NotNil(t, status)

	assert.Equal(t, 2, stats.TotalReservationsToday)
	assert.Equal(t, 1, stats.ConfirmedReservationsToday)
	assert.Equal(t, 1, stats.PendingReservationsToday)
	assert.Equal(t, 4, stats.TotalGuestsToday, "only confirmed parties count as guests")
	assert.InDelta(t, 3.5, stats.AveragePartySize, 0.001)
}
