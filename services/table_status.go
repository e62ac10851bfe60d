package services

import (
	"math"
	"sort"
	"time"

	"backend/entity"
)

// Time-slot projector: read-only derivations over the reservation set used
// by the availability endpoints and the live dashboard. Recomputed from
// current storage on every call; no caching, no linearizability with
// concurrent writes.

const (
	slotFirst = entity.Clock(17*60 + 30) // 17:30
	slotLast  = entity.Clock(21*60 + 30) // 21:30
	slotStep  = 30
)

type ReservationSummary struct {
	ID              uint         `json:"id"`
	CustomerName    string       `json:"customerName"`
	ReservationTime entity.Clock `json:"reservationTime"`
	NumberOfPlaces  int          `json:"numberOfPlaces"`
	IsConfirmed     bool         `json:"isConfirmed"`
}

type TimeSlotAvailability struct {
	Time                 entity.Clock `json:"time"`
	AvailableCapacity    int          `json:"availableCapacity"`
	ReservedCapacity     int          `json:"reservedCapacity"`
	IsAvailable          bool         `json:"isAvailable"`
	NumberOfReservations int          `json:"numberOfReservations"`
}

type TableAvailability struct {
	Date               time.Time            `json:"date"`
	Time               entity.Clock         `json:"time"`
	TotalCapacity      int                  `json:"totalCapacity"`
	AvailableCapacity  int                  `json:"availableCapacity"`
	ReservedCapacity   int                  `json:"reservedCapacity"`
	IsAvailable        bool                 `json:"isAvailable"`
	ActiveReservations []ReservationSummary `json:"activeReservations"`
}

type LiveTableStatus struct {
	CurrentDateTime     time.Time              `json:"currentDateTime"`
	Date                time.Time              `json:"date"`
	TotalTables         int                    `json:"totalTables"`
	TotalCapacity       int                    `json:"totalCapacity"`
	CurrentOccupancy    int                    `json:"currentOccupancy"`
	AvailableCapacity   int                    `json:"availableCapacity"`
	OccupancyPercentage float64                `json:"occupancyPercentage"`
	TimeSlots           []TimeSlotAvailability `json:"timeSlots"`
	TodaysReservations  []ReservationSummary   `json:"todaysReservations"`
}

func summaryOf(r entity.Reservation) ReservationSummary {
	name := r.CustomerName
	if name == "" {
		name = "Guest"
	}
	return ReservationSummary{
		ID:              r.ID,
		CustomerName:    name,
		ReservationTime: r.ReservationTime,
		NumberOfPlaces:  r.NumberOfPlaces,
		IsConfirmed:     r.IsConfirmed,
	}
}

// TableAvailability projects windowed availability for a specific date and
// time against the dynamic ceiling.
func (s *ReservationService) TableAvailability(date time.Time, t entity.Clock) (*TableAvailability, error) {
	recordCount, err := s.Repo.CountAll(s.DB)
	if err != nil {
		return nil, err
	}
	dynamicMax := DynamicMaxCapacity(recordCount)

	from, to := WindowBounds(t)
	active, err := s.Repo.ConfirmedInWindow(s.DB, date, from, to)
	if err != nil {
		return nil, err
	}

	reserved := sumPlaces(active)
	available := dynamicMax - reserved

	summaries := make([]ReservationSummary, 0, len(active))
	for _, r := range active {
		summaries = append(summaries, summaryOf(r))
	}

	return &TableAvailability{
		Date:               entity.DateOnly(date),
		Time:               t,
		TotalCapacity:      dynamicMax,
		AvailableCapacity:  maxInt(0, available),
		ReservedCapacity:   reserved,
		IsAvailable:        available > 0,
		ActiveReservations: summaries,
	}, nil
}

// LiveTableStatus projects the day's dashboard: half-hour slots from 17:30
// to 21:30, day-level totals and the confirmed reservation list.
func (s *ReservationService) LiveTableStatus(date *time.Time) (*LiveTableStatus, error) {
	target := time.Now()
	if date != nil {
		target = *date
	}
	target = entity.DateOnly(target)

	recordCount, err := s.Repo.CountAll(s.DB)
	if err != nil {
		return nil, err
	}
	dynamicMax := DynamicMaxCapacity(recordCount)

	all, err := s.Repo.ListByDate(target)
	if err != nil {
		return nil, err
	}
	confirmed := make([]entity.Reservation, 0, len(all))
	for _, r := range all {
		if r.IsConfirmed {
			confirmed = append(confirmed, r)
		}
	}

	// whole-day reserved sum, deliberately not windowed
	totalReserved := sumPlaces(confirmed)
	dayAvailable := maxInt(0, dynamicMax-totalReserved)

	occupancy := 0.0
	if dynamicMax > 0 {
		occupancy = math.Round(float64(totalReserved)/float64(dynamicMax)*100*100) / 100
	}

	var slots []TimeSlotAvailability
	for t := slotFirst; t <= slotLast; t += slotStep {
		from, to := WindowBounds(t)
		slotReserved := 0
		slotCount := 0
		for _, r := range confirmed {
			if r.ReservationTime >= from && r.ReservationTime <= to {
				slotReserved += r.NumberOfPlaces
				slotCount++
			}
		}
		slotAvailable := dynamicMax - slotReserved
		slots = append(slots, TimeSlotAvailability{
			Time:                 t,
			AvailableCapacity:    maxInt(0, slotAvailable),
			ReservedCapacity:     slotReserved,
			IsAvailable:          slotAvailable > 0,
			NumberOfReservations: slotCount,
		})
	}

	summaries := make([]ReservationSummary, 0, len(confirmed))
	for _, r := range confirmed {
		summaries = append(summaries, summaryOf(r))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ReservationTime < summaries[j].ReservationTime
	})

	return &LiveTableStatus{
		CurrentDateTime:     time.Now(),
		Date:                target,
		TotalTables:         dynamicMax, // 1 table = 1 place in this model
		TotalCapacity:       dynamicMax,
		CurrentOccupancy:    totalReserved,
		AvailableCapacity:   dayAvailable,
		OccupancyPercentage: occupancy,
		TimeSlots:           slots,
		TodaysReservations:  summaries,
	}, nil
}

type DashboardStats struct {
	TotalReservationsToday     int     `json:"totalReservationsToday"`
	ConfirmedReservationsToday int     `json:"confirmedReservationsToday"`
	PendingReservationsToday   int     `json:"pendingReservationsToday"`
	TotalGuestsToday           int     `json:"totalGuestsToday"`
	AveragePartySize           float64 `json:"averagePartySize"`
}

// DashboardFor bundles the live status with day statistics for the admin
// dashboard.
func (s *ReservationService) DashboardFor(date time.Time) (*LiveTableStatus, *DashboardStats, error) {
	target := entity.DateOnly(date)
	status, err := s.LiveTableStatus(&target)
	if err != nil {
		return nil, nil, err
	}

	all, err := s.Repo.ListByDate(target)
	if err != nil {
		return nil, nil, err
	}

	stats := &DashboardStats{TotalReservationsToday: len(all)}
	placesAll := 0
	for _, r := range all {
		placesAll += r.NumberOfPlaces
		if r.IsConfirmed {
			stats.ConfirmedReservationsToday++
			stats.TotalGuestsToday += r.NumberOfPlaces
		} else {
			stats.PendingReservationsToday++
		}
	}
	if len(all) > 0 {
		stats.AveragePartySize = math.Round(float64(placesAll)/float64(len(all))*10) / 10
	}
	return status, stats, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
