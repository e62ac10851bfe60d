package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNoTablesAvailable   = errors.New("no tables available for the requested window")
	ErrCustomerNameEmpty   = errors.New("customer name is required")
	ErrInvalidPartySize    = errors.New("number of places must be positive")
)

// StatusNotifier receives a signal after any reservation mutation so live
// dashboards can refresh. Implementations must not block.
type StatusNotifier interface {
	NotifyStatusChanged()
}

// ReservationService is the admission engine: every reservation create,
// confirm and cancel goes through here, and the check-then-commit sequence
// for a given date runs under that date's lock.
type ReservationService struct {
	DB    *gorm.DB
	Repo  *repository.ReservationRepository
	Users *repository.UserRepository

	notifier  StatusNotifier
	dateLocks sync.Map // "2006-01-02" -> *sync.Mutex
}

func NewReservationService(db *gorm.DB, repo *repository.ReservationRepository, users *repository.UserRepository) *ReservationService {
	return &ReservationService{DB: db, Repo: repo, Users: users}
}

// SetNotifier wires the live-status feed; may stay nil (e.g. in tests).
func (s *ReservationService) SetNotifier(n StatusNotifier) { s.notifier = n }

func (s *ReservationService) notify() {
	if s.notifier != nil {
		s.notifier.NotifyStatusChanged()
	}
}

func (s *ReservationService) lockDate(date time.Time) *sync.Mutex {
	key := entity.DateOnly(date).Format("2006-01-02")
	if v, ok := s.dateLocks.Load(key); ok {
		return v.(*sync.Mutex)
	}
	mu := &sync.Mutex{}
	actual, _ := s.dateLocks.LoadOrStore(key, mu)
	return actual.(*sync.Mutex)
}

// reservedInWindow sums confirmed party sizes inside the ±1h window.
func (s *ReservationService) reservedInWindow(tx *gorm.DB, date time.Time, t entity.Clock) (int, error) {
	from, to := WindowBounds(t)
	rows, err := s.Repo.ConfirmedInWindow(tx, date, from, to)
	if err != nil {
		return 0, err
	}
	return sumPlaces(rows), nil
}

// CheckAvailability is the pure read form of the admission rule. A positive
// answer is advisory only: Create re-validates under the date lock.
func (s *ReservationService) CheckAvailability(date time.Time, t entity.Clock, places int) (bool, error) {
	if places <= 0 {
		return false, ErrInvalidPartySize
	}
	reserved, err := s.reservedInWindow(s.DB, date, t)
	if err != nil {
		return false, err
	}
	return FitsStaticCeiling(reserved, places), nil
}

type CreateReservationReq struct {
	UserID          *uint
	CustomerName    string
	ReservationDate time.Time
	ReservationTime entity.Clock
	NumberOfPlaces  int
}

// Create admits and persists a new reservation. The availability check and
// the insert form one critical section per date, so two concurrent requests
// cannot both see spare capacity and jointly overbook.
func (s *ReservationService) Create(req *CreateReservationReq) (*entity.Reservation, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ErrCustomerNameEmpty
	}
	if req.NumberOfPlaces <= 0 {
		return nil, ErrInvalidPartySize
	}

	mu := s.lockDate(req.ReservationDate)
	mu.Lock()
	defer mu.Unlock()

	res := &entity.Reservation{
		UserID:          req.UserID,
		CustomerName:    name,
		ReservationDate: entity.DateOnly(req.ReservationDate),
		ReservationTime: req.ReservationTime,
		NumberOfPlaces:  req.NumberOfPlaces,
		// auto-confirm so the new reservation counts against capacity
		// immediately
		IsConfirmed: true,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		reserved, err := s.reservedInWindow(tx, req.ReservationDate, req.ReservationTime)
		if err != nil {
			return err
		}
		if !FitsStaticCeiling(reserved, req.NumberOfPlaces) {
			return ErrNoTablesAvailable
		}
		return s.Repo.Create(tx, res)
	})
	if err != nil {
		return nil, err
	}

	s.notify()
	return res, nil
}

// Confirm flips an unconfirmed reservation to confirmed and credits the
// fixed reward to the owning user. The flip is a guarded transition: a
// reservation already confirmed is a no-op and never re-credits.
func (s *ReservationService) Confirm(id uint) error {
	res, err := s.Repo.Get(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	var transitioned bool
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.ConfirmGuard(tx, id)
		if err != nil {
			return err
		}
		transitioned = affected == 1
		if transitioned && res.UserID != nil {
			if _, err := s.Users.AddPoints(tx, *res.UserID, PointsReservationConfirmed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if transitioned {
		s.notify()
	}
	return nil
}

// Cancel removes the reservation record outright. Because the dynamic
// ceiling is derived from the all-time record count, this raises nominal
// capacity for every other date as well; a known quirk of the policy.
func (s *ReservationService) Cancel(id uint) error {
	if _, err := s.Repo.Get(s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}
	if err := s.Repo.DeleteHard(s.DB, id); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *ReservationService) Get(id uint) (*entity.Reservation, error) {
	res, err := s.Repo.Get(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) ListForUser(userID uint) ([]entity.Reservation, error) {
	return s.Repo.ListForUser(userID)
}

func (s *ReservationService) ListByDate(date time.Time) ([]entity.Reservation, error) {
	return s.Repo.ListByDate(date)
}
