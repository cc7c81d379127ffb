package booking

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/dvo/event-booking-backend/internal/apperror"
	"github.com/dvo/event-booking-backend/internal/event"
	"github.com/dvo/event-booking-backend/internal/user"
)

// UserFinder resolves the owning user of a booking.
type UserFinder interface {
	FindByID(id uint) (*user.User, error)
}

// EventFinder resolves the target event of a booking.
type EventFinder interface {
	FindByID(id uint) (*event.Event, error)
}

type Service struct {
	db     *gorm.DB
	repo   *Repository
	users  UserFinder
	events EventFinder
}

func NewService(db *gorm.DB, repo *Repository, users UserFinder, events EventFinder) *Service {
	return &Service{
		db:     db,
		repo:   repo,
		users:  users,
		events: events,
	}
}

func (s *Service) FindAll(page, size int) ([]Booking, int64, error) {
	return s.repo.FindAll(page, size)
}

func (s *Service) FindAllByEventID(eventID uint) ([]Booking, error) {
	return s.repo.FindAllByEventID(eventID)
}

func (s *Service) FindByID(id uint) (*Booking, error) {
	b, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("booking not found with ID: %d", id)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) CountByEventID(eventID uint) (int, error) {
	return s.repo.CountByEventID(nil, eventID)
}

// Create admits a new booking when the event still has room. The
// count-compare-insert sequence runs inside one transaction.
func (s *Service) Create(userID, eventID uint) (*Booking, error) {
	log.Printf("creating booking for user %d on event %d", userID, eventID)

	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	e, err := s.events.FindByID(eventID)
	if err != nil {
		return nil, err
	}

	var created *Booking
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		count, err := repo.CountByEventID(tx, e.ID)
		if err != nil {
			return err
		}
		if !CanAdmit(e.MaxAttendees, count) {
			return apperror.CapacityExceededf("event with ID: %d is full", e.ID)
		}

		b := &Booking{
			UserID:      u.ID,
			EventID:     e.ID,
			CreatedDate: today(),
		}
		if err := repo.Create(b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update re-targets the booking. A user change never needs a capacity
// check; an event change re-applies the policy against the new event's
// count, but moving to the same event is a no-op for capacity — the
// booking is already counted there.
func (s *Service) Update(id uint, req UpdateBookingRequest) (*Booking, error) {
	log.Printf("updating booking %d", id)

	var updated *Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		b, err := repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("booking not found with ID: %d", id)
			}
			return err
		}

		if req.UserID != nil {
			u, err := s.users.FindByID(*req.UserID)
			if err != nil {
				return err
			}
			b.UserID = u.ID
		}

		if req.EventID != nil {
			e, err := s.events.FindByID(*req.EventID)
			if err != nil {
				return err
			}
			if e.ID != b.EventID {
				count, err := repo.CountByEventID(tx, e.ID)
				if err != nil {
					return err
				}
				if !CanAdmit(e.MaxAttendees, count) {
					return apperror.CapacityExceededf("event with ID: %d is full", e.ID)
				}
			}
			b.EventID = e.ID
		}

		if err := repo.Save(b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete is unconditional and idempotent: removing a missing booking
// is a no-op.
func (s *Service) Delete(id uint) error {
	log.Printf("deleting booking %d", id)

	return s.repo.DeleteByID(id)
}

func (s *Service) DeleteByUserID(userID uint) error {
	log.Printf("deleting bookings for user %d", userID)

	return s.repo.DeleteByUserID(nil, userID)
}

func (s *Service) DeleteByEventID(eventID uint) error {
	log.Printf("deleting bookings for event %d", eventID)

	return s.repo.DeleteByEventID(nil, eventID)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
