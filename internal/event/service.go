package event

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/dvo/event-booking-backend/internal/apperror"
)

// BookingStore is the slice of booking storage the event service needs
// for capacity checks, response composition and cascading deletes.
type BookingStore interface {
	CountByEventID(tx *gorm.DB, eventID uint) (int, error)
	FindSummariesByEventID(eventID uint) ([]BookingSummary, error)
	DeleteByEventID(tx *gorm.DB, eventID uint) error
}

type Service struct {
	db       *gorm.DB
	repo     *Repository
	bookings BookingStore
}

func NewService(db *gorm.DB, repo *Repository, bookings BookingStore) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		bookings: bookings,
	}
}

func (s *Service) FindAll() ([]Event, error) {
	return s.repo.FindAll()
}

func (s *Service) FindAllByFilter(f *Filter) ([]Event, error) {
	return s.repo.FindAllByFilter(f)
}

func (s *Service) FindByID(id uint) (*Event, error) {
	e, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("event not found with ID: %d", id)
		}
		return nil, err
	}
	return e, nil
}

// CountBookings reports the current booking count for an event, used
// for the derived availableAttendees value.
func (s *Service) CountBookings(eventID uint) (int, error) {
	return s.bookings.CountByEventID(nil, eventID)
}

func (s *Service) BookingsFor(eventID uint) ([]BookingSummary, error) {
	return s.bookings.FindSummariesByEventID(eventID)
}

func (s *Service) Create(e *Event) (*Event, error) {
	log.Printf("creating event %q", e.Name)

	if err := s.repo.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update patches the event. A new max-attendees value is rejected when
// it drops below the current booking count or below 1.
func (s *Service) Update(id uint, req UpdateEventRequest) (*Event, error) {
	log.Printf("updating event %d", id)

	var updated *Event
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		e, err := repo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("event not found with ID: %d", id)
			}
			return err
		}

		if req.MaxAttendees != nil {
			count, err := s.bookings.CountByEventID(tx, id)
			if err != nil {
				return err
			}
			if *req.MaxAttendees < count {
				return apperror.InvalidArgumentf(
					"event with ID: %d, new max attendees value %d is less than existing bookings %d",
					id, *req.MaxAttendees, count)
			}
			if *req.MaxAttendees <= 0 {
				return apperror.InvalidArgumentf("event with ID: %d, new max attendees value must be at least 1", id)
			}
			e.MaxAttendees = *req.MaxAttendees
		}

		if req.Date != nil {
			date, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				return apperror.InvalidArgumentf("invalid date format. Use YYYY-MM-DD")
			}
			e.Date = date
		}
		if req.Name != nil {
			e.Name = *req.Name
		}
		if req.Description != nil {
			e.Description = *req.Description
		}
		if req.City != nil {
			e.City = *req.City
		}
		if req.Address != nil {
			e.Address = *req.Address
		}

		if err := repo.Save(e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the event and every booking referencing it, bookings
// first so no dangling references survive.
func (s *Service) Delete(id uint) error {
	log.Printf("deleting event %d", id)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.bookings.DeleteByEventID(tx, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).DeleteByID(id)
	})
}
