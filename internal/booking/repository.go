package booking

import (
	"gorm.io/gorm"

	"github.com/dvo/event-booking-backend/internal/event"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{DB: tx}
}

func (r *Repository) FindAll(page, size int) ([]Booking, int64, error) {
	var total int64
	if err := r.DB.Model(&Booking{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	err := r.DB.
		Order("id ASC").
		Limit(size).
		Offset(page * size).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *Repository) FindAllByEventID(eventID uint) ([]Booking, error) {
	var bookings []Booking
	err := r.DB.Where("event_id = ?", eventID).Order("id ASC").Find(&bookings).Error
	return bookings, err
}

func (r *Repository) FindByID(id uint) (*Booking, error) {
	var b Booking
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) Create(b *Booking) error {
	return r.DB.Create(b).Error
}

func (r *Repository) Save(b *Booking) error {
	return r.DB.Save(b).Error
}

func (r *Repository) DeleteByID(id uint) error {
	return r.DB.Delete(&Booking{}, id).Error
}

// DeleteByUserID removes every booking owned by the user. A nil tx
// runs against the repository's own handle; the user service passes
// its cascade transaction.
func (r *Repository) DeleteByUserID(tx *gorm.DB, userID uint) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Where("user_id = ?", userID).Delete(&Booking{}).Error
}

// DeleteByEventID removes every booking for the event, under the
// caller's transaction when one is given.
func (r *Repository) DeleteByEventID(tx *gorm.DB, eventID uint) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Where("event_id = ?", eventID).Delete(&Booking{}).Error
}

// CountByEventID counts the bookings for the event, under the
// caller's transaction when one is given.
func (r *Repository) CountByEventID(tx *gorm.DB, eventID uint) (int, error) {
	if tx == nil {
		tx = r.DB
	}
	var count int64
	err := tx.Model(&Booking{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return int(count), err
}

// FindSummariesByEventID fills the booking slices the event responses
// embed.
func (r *Repository) FindSummariesByEventID(eventID uint) ([]event.BookingSummary, error) {
	var summaries []event.BookingSummary
	err := r.DB.Model(&Booking{}).
		Select("id, user_id, created_date").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&summaries).Error
	return summaries, err
}
