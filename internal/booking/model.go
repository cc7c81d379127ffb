package booking

import "time"

// Booking links one user to one event. It lives and dies with both of
// its owners: deleting either cascades here.
type Booking struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	EventID     uint      `gorm:"index;not null" json:"event_id"`
	CreatedDate time.Time `gorm:"not null" json:"created_date"` // set server-side, immutable
}

func (Booking) TableName() string {
	return "bookings"
}

type CreateBookingRequest struct {
	UserID  uint `json:"userId" binding:"required"`
	EventID uint `json:"eventId" binding:"required"`
}

// UpdateBookingRequest re-targets a booking. Only the fields that are
// present are applied.
type UpdateBookingRequest struct {
	UserID  *uint `json:"userId"`
	EventID *uint `json:"eventId"`
}

type Response struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"userId"`
	EventID     uint   `json:"eventId"`
	CreatedDate string `json:"createdDate"`
}

func (b *Booking) ToResponse() Response {
	return Response{
		ID:          b.ID,
		UserID:      b.UserID,
		EventID:     b.EventID,
		CreatedDate: b.CreatedDate.Format("2006-01-02"),
	}
}
