package event

import "time"

type Event struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"not null" json:"description"`
	City         string    `gorm:"size:100;not null" json:"city"`
	Address      string    `gorm:"size:255;not null" json:"address"`
	Date         time.Time `gorm:"not null" json:"date"`
	MaxAttendees int       `gorm:"column:max_attendees;not null" json:"max_attendees"`
}

func (Event) TableName() string {
	return "events"
}

// BookingSummary is the slice of a booking the event responses carry.
// It is filled straight from the bookings table by the booking
// repository.
type BookingSummary struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	CreatedDate time.Time `json:"createdDate"`
}

type CreateEventRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Description  string `json:"description" binding:"required"`
	City         string `json:"city" binding:"required,max=100"`
	Address      string `json:"address" binding:"required,max=255"`
	Date         string `json:"date" binding:"required"`
	MaxAttendees int    `json:"maxAttendees" binding:"required,gte=1"`
}

// UpdateEventRequest patches only the fields that are present.
type UpdateEventRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	Description  *string `json:"description"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	Date         *string `json:"date"`
	MaxAttendees *int    `json:"maxAttendees"`
}

type ShortResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	City               string `json:"city"`
	Address            string `json:"address"`
	Date               string `json:"date"`
	MaxAttendees       int    `json:"maxAttendees"`
	AvailableAttendees int    `json:"availableAttendees"`
}

type DetailResponse struct {
	ShortResponse
	Bookings []BookingSummary `json:"bookings"`
}

// ToShortResponse renders the event with its derived availability.
// availableAttendees is recomputed on every read, never stored.
func (e *Event) ToShortResponse(bookingCount int) ShortResponse {
	return ShortResponse{
		ID:                 e.ID,
		Name:               e.Name,
		Description:        e.Description,
		City:               e.City,
		Address:            e.Address,
		Date:               e.Date.Format("2006-01-02"),
		MaxAttendees:       e.MaxAttendees,
		AvailableAttendees: e.MaxAttendees - bookingCount,
	}
}
