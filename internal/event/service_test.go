package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dvo/event-booking-backend/internal/apperror"
	"github.com/dvo/event-booking-backend/internal/booking"
	"github.com/dvo/event-booking-backend/internal/event"
)

func setupEventService(t *testing.T) (*event.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&event.Event{}, &booking.Booking{}))

	return event.NewService(db, event.NewRepository(db), booking.NewRepository(db)), db
}

func seedEvent(t *testing.T, db *gorm.DB, name, city string, maxAttendees int) *event.Event {
	t.Helper()

	e := &event.Event{
		Name:         name,
		Description:  "description of " + name,
		City:         city,
		Address:      "Main Street 1",
		Date:         time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		MaxAttendees: maxAttendees,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func seedBookings(t *testing.T, db *gorm.DB, eventID uint, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		b := &booking.Booking{
			UserID:      uint(i + 1),
			EventID:     eventID,
			CreatedDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(b).Error)
	}
}

func TestFindEventByID(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)

	e, err := svc.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", e.Name)

	_, err = svc.FindByID(seeded.ID + 1)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateEventPartialPatch(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)

	city := "Munich"
	updated, err := svc.Update(seeded.ID, event.UpdateEventRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Munich", updated.City)
	assert.Equal(t, "GopherCon", updated.Name)
	assert.Equal(t, 100, updated.MaxAttendees)
}

func TestUpdateEventMaxAttendeesBelowBookings(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)
	seedBookings(t, db, seeded.ID, 3)

	newMax := 2
	_, err := svc.Update(seeded.ID, event.UpdateEventRequest{MaxAttendees: &newMax})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	kept, err := svc.FindByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, kept.MaxAttendees)
}

func TestUpdateEventMaxAttendeesNonPositive(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)

	newMax := 0
	_, err := svc.Update(seeded.ID, event.UpdateEventRequest{MaxAttendees: &newMax})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))
}

func TestUpdateEventMaxAttendeesShrinkToExactCount(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)
	seedBookings(t, db, seeded.ID, 3)

	// shrinking to exactly the booking count is allowed
	newMax := 3
	updated, err := svc.Update(seeded.ID, event.UpdateEventRequest{MaxAttendees: &newMax})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.MaxAttendees)
}

func TestUpdateEventBadDate(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)

	badDate := "20-11-2026"
	_, err := svc.Update(seeded.ID, event.UpdateEventRequest{Date: &badDate})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))
}

func TestDeleteEventCascadesBookings(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)
	other := seedEvent(t, db, "RustConf", "Paris", 50)
	seedBookings(t, db, seeded.ID, 3)
	seedBookings(t, db, other.ID, 2)

	require.NoError(t, svc.Delete(seeded.ID))

	_, err := svc.FindByID(seeded.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	count, err := svc.CountBookings(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// the other event's bookings survive
	count, err = svc.CountBookings(other.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBookingsForEvent(t *testing.T) {
	svc, db := setupEventService(t)
	seeded := seedEvent(t, db, "GopherCon", "Berlin", 100)
	seedBookings(t, db, seeded.ID, 2)

	summaries, err := svc.BookingsFor(seeded.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, uint(1), summaries[0].UserID)
	assert.False(t, summaries[0].CreatedDate.IsZero())
}

func TestFindAllEvents(t *testing.T) {
	svc, db := setupEventService(t)
	seedEvent(t, db, "GopherCon", "Berlin", 100)
	seedEvent(t, db, "RustConf", "Paris", 50)

	events, err := svc.FindAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "GopherCon", events[0].Name)
	assert.Equal(t, "RustConf", events[1].Name)
}
