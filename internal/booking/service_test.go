package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dvo/event-booking-backend/internal/apperror"
	"github.com/dvo/event-booking-backend/internal/event"
	"github.com/dvo/event-booking-backend/internal/user"
)

type mockUserFinder struct {
	mock.Mock
}

func (m *mockUserFinder) FindByID(id uint) (*user.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEventFinder struct {
	mock.Mock
}

func (m *mockEventFinder) FindByID(id uint) (*event.Event, error) {
	args := m.Called(id)
	if e := args.Get(0); e != nil {
		return e.(*event.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupBookingService(t *testing.T) (*Service, *Repository, *mockUserFinder, *mockEventFinder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Booking{}))

	users := &mockUserFinder{}
	events := &mockEventFinder{}
	repo := NewRepository(db)
	return NewService(db, repo, users, events), repo, users, events
}

func someUser(id uint) *user.User {
	return &user.User{ID: id, Username: "attendee", Email: "attendee@example.com", Role: user.RoleUser}
}

func someEvent(id uint, maxAttendees int) *event.Event {
	return &event.Event{
		ID:           id,
		Name:         "GopherCon",
		Description:  "talks",
		City:         "Berlin",
		Address:      "Alexanderplatz 1",
		Date:         time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		MaxAttendees: maxAttendees,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, repo, users, events := setupBookingService(t)

	users.On("FindByID", uint(1)).Return(someUser(1), nil)
	events.On("FindByID", uint(7)).Return(someEvent(7, 2), nil)

	b, err := svc.Create(1, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(1), b.UserID)
	assert.Equal(t, uint(7), b.EventID)
	assert.False(t, b.CreatedDate.IsZero())

	count, err := repo.CountByEventID(nil, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	users.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCreateBookingEventFull(t *testing.T) {
	svc, repo, users, events := setupBookingService(t)

	users.On("FindByID", mock.Anything).Return(someUser(1), nil)
	events.On("FindByID", uint(7)).Return(someEvent(7, 2), nil)

	_, err := svc.Create(1, 7)
	require.NoError(t, err)
	_, err = svc.Create(1, 7)
	require.NoError(t, err)

	_, err = svc.Create(1, 7)
	require.Error(t, err)
	assert.Equal(t, apperror.KindCapacityExceeded, apperror.KindOf(err))

	// the rejected attempt must not leave a row behind
	count, err := repo.CountByEventID(nil, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCreateBookingUnknownUser(t *testing.T) {
	svc, _, users, _ := setupBookingService(t)

	users.On("FindByID", uint(99)).Return(nil, apperror.NotFoundf("user not found with ID: 99"))

	_, err := svc.Create(99, 7)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateBookingUserChangeSkipsCapacityCheck(t *testing.T) {
	svc, _, users, events := setupBookingService(t)

	users.On("FindByID", uint(1)).Return(someUser(1), nil)
	// capacity 1: the event is full once the booking exists
	events.On("FindByID", uint(7)).Return(someEvent(7, 1), nil)

	b, err := svc.Create(1, 7)
	require.NoError(t, err)

	users.On("FindByID", uint(2)).Return(someUser(2), nil)

	newUser := uint(2)
	updated, err := svc.Update(b.ID, UpdateBookingRequest{UserID: &newUser})
	require.NoError(t, err)
	assert.Equal(t, uint(2), updated.UserID)
	assert.Equal(t, uint(7), updated.EventID)
}

func TestUpdateBookingSameEventSkipsCapacityCheck(t *testing.T) {
	svc, _, users, events := setupBookingService(t)

	users.On("FindByID", uint(1)).Return(someUser(1), nil)
	events.On("FindByID", uint(7)).Return(someEvent(7, 1), nil)

	b, err := svc.Create(1, 7)
	require.NoError(t, err)

	// re-targeting a full event the booking already sits on is a no-op
	sameEvent := uint(7)
	updated, err := svc.Update(b.ID, UpdateBookingRequest{EventID: &sameEvent})
	require.NoError(t, err)
	assert.Equal(t, uint(7), updated.EventID)
}

func TestUpdateBookingToFullEventRejected(t *testing.T) {
	svc, _, users, events := setupBookingService(t)

	users.On("FindByID", uint(1)).Return(someUser(1), nil)
	events.On("FindByID", uint(7)).Return(someEvent(7, 2), nil)
	events.On("FindByID", uint(8)).Return(someEvent(8, 1), nil)

	b, err := svc.Create(1, 7)
	require.NoError(t, err)
	_, err = svc.Create(1, 8)
	require.NoError(t, err)

	fullEvent := uint(8)
	_, err = svc.Update(b.ID, UpdateBookingRequest{EventID: &fullEvent})
	require.Error(t, err)
	assert.Equal(t, apperror.KindCapacityExceeded, apperror.KindOf(err))

	// the booking keeps its original event
	kept, err := svc.FindByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), kept.EventID)
}

func TestUpdateBookingToEventWithRoom(t *testing.T) {
	svc, repo, users, events := setupBookingService(t)

	users.On("FindByID", uint(1)).Return(someUser(1), nil)
	events.On("FindByID", uint(7)).Return(someEvent(7, 2), nil)
	events.On("FindByID", uint(8)).Return(someEvent(8, 5), nil)

	b, err := svc.Create(1, 7)
	require.NoError(t, err)

	target := uint(8)
	updated, err := svc.Update(b.ID, UpdateBookingRequest{EventID: &target})
	require.NoError(t, err)
	assert.Equal(t, uint(8), updated.EventID)

	count, err := repo.CountByEventID(nil, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateBookingNotFound(t *testing.T) {
	svc, _, _, _ := setupBookingService(t)

	_, err := svc.Update(42, UpdateBookingRequest{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteBookingIdempotent(t *testing.T) {
	svc, _, users, events := setupBookingService(t)

	users.On("FindByID", uint(1)).Return(someUser(1), nil)
	events.On("FindByID", uint(7)).Return(someEvent(7, 2), nil)

	b, err := svc.Create(1, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(b.ID))
	require.NoError(t, svc.Delete(b.ID))

	_, err = svc.FindByID(b.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestFindAllBookingsPaged(t *testing.T) {
	svc, _, users, events := setupBookingService(t)

	users.On("FindByID", uint(1)).Return(someUser(1), nil)
	events.On("FindByID", uint(7)).Return(someEvent(7, 10), nil)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(1, 7)
		require.NoError(t, err)
	}

	page, total, err := svc.FindAll(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, uint(3), page[0].ID)
}
