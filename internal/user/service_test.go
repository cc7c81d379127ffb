package user_test

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
	"github.com/dvo/event-booking-backend/internal/user"
)

// plainHasher makes hashed values recognizable without bcrypt cost.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func setupUserService(t *testing.T) (*user.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &booking.Booking{}))

	return user.NewService(db, user.NewRepository(db), plainHasher{}, booking.NewRepository(db)), db
}

func newUser(username, email string) *user.User {
	return &user.User{
		Username:     username,
		Email:        email,
		PasswordHash: "s3cretpass",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	}
}

func TestCreateUser(t *testing.T) {
	svc, _ := setupUserService(t)

	created, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "hashed:s3cretpass", created.PasswordHash)
	assert.Equal(t, user.RoleUser, created.Role)
}

func TestCreateUserWithAdminRole(t *testing.T) {
	svc, _ := setupUserService(t)

	created, err := svc.Create(newUser("ada", "ada@example.com"), user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, created.Role)
}

func TestCreateUserDuplicatePairReportedFirst(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)

	// same username and email: the pair error wins
	_, err = svc.Create(newUser("ada", "ada@example.com"), "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindAlreadyExists, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "username ada and email ada@example.com")
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)

	// same username, different email: the username error fires
	_, err = svc.Create(newUser("ada", "other@example.com"), "")
	require.Error(t, err)
	assert.Equal(t, apperror.KindAlreadyExists, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "username ada already exists")
	assert.NotContains(t, err.Error(), "email")
}

func TestUpdateUserPartialPatch(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)

	first := "Augusta"
	updated, err := svc.Update("ada", user.UpdateUserRequest{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	// no password in the patch, the stored hash is untouched
	assert.Equal(t, "hashed:s3cretpass", updated.PasswordHash)
}

func TestUpdateUserRehashesNewPassword(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)

	password := "newpassword"
	updated, err := svc.Update("ada", user.UpdateUserRequest{Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "hashed:newpassword", updated.PasswordHash)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Update("ghost", user.UpdateUserRequest{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteUserCascadesBookings(t *testing.T) {
	svc, db := setupUserService(t)

	created, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)

	bookings := booking.NewRepository(db)
	for i := 0; i < 2; i++ {
		b := &booking.Booking{UserID: created.ID, EventID: 7, CreatedDate: time.Now()}
		require.NoError(t, bookings.Create(b))
	}
	stray := &booking.Booking{UserID: created.ID + 1, EventID: 7, CreatedDate: time.Now()}
	require.NoError(t, bookings.Create(stray))

	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.FindByID(created.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	var remaining []booking.Booking
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, created.ID+1, remaining[0].UserID)
}

func TestDeleteUserByUsernameCascadesBookings(t *testing.T) {
	svc, db := setupUserService(t)

	created, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)

	bookings := booking.NewRepository(db)
	b := &booking.Booking{UserID: created.ID, EventID: 7, CreatedDate: time.Now()}
	require.NoError(t, bookings.Create(b))

	require.NoError(t, svc.DeleteByUsername("ada"))

	var count int64
	require.NoError(t, db.Model(&booking.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteUserByUsernameNotFound(t *testing.T) {
	svc, _ := setupUserService(t)

	err := svc.DeleteByUsername("ghost")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestFindAllUsersPaged(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Create(newUser("ada", "ada@example.com"), "")
	require.NoError(t, err)
	_, err = svc.Create(newUser("grace", "grace@example.com"), "")
	require.NoError(t, err)
	_, err = svc.Create(newUser("edsger", "edsger@example.com"), "")
	require.NoError(t, err)

	page, total, err := svc.FindAll(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, "ada", page[0].Username)
}
