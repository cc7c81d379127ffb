package user

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/dvo/event-booking-backend/internal/apperror"
)

// PasswordHasher is the one-way credential hasher used at create time
// and whenever an update carries a new plaintext password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// BookingStore is the slice of booking storage the user service needs
// for cascading deletes.
type BookingStore interface {
	DeleteByUserID(tx *gorm.DB, userID uint) error
}

type Service struct {
	db       *gorm.DB
	repo     *Repository
	hasher   PasswordHasher
	bookings BookingStore
}

func NewService(db *gorm.DB, repo *Repository, hasher PasswordHasher, bookings BookingStore) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		hasher:   hasher,
		bookings: bookings,
	}
}

func (s *Service) FindAll(page, size int) ([]User, int64, error) {
	return s.repo.FindAll(page, size)
}

func (s *Service) FindByID(id uint) (*User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("user not found with ID: %d", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) FindByUsername(username string) (*User, error) {
	u, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("user not found with username: %s", username)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) ExistsByUsernameAndEmail(username, email string) (bool, error) {
	return s.repo.ExistsByUsernameAndEmail(username, email)
}

// Create registers a new user. The (username, email) pair is checked
// before the bare username, matching the order the uniqueness errors
// are surfaced in.
func (s *Service) Create(u *User, role Role) (*User, error) {
	log.Printf("creating user %s", u.Username)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		pairExists, err := repo.ExistsByUsernameAndEmail(u.Username, u.Email)
		if err != nil {
			return err
		}
		if pairExists {
			return apperror.AlreadyExistsf("user with username %s and email %s already exists", u.Username, u.Email)
		}

		nameExists, err := repo.ExistsByUsername(u.Username)
		if err != nil {
			return err
		}
		if nameExists {
			return apperror.AlreadyExistsf("user with username %s already exists", u.Username)
		}

		hash, err := s.hasher.Hash(u.PasswordHash)
		if err != nil {
			return err
		}
		u.PasswordHash = hash

		if role.Valid() {
			u.Role = role
		} else {
			u.Role = RoleUser
		}

		return repo.Create(u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update patches the user identified by username. Only present fields
// are applied; a new plaintext password is hashed before it is stored.
func (s *Service) Update(username string, req UpdateUserRequest) (*User, error) {
	log.Printf("updating user %s", username)

	var updated *User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		u, err := repo.FindByUsername(username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("user not found with username: %s", username)
			}
			return err
		}

		if req.Password != nil {
			hash, err := s.hasher.Hash(*req.Password)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.FirstName != nil {
			u.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			u.LastName = *req.LastName
		}

		if err := repo.Save(u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user and every booking referencing them, bookings
// first.
func (s *Service) Delete(id uint) error {
	log.Printf("deleting user %d", id)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.bookings.DeleteByUserID(tx, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).DeleteByID(id)
	})
}

// DeleteByUsername resolves the username first so the booking cascade
// can run against the user's ID.
func (s *Service) DeleteByUsername(username string) error {
	log.Printf("deleting user %s", username)

	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		u, err := repo.FindByUsername(username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("user not found with username: %s", username)
			}
			return err
		}

		if err := s.bookings.DeleteByUserID(tx, u.ID); err != nil {
			return err
		}
		return repo.DeleteByUsername(username)
	})
}
