package user

import "gorm.io/gorm"

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

func (r *Repository) FindAll(page, size int) ([]User, int64, error) {
	var total int64
	if err := r.DB.Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := r.DB.
		Order("id ASC").
		Limit(size).
		Offset(page * size).
		Find(&users).Error
	return users, total, err
}

func (r *Repository) FindByID(id uint) (*User, error) {
	var u User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindByUsername(username string) (*User, error) {
	var u User
	if err := r.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) ExistsByUsernameAndEmail(username, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&User{}).
		Where("username = ? AND email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(u *User) error {
	return r.DB.Create(u).Error
}

func (r *Repository) Save(u *User) error {
	return r.DB.Save(u).Error
}

func (r *Repository) DeleteByID(id uint) error {
	return r.DB.Delete(&User{}, id).Error
}

func (r *Repository) DeleteByUsername(username string) error {
	return r.DB.Where("username = ?", username).Delete(&User{}).Error
}
