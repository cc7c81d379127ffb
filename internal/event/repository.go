package event

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

func (r *Repository) FindAll() ([]Event, error) {
	var events []Event
	err := r.DB.Order("id ASC").Find(&events).Error
	return events, err
}

func (r *Repository) FindAllByFilter(f *Filter) ([]Event, error) {
	var events []Event
	err := r.DB.
		Scopes(f.Scopes()...).
		Order("id ASC").
		Limit(*f.PageSize).
		Offset(*f.PageNumber * *f.PageSize).
		Find(&events).Error
	return events, err
}

func (r *Repository) FindByID(id uint) (*Event, error) {
	var e Event
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) Create(e *Event) error {
	return r.DB.Create(e).Error
}

func (r *Repository) Save(e *Event) error {
	return r.DB.Save(e).Error
}

func (r *Repository) DeleteByID(id uint) error {
	return r.DB.Delete(&Event{}, id).Error
}
