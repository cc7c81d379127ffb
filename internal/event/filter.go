package event

import (
	"time"

	"gorm.io/gorm"
)

// Filter narrows the event listing. Every field left unset contributes
// no clause; the set fields are AND-composed. Both pagination fields
// are mandatory.
type Filter struct {
	PageNumber *int `form:"pageNumber" binding:"required,gte=0"`
	PageSize   *int `form:"pageSize" binding:"required,gte=1"`

	Name         *string    `form:"name"`
	Description  *string    `form:"description"`
	City         *string    `form:"city"`
	Address      *string    `form:"address"`
	Date         *time.Time `form:"date" time_format:"2006-01-02"`
	MaxAttendees *int       `form:"maxAttendees"`
}

// Scopes returns the conjunctive predicate fragments the filter
// contributes, ready for db.Scopes.
func (f *Filter) Scopes() []func(*gorm.DB) *gorm.DB {
	return []func(*gorm.DB) *gorm.DB{
		f.byName,
		f.byDescription,
		f.byCity,
		f.byAddress,
		f.byDate,
		f.byMaxAttendees,
	}
}

func (f *Filter) byName(db *gorm.DB) *gorm.DB {
	if f.Name == nil {
		return db
	}
	return db.Where("name LIKE ?", "%"+*f.Name+"%")
}

func (f *Filter) byDescription(db *gorm.DB) *gorm.DB {
	if f.Description == nil {
		return db
	}
	return db.Where("description LIKE ?", "%"+*f.Description+"%")
}

func (f *Filter) byCity(db *gorm.DB) *gorm.DB {
	if f.City == nil {
		return db
	}
	return db.Where("city LIKE ?", "%"+*f.City+"%")
}

func (f *Filter) byAddress(db *gorm.DB) *gorm.DB {
	if f.Address == nil {
		return db
	}
	return db.Where("address LIKE ?", "%"+*f.Address+"%")
}

func (f *Filter) byDate(db *gorm.DB) *gorm.DB {
	if f.Date == nil {
		return db
	}
	return db.Where("date = ?", *f.Date)
}

func (f *Filter) byMaxAttendees(db *gorm.DB) *gorm.DB {
	if f.MaxAttendees == nil {
		return db
	}
	return db.Where("max_attendees = ?", *f.MaxAttendees)
}
