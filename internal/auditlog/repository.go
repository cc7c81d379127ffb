package auditlog

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(entry *AuditLog) error {
	return r.DB.Create(entry).Error
}

func (r *Repository) List(f Filter) ([]AuditLog, int64, error) {
	query := r.DB.Model(&AuditLog{})
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	page := f.Page
	if page < 0 {
		page = 0
	}

	var entries []AuditLog
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(page * limit).
		Find(&entries).Error
	return entries, total, err
}
