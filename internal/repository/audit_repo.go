package repository

import (
	"go-pos-console/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *model.AuditEntry) error
	FindRecent(limit int) ([]model.AuditEntry, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditEntry) error {
	return r.db.Create(entry).Error
}

// FindRecent returns the newest entries first. limit <= 0 means no limit.
func (r *auditRepo) FindRecent(limit int) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	q := r.db.Order("timestamp DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}
