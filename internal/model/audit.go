package model

import "time"

// AuditEntry is an immutable activity-feed record.
type AuditEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserLabel   string    `gorm:"type:varchar(255);index" json:"user_label"`
	Action      string    `gorm:"type:varchar(100);not null" json:"action"`
	DetailsJSON string    `gorm:"type:text" json:"details_json"`
	Timestamp   time.Time `gorm:"index;not null" json:"timestamp"`
}
