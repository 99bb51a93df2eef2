package catalog

import (
	"strings"
	"time"

	"go-pos-console/internal/model"
)

// AuditQuery narrows the activity feed. Zero values mean "no restriction".
// From and To are compared by calendar date, both inclusive.
type AuditQuery struct {
	UserLabel string
	From      time.Time
	To        time.Time
}

// FilterAudit keeps the entries matching q, preserving order.
func FilterAudit(entries []model.AuditEntry, q AuditQuery) []model.AuditEntry {
	user := strings.ToLower(strings.TrimSpace(q.UserLabel))
	out := make([]model.AuditEntry, 0, len(entries))
	for _, e := range entries {
		if user != "" && strings.ToLower(strings.TrimSpace(e.UserLabel)) != user {
			continue
		}
		day := dateOnly(e.Timestamp)
		if !q.From.IsZero() && day.Before(dateOnly(q.From)) {
			continue
		}
		if !q.To.IsZero() && day.After(dateOnly(q.To)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
