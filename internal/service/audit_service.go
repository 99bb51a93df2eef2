package service

import (
	"encoding/json"
	"time"

	"go-pos-console/internal/catalog"
	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/pkg/logger"
)

// Audit actions.
const (
	ActionLogin          = "auth.login"
	ActionLogout         = "auth.logout"
	ActionPasswordReset  = "auth.reset_password"
	ActionProductCreate  = "product.create"
	ActionProductUpdate  = "product.update"
	ActionProductDelete  = "product.delete"
	ActionCategoryCreate = "category.create"
	ActionCategoryUpdate = "category.update"
	ActionCategoryDelete = "category.delete"
	ActionOfferCreate    = "offer.create"
	ActionOfferUpdate    = "offer.update"
	ActionOfferDelete    = "offer.delete"
	ActionSaleCreate     = "sale.create"
	ActionUserCreate     = "user.create"
	ActionUserUpdate     = "user.update"
	ActionUserDelete     = "user.delete"
	ActionUserPrivileges = "user.privileges"
	ActionRoleCreate     = "role.create"
	ActionRolePrivileges = "role.privileges"
	ActionRateSave       = "rate.save"
)

type AuditService interface {
	// Record stores an entry. Failures are logged, never returned to the caller.
	Record(actor Actor, action string, details interface{})
	List(q catalog.AuditQuery) ([]model.AuditEntry, error)
}

type auditService struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

func NewAuditService(repo repository.AuditRepository, log *logger.Logger) AuditService {
	if log == nil {
		log = logger.Nop()
	}
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(actor Actor, action string, details interface{}) {
	raw := []byte("{}")
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			s.log.WithError(err).WithField("action", action).Warn("audit details not encodable")
		} else {
			raw = b
		}
	}

	entry := &model.AuditEntry{
		UserLabel:   actor.Name,
		Action:      action,
		DetailsJSON: string(raw),
		Timestamp:   time.Now(),
	}
	if err := s.repo.Create(entry); err != nil {
		s.log.WithError(err).WithField("action", action).Error("failed to write audit entry")
	}
}

// List returns the feed newest first, narrowed by q.
func (s *auditService) List(q catalog.AuditQuery) ([]model.AuditEntry, error) {
	entries, err := s.repo.FindRecent(0)
	if err != nil {
		return nil, err
	}
	return catalog.FilterAudit(entries, q), nil
}
