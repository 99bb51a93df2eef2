package service

import (
	"errors"
	"strings"

	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
)

type RoleService interface {
	GetAllRoles() ([]model.Role, error)
	GetAllPrivileges() ([]model.Privilege, error)
	CreateRole(req *model.CreateRoleRequest, actor Actor) (*model.Role, error)
	UpdateRolePrivileges(roleID uint, privilegeCodes []string, actor Actor) (*model.Role, error)
}

type roleService struct {
	roleRepo      repository.RoleRepository
	privilegeRepo repository.PrivilegeRepository
	audit         AuditService
}

func NewRoleService(roleRepo repository.RoleRepository, privilegeRepo repository.PrivilegeRepository, audit AuditService) RoleService {
	return &roleService{roleRepo: roleRepo, privilegeRepo: privilegeRepo, audit: audit}
}

func (s *roleService) GetAllRoles() ([]model.Role, error) {
	return s.roleRepo.FindAll()
}

func (s *roleService) GetAllPrivileges() ([]model.Privilege, error) {
	return s.privilegeRepo.FindAll()
}

func (s *roleService) CreateRole(req *model.CreateRoleRequest, actor Actor) (*model.Role, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if existing, _ := s.roleRepo.FindByCode(code); existing != nil {
		return nil, ErrRoleExists
	}

	role := &model.Role{Code: code, Name: req.Name, Description: req.Description}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, err
	}

	if len(req.Privileges) > 0 {
		if _, err := s.UpdateRolePrivileges(role.ID, req.Privileges, actor); err != nil {
			return nil, err
		}
	}

	if s.audit != nil {
		s.audit.Record(actor, ActionRoleCreate, map[string]string{"code": role.Code})
	}
	return s.roleRepo.FindByID(role.ID)
}

func (s *roleService) UpdateRolePrivileges(roleID uint, privilegeCodes []string, actor Actor) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, errors.New("failed to find privileges")
	}
	if err := s.roleRepo.ReplacePrivileges(role.ID, privileges); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(actor, ActionRolePrivileges, map[string]interface{}{"code": role.Code, "privileges": privilegeCodes})
	}
	return s.roleRepo.FindByID(role.ID)
}
