package service

import (
	"strings"

	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/pkg/logger"
)

// Seeder creates the default privileges, roles and administrator when they are missing.
// Running it again on a seeded database changes nothing.
type Seeder struct {
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
	userRepo      repository.UserRepository
	log           *logger.Logger
}

func NewSeeder(privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository, userRepo repository.UserRepository, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{privilegeRepo: privilegeRepo, roleRepo: roleRepo, userRepo: userRepo, log: log}
}

// adminExcluded are the privileges ADMIN does not get: user management and role editing.
func adminExcluded(code string) bool {
	return strings.HasPrefix(code, "users:") || code == "roles:create" || code == "roles:update"
}

var cashierPrivileges = map[string]bool{
	"products:read":   true,
	"categories:read": true,
	"offers:read":     true,
	"sales:read":      true,
	"sales:create":    true,
	"rates:read":      true,
	"dashboard:read":  true,
}

func (s *Seeder) Seed(adminUsername, adminPassword string) error {
	if err := s.privilegeRepo.SeedDefaults(); err != nil {
		return err
	}
	if err := s.roleRepo.SeedDefaults(); err != nil {
		return err
	}

	all, err := s.privilegeRepo.FindAll()
	if err != nil {
		return err
	}

	grants := map[string]func(string) bool{
		model.RoleMasterAdmin: func(string) bool { return true },
		model.RoleAdmin:       func(code string) bool { return !adminExcluded(code) },
		model.RoleCashier:     func(code string) bool { return cashierPrivileges[code] },
	}
	for code, allowed := range grants {
		role, err := s.roleRepo.FindByCode(code)
		if err != nil {
			return err
		}
		// Roles edited by an administrator keep their privileges.
		if len(role.Privileges) > 0 {
			continue
		}
		var privs []model.Privilege
		for _, p := range all {
			if allowed(p.Code) {
				privs = append(privs, p)
			}
		}
		if err := s.roleRepo.ReplacePrivileges(role.ID, privs); err != nil {
			return err
		}
		s.log.WithField("role", code).WithField("privileges", len(privs)).Info("role privileges seeded")
	}

	if existing, _ := s.userRepo.FindByUsername(adminUsername); existing != nil {
		return nil
	}

	master, err := s.roleRepo.FindByCode(model.RoleMasterAdmin)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username: adminUsername,
		FullName: "Master Administrator",
		RoleID:   &master.ID,
		IsActive: true,
	}
	admin.CreatedBy = System.ID
	admin.UpdatedBy = System.ID
	if err := admin.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}

	s.log.WithField("username", adminUsername).Info("admin user created")
	return nil
}
