package service

import (
	"errors"

	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/ws"

	"github.com/google/uuid"
)

type UserService interface {
	CreateUser(req *model.CreateUserRequest, actor Actor) (*model.User, error)
	UpdateUser(userID uuid.UUID, req *model.UpdateUserRequest, actor Actor) (*model.User, error)
	DeleteUser(userID uuid.UUID, actor Actor) error
	UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, actor Actor) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type userService struct {
	userRepo      repository.UserRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
	audit         AuditService
	wsHub         *ws.Hub
}

func NewUserService(userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository, audit AuditService, hub *ws.Hub) UserService {
	return &userService{
		userRepo:      userRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
		audit:         audit,
		wsHub:         hub,
	}
}

func (s *userService) CreateUser(req *model.CreateUserRequest, actor Actor) (*model.User, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	existing, _ := s.userRepo.FindByUsername(req.Username)
	if existing != nil {
		return nil, ErrUsernameExists
	}

	role, err := s.roleRepo.FindByID(req.RoleID)
	if err != nil {
		return nil, ErrRoleNotFound
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		RoleID:   &req.RoleID,
		IsActive: true,
	}
	user.CreatedBy = actor.ID
	user.UpdatedBy = actor.ID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	user.Role = role

	s.record(actor, ActionUserCreate, user, "create")
	return user, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *model.UpdateUserRequest, actor Actor) (*model.User, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if _, err := s.roleRepo.FindByID(req.RoleID); err != nil {
		return nil, ErrRoleNotFound
	}

	user.Email = req.Email
	user.FullName = req.FullName
	user.RoleID = &req.RoleID
	user.Role = nil
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsLocked != nil {
		user.IsLocked = *req.IsLocked
	}
	user.UpdatedBy = actor.ID

	passwordChanged := req.Password != nil && *req.Password != ""
	if passwordChanged {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	// Deactivation, locking or a new password end any open session.
	if passwordChanged || !user.IsActive || user.IsLocked {
		user.TokenVersion = uuid.New().String()
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	s.record(actor, ActionUserUpdate, updated, "update")
	return updated, nil
}

func (s *userService) DeleteUser(userID uuid.UUID, actor Actor) error {
	if err := s.userRepo.Delete(userID); err != nil {
		return ErrUserNotFound
	}
	if s.audit != nil {
		s.audit.Record(actor, ActionUserDelete, map[string]string{"user_id": userID.String()})
	}
	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeUser,
		Action: "delete",
		Data:   map[string]string{"user_id": userID.String()},
		User:   actor.Name,
	})
	return nil
}

func (s *userService) UpdateUserPrivileges(userID uuid.UUID, privilegeCodes []string, actor Actor) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, errors.New("failed to find privileges")
	}

	if err := s.userRepo.UpdatePrivileges(userID, privileges); err != nil {
		return nil, err
	}

	user.UpdatedBy = actor.ID
	user.Privileges = nil
	user.Role = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	// Consoles refresh their cached permissions on this event.
	s.record(actor, ActionUserPrivileges, updated, "privileges")
	return updated, nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}

func (s *userService) record(actor Actor, action string, user *model.User, wsAction string) {
	if s.audit != nil {
		s.audit.Record(actor, action, map[string]string{"user_id": user.ID.String(), "username": user.Username})
	}
	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeUser,
		Action: wsAction,
		Data:   user.ToResponse(),
		User:   actor.Name,
	})
}
