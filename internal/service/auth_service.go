package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-pos-console/internal/model"
	"go-pos-console/internal/repository"
	"go-pos-console/internal/ws"
	"go-pos-console/pkg/jwt"
)

type AuthService interface {
	Login(username, password string) (*model.LoginResponse, error)
	Logout(userID uuid.UUID) error
	Permissions(userID uuid.UUID) ([]string, error)
	ResetPassword(req *model.ResetPasswordRequest) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	// Authenticate resolves a bearer token to its user, enforcing the single active session.
	Authenticate(tokenString string) (*model.User, error)
	Heartbeat(userID uuid.UUID) error
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo    repository.UserRepository
	tokens      *jwt.Manager
	wsHub       *ws.Hub
	audit       AuditService
	metrics     Recorder
	idleTimeout time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, hub *ws.Hub, audit AuditService, metrics Recorder, idleTimeout time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		tokens:      tokens,
		wsHub:       hub,
		audit:       audit,
		metrics:     recorderOrNop(metrics),
		idleTimeout: idleTimeout,
	}
}

func (s *authService) Login(username, password string) (*model.LoginResponse, error) {
	resp, err := s.login(username, password)
	s.metrics.IncLogin(err == nil)
	return resp, err
}

func (s *authService) login(username, password string) (*model.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.IsLocked {
		return nil, ErrUserLocked
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// A new token version invalidates every token issued before this login.
	now := time.Now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.New("failed to update session")
	}

	privileges := user.GetPrivilegeCodes()
	token, err := s.tokens.GenerateToken(jwt.Subject{
		UserID:       user.ID,
		Username:     user.Username,
		Name:         user.FullName,
		RoleCode:     user.RoleCode(),
		Privileges:   privileges,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	if s.audit != nil {
		s.audit.Record(Actor{ID: user.ID.String(), Name: user.Username}, ActionLogin, nil)
	}

	return &model.LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: privileges,
	}, nil
}

// Logout rotates the token version so the current token stops working.
func (s *authService) Logout(userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := s.userRepo.UpdateTokenVersion(userID, uuid.New().String()); err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Record(Actor{ID: user.ID.String(), Name: user.Username}, ActionLogout, nil)
	}
	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeUser,
		Action: "logout",
		Data:   map[string]interface{}{"user_id": userID.String(), "status": "offline"},
	})
	return nil
}

// Permissions returns the user's current privileges as stored, not as carried by the token.
func (s *authService) Permissions(userID uuid.UUID) ([]string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user.GetPrivilegeCodes(), nil
}

func (s *authService) ResetPassword(req *model.ResetPasswordRequest) error {
	if err := checkStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(req.OldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return err
	}

	// Sessions opened with the old password end here.
	if err := s.userRepo.UpdateTokenVersion(user.ID, uuid.New().String()); err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Record(Actor{ID: user.ID.String(), Name: user.Username}, ActionPasswordReset, nil)
	}
	return nil
}

func (s *authService) Authenticate(tokenString string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.IsLocked {
		return nil, ErrUserLocked
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionReplaced
	}
	return user, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	user, err := s.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}

	// No heartbeat within the idle window ends the session. A missing LastSeenAt counts as idle.
	if s.idleTimeout > 0 {
		if user.LastSeenAt == nil || time.Since(*user.LastSeenAt) > s.idleTimeout {
			return nil, ErrSessionTimeout
		}
	}

	return &TokenValidationResponse{
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Heartbeat(userID uuid.UUID) error {
	now := time.Now()
	if err := s.userRepo.UpdateLastSeen(userID, now); err != nil {
		return err
	}

	s.wsHub.Publish(ws.Event{
		Type:   ws.TypeUser,
		Action: "heartbeat",
		Data: map[string]interface{}{
			"user_id":      userID.String(),
			"status":       "online",
			"last_seen_at": now,
		},
	})
	return nil
}
