// Package session owns the signed-in principal of the console: it logs in against the
// REST API, persists the principal so it survives restarts, and answers permission checks.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go-pos-console/internal/access"
	"go-pos-console/internal/model"
	"go-pos-console/pkg/logger"
)

// Keys of the persisted session. Both must be present for a session to restore.
const (
	KeyPrincipal   = "session.principal"
	KeyPermissions = "session.permissions"
)

const logoutNotifyTimeout = 5 * time.Second

// ErrEmptyToken is returned when a successful login carries no token.
var ErrEmptyToken = errors.New("login response carried no token")

// API is the part of the REST API the store needs.
type API interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Permissions(ctx context.Context, token string) ([]string, error)
}

// KV is durable string storage.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type storedPrincipal struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Token       string `json:"token"`
}

// Store holds the signed-in principal and its token. It is safe for concurrent use.
type Store struct {
	api API
	kv  KV
	log *logger.Logger

	mu        sync.Mutex
	principal *model.Principal
	token     string
	// generation changes on every login, logout and restore so a refresh started
	// for an older principal can tell its result is stale.
	generation uint64

	pending sync.WaitGroup
}

// NewStore returns a signed-out store. log may be nil.
func NewStore(api API, kv KV, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{api: api, kv: kv, log: log}
}

// Login authenticates creds and replaces the current principal. On any failure the
// existing session is left as it was and the API error is returned unchanged.
func (s *Store) Login(ctx context.Context, creds model.Credentials) (*model.Principal, error) {
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrEmptyToken
	}
	p := resp.Principal()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, p, resp.Token); err != nil {
		return nil, err
	}
	s.principal = &p
	s.token = resp.Token
	s.generation++

	s.log.WithField("user", p.Username).Info("session started")
	return s.current(), nil
}

// Logout clears the local session unconditionally. The server is told in the
// background and a failure there is only logged.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	s.principal = nil
	s.token = ""
	s.generation++
	err := errors.Join(
		s.kv.Delete(ctx, KeyPrincipal),
		s.kv.Delete(ctx, KeyPermissions),
	)
	s.mu.Unlock()

	if token != "" {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutNotifyTimeout)
			defer cancel()
			if err := s.api.Logout(notifyCtx, token); err != nil {
				s.log.WithError(err).Warn("logout notification failed")
			}
		}()
	}

	if err != nil {
		s.log.WithError(err).Error("failed to clear persisted session")
	}
	return err
}

// Restore loads the persisted principal without contacting the server.
// It returns (nil, nil) when no complete session is stored.
func (s *Store) Restore(ctx context.Context) (*model.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawPrincipal, okP, err := s.kv.Get(ctx, KeyPrincipal)
	if err != nil {
		return nil, err
	}
	rawPerms, okPerms, err := s.kv.Get(ctx, KeyPermissions)
	if err != nil {
		return nil, err
	}

	s.generation++
	s.principal = nil
	s.token = ""
	if !okP || !okPerms {
		return nil, nil
	}

	var stored storedPrincipal
	var perms model.PermissionSet
	if err := json.Unmarshal([]byte(rawPrincipal), &stored); err != nil {
		s.log.WithError(err).Warn("discarding unreadable persisted principal")
		return nil, nil
	}
	if err := json.Unmarshal([]byte(rawPerms), &perms); err != nil {
		s.log.WithError(err).Warn("discarding unreadable persisted permissions")
		return nil, nil
	}

	s.principal = &model.Principal{
		ID:          stored.ID,
		Username:    stored.Username,
		DisplayName: stored.DisplayName,
		Role:        stored.Role,
		Permissions: perms,
	}
	s.token = stored.Token
	return s.current(), nil
}

// RefreshPermissions re-fetches the principal's permission list. Failures are logged
// and the cached set is kept. A result arriving after the principal changed is dropped.
func (s *Store) RefreshPermissions(ctx context.Context) {
	s.mu.Lock()
	if s.principal == nil {
		s.mu.Unlock()
		return
	}
	gen := s.generation
	token := s.token
	s.mu.Unlock()

	tokens, err := s.api.Permissions(ctx, token)
	if err != nil {
		s.log.WithError(err).Warn("permission refresh failed, keeping cached permissions")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen || s.principal == nil {
		s.log.Debug("discarding permission refresh for a replaced session")
		return
	}

	perms := model.NewPermissionSet(tokens...)
	raw, err := json.Marshal(perms)
	if err != nil {
		s.log.WithError(err).Error("failed to encode permissions")
		return
	}
	if err := s.kv.Set(ctx, KeyPermissions, string(raw)); err != nil {
		s.log.WithError(err).Warn("failed to persist refreshed permissions")
	}
	updated := s.principal.WithPermissions(perms.List())
	s.principal = &updated
}

// HasPermission reports whether the current principal holds token.
func (s *Store) HasPermission(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return access.Allows(token, s.principal)
}

// Allowed checks required against the current principal under mode.
func (s *Store) Allowed(required []string, mode access.Mode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return access.IsAllowed(required, mode, s.principal)
}

// Current returns a copy of the principal, or nil when signed out.
func (s *Store) Current() *model.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

// Token returns the bearer token of the session, "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Wait blocks until background logout notifications have finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

func (s *Store) current() *model.Principal {
	if s.principal == nil {
		return nil
	}
	cp := *s.principal
	cp.Permissions = s.principal.Permissions.Clone()
	return &cp
}

// persist writes both keys. On any failure the previously stored values are put
// back, so a failed login leaves an earlier session restorable.
func (s *Store) persist(ctx context.Context, p model.Principal, token string) error {
	rawPrincipal, err := json.Marshal(storedPrincipal{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Role:        p.Role,
		Token:       token,
	})
	if err != nil {
		return err
	}
	rawPerms, err := json.Marshal(p.Permissions)
	if err != nil {
		return err
	}

	prevPerms, err := s.snapshot(ctx, KeyPermissions)
	if err != nil {
		return err
	}
	prevPrincipal, err := s.snapshot(ctx, KeyPrincipal)
	if err != nil {
		return err
	}

	if err := s.kv.Set(ctx, KeyPermissions, string(rawPerms)); err != nil {
		s.rollback(ctx, prevPerms)
		return err
	}
	if err := s.kv.Set(ctx, KeyPrincipal, string(rawPrincipal)); err != nil {
		s.rollback(ctx, prevPerms, prevPrincipal)
		return err
	}
	return nil
}

type storedValue struct {
	key     string
	value   string
	present bool
}

func (s *Store) snapshot(ctx context.Context, key string) (storedValue, error) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return storedValue{}, err
	}
	return storedValue{key: key, value: v, present: ok}, nil
}

// rollback puts each key back to its snapshot. Failures are logged.
func (s *Store) rollback(ctx context.Context, prev ...storedValue) {
	for _, p := range prev {
		var err error
		if p.present {
			err = s.kv.Set(ctx, p.key, p.value)
		} else {
			err = s.kv.Delete(ctx, p.key)
		}
		if err != nil {
			s.log.WithError(err).WithField("key", p.key).Error("failed to restore persisted session")
		}
	}
}
