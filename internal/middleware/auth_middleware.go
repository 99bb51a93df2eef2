package middleware

import (
	"errors"
	"strings"

	"go-pos-console/internal/access"
	"go-pos-console/internal/model"
	"go-pos-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by RequireAuth.
const (
	LocalUserID    = "user_id"
	LocalUserName  = "user_name"
	LocalPrincipal = "principal"
)

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(tokenString string) (*model.User, error)
}

// DenialRecorder counts requests refused for missing privileges.
type DenialRecorder interface {
	IncPermissionDenied(route string)
}

// RequireAuth is middleware that validates the bearer token and sets the principal in context.
// Privileges come from the database, so grants changed after login apply immediately.
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		user, err := auth.Authenticate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": authMessage(err)})
		}

		principal := user.ToPrincipal()
		c.Locals(LocalUserID, user.ID.String())
		c.Locals(LocalUserName, user.Username)
		c.Locals(LocalPrincipal, &principal)

		return c.Next()
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrSessionReplaced),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrUserLocked):
		return err.Error()
	default:
		return "Invalid or expired token"
	}
}

// Principal returns the principal set by RequireAuth, or nil.
func Principal(c *fiber.Ctx) *model.Principal {
	p, _ := c.Locals(LocalPrincipal).(*model.Principal)
	return p
}

// Actor returns the authenticated user as a service actor.
func Actor(c *fiber.Ctx) service.Actor {
	id, _ := c.Locals(LocalUserID).(string)
	name, _ := c.Locals(LocalUserName).(string)
	return service.Actor{ID: id, Name: name}
}

// Require rejects the request with 403 unless the principal satisfies req.
// denials may be nil.
func Require(req access.Requirement, denials DenialRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if req.SatisfiedBy(Principal(c)) {
			return c.Next()
		}

		if denials != nil {
			denials.IncPermissionDenied(c.Route().Path)
		}

		joiner := ", "
		if req.Mode == access.ModeAll {
			joiner = " and "
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + strings.Join(req.Tokens, "'"+joiner+"'") + "' privilege",
		})
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege.
func RequirePrivilege(privilege string, denials DenialRecorder) fiber.Handler {
	return Require(access.All(privilege), denials)
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges.
func RequireAnyPrivilege(denials DenialRecorder, privileges ...string) fiber.Handler {
	return Require(access.Any(privileges...), denials)
}
