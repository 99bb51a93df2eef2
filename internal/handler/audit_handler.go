package handler

import (
	"time"

	"go-pos-console/internal/catalog"
	"go-pos-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	service service.AuditService
}

func NewAuditHandler(s service.AuditService) *AuditHandler {
	return &AuditHandler{service: s}
}

// GetAudit returns the activity feed, newest first.
// Query params: user, from, to (YYYY-MM-DD, inclusive), q (free text over user, action and details)
func (h *AuditHandler) GetAudit(c *fiber.Ctx) error {
	q := catalog.AuditQuery{UserLabel: c.Query("user")}

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid 'from' date, use YYYY-MM-DD"})
		}
		q.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid 'to' date, use YYYY-MM-DD"})
		}
		q.To = t
	}

	entries, err := h.service.List(q)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity log"})
	}
	return c.JSON(catalog.Filter(entries, c.Query("q"), catalog.AuditFields...))
}
