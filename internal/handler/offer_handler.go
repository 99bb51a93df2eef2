package handler

import (
	"go-pos-console/internal/middleware"
	"go-pos-console/internal/model"
	"go-pos-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OfferHandler struct {
	service service.OfferService
}

func NewOfferHandler(s service.OfferService) *OfferHandler {
	return &OfferHandler{service: s}
}

// GetOffers lists offers with their discount and status as of today.
func (h *OfferHandler) GetOffers(c *fiber.Ctx) error {
	offers, err := h.service.ListOffers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch offers"})
	}
	return c.JSON(offers)
}

func (h *OfferHandler) GetOffer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid offer ID"})
	}
	offer, err := h.service.GetOffer(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(offer)
}

func (h *OfferHandler) CreateOffer(c *fiber.Ctx) error {
	var req model.OfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	offer, err := h.service.CreateOffer(&req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Offer created", "data": offer})
}

func (h *OfferHandler) UpdateOffer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid offer ID"})
	}

	var req model.OfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	offer, err := h.service.UpdateOffer(id, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Offer updated", "data": offer})
}

func (h *OfferHandler) DeleteOffer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid offer ID"})
	}
	if err := h.service.DeleteOffer(id, middleware.Actor(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Offer deleted"})
}
