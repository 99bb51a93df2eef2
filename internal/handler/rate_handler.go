package handler

import (
	"go-pos-console/internal/middleware"
	"go-pos-console/internal/model"
	"go-pos-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RateHandler struct {
	service service.RateService
}

func NewRateHandler(s service.RateService) *RateHandler {
	return &RateHandler{service: s}
}

func (h *RateHandler) GetRates(c *fiber.Ctx) error {
	rates, err := h.service.History()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch exchange rates"})
	}
	return c.JSON(rates)
}

func (h *RateHandler) GetLatest(c *fiber.Ctx) error {
	rate, err := h.service.Current()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rate)
}

func (h *RateHandler) CreateRate(c *fiber.Ctx) error {
	var req model.ExchangeRateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	rate, err := h.service.Save(&req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Exchange rate saved", "data": rate})
}
