package handler

import (
	"bytes"
	"fmt"
	"time"

	"go-pos-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	dateLayout      = "2006-01-02"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// defaultReportDays is the period used when ?from= is absent.
	defaultReportDays = 30
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// period reads ?from=&to= as calendar days, both inclusive, and returns [from, to+1day).
func period(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	to := today
	if raw := c.Query("to"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' date, use YYYY-MM-DD")
		}
		to = t
	}
	from := to.AddDate(0, 0, -(defaultReportDays - 1))
	if raw := c.Query("from"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' date, use YYYY-MM-DD")
		}
		from = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("'to' cannot be before 'from'")
	}
	return from, to.AddDate(0, 0, 1), nil
}

// GetSalesReport returns the summary and top products of a period.
// Query params: from, to (YYYY-MM-DD, default the last 30 days)
func (h *ReportHandler) GetSalesReport(c *fiber.Ctx) error {
	from, to, err := period(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Sales(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build sales report"})
	}
	return c.JSON(report)
}

func (h *ReportHandler) GetInventoryReport(c *fiber.Ctx) error {
	report, err := h.service.Inventory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build inventory report"})
	}
	return c.JSON(report)
}

func (h *ReportHandler) DownloadSalesExcel(c *fiber.Ctx) error {
	from, to, err := period(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := h.service.WriteSalesExcel(&buf, from, to); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to export sales report"})
	}
	return sendXLSX(c, fmt.Sprintf("sales_%s_%s.xlsx", from.Format(dateLayout), to.AddDate(0, 0, -1).Format(dateLayout)), buf.Bytes())
}

func (h *ReportHandler) DownloadInventoryExcel(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.WriteInventoryExcel(&buf); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to export inventory report"})
	}
	return sendXLSX(c, fmt.Sprintf("inventory_%s.xlsx", time.Now().Format(dateLayout)), buf.Bytes())
}

func sendXLSX(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
