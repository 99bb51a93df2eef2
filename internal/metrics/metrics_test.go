package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.IncLogin(true)
	m.IncLogin(false)
	m.IncLogin(false)
	m.ObserveSale(12.5)
	m.ObserveSale(7.5)
	m.IncOfferRejected("offer_price")
	m.IncPermissionDenied("/api/v1/users")
	m.IncWSClients()
	m.IncWSClients()
	m.DecWSClients()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.salesRecorded))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.salesAmountUSD))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.offersRejected.WithLabelValues("offer_price")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.permissionDenys.WithLabelValues("/api/v1/users")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wsClients))
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/products/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/products/:id", "404")))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.IncLogin(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(string(body), `pos_login_attempts_total{result="success"} 1`))
}
