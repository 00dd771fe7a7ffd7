package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := Register(reg); err == nil {
		t.Fatal("second Register succeeded, want duplicate error")
	}
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/videos/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	before := testutil.ToFloat64(RequestsInFlight)
	resp, err := app.Test(httptest.NewRequest("GET", "/videos/abc", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if n := testutil.CollectAndCount(RequestDuration, "vidtube_http_request_duration_seconds"); n == 0 {
		t.Fatal("no request duration series recorded")
	}
	if got := testutil.ToFloat64(RequestsInFlight); got != before {
		t.Errorf("in-flight = %v after request, want %v", got, before)
	}
}

func TestHandlerServesExposition(t *testing.T) {
	app := fiber.New()
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("exposition missing default go collector output")
	}
}
