package requestid_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/solstack/site/internal/middleware/requestid"
)

func TestGeneratesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/ping", func(c *fiber.Ctx) error {
		if requestid.GetRequestID(c) == "" {
			t.Error("expected request ID in locals")
		}
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.Header.Get(requestid.HeaderRequestID) == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestHonorsInboundRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(requestid.HeaderRequestID, "client-supplied-id")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if got := resp.Header.Get(requestid.HeaderRequestID); got != "client-supplied-id" {
		t.Errorf("expected inbound request ID to be echoed, got %q", got)
	}
}
