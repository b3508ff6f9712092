package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 3})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func() error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		c := e.NewContext(req, httptest.NewRecorder())
		return handler(c)
	}

	for i := 0; i < 3; i++ {
		if err := send(); err != nil {
			t.Fatalf("request %d within burst rejected: %v", i+1, err)
		}
	}

	err := send()
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Errorf("err = %v, want 429", err)
	}
}

func TestRateLimitIsolatesClients(t *testing.T) {
	e := echo.New()
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func(addr string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		c := e.NewContext(req, httptest.NewRecorder())
		return handler(c)
	}

	if err := send("10.0.0.1:1234"); err != nil {
		t.Fatalf("first client: %v", err)
	}
	if err := send("10.0.0.2:1234"); err != nil {
		t.Errorf("second client throttled by first client's bucket: %v", err)
	}
}
