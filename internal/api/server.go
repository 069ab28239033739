package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"supermarket/internal/web"
)

// NewServer builds the echo instance with middleware, renderer and routes.
// rateLimit is requests per second per client on the stats and export routes.
func NewServer(h *Handler, rateLimit float64) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.Renderer = renderer

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	limiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(rateLimit)))
	h.RegisterRoutes(e, limiter)
	return e, nil
}
