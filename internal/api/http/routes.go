package httpapi

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-proxy/internal/metrics"
	"github.com/i474232898/weather-proxy/internal/weather"
)

// Messages returned to callers. Internal error detail is never exposed.
const (
	msgCityRequired  = "City parameter is required"
	msgAPIKeyMissing = "OpenWeatherMap API key not configured"
	msgWeatherFailed = "Failed to fetch weather data"
	msgCitiesFailed  = "Failed to fetch cities"
	msgInternal      = "Internal Server Error"
)

var validate = validator.New()

// AppOptions configures the Fiber app built by NewApp.
type AppOptions struct {
	AllowOrigins string
	AccessLog    bool
}

// NewApp builds the Fiber app with middleware and all routes registered.
func NewApp(service *weather.Service, opts AppOptions, logger *slog.Logger) *fiber.App {
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-proxy",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          ErrorHandler(logger),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: "GET,OPTIONS",
	}))

	RegisterRoutes(app, service, logger)
	return app
}

// ErrorHandler renders every error as {"error": "<message>"}. Only *fiber.Error
// messages reach the caller; anything else is logged and reported generically.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := msgInternal

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			msg = e.Message
		} else {
			logger.ErrorContext(c.UserContext(), "unhandled error",
				slog.Any("request_id", c.Locals("requestid")),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}

		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, logger *slog.Logger) {
	h := &handlers{service: service, logger: logger}

	app.Get("/health", h.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/weather", h.weather)
	api.Get("/cities", h.cities)
}

type handlers struct {
	service *weather.Service
	logger  *slog.Logger
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	City string `validate:"required"`
}

func (h *handlers) weather(c *fiber.Ctx) error {
	q := weatherQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return h.fail(c, "weather", weather.ErrMissingCity, msgWeatherFailed)
	}

	d, err := h.service.CurrentWeather(c.UserContext(), q.City)
	if err != nil {
		return h.fail(c, "weather", err, msgWeatherFailed)
	}
	return c.JSON(d)
}

func (h *handlers) cities(c *fiber.Ctx) error {
	cities, err := h.service.SearchCities(c.UserContext(), c.Query("q"))
	if err != nil {
		return h.fail(c, "cities", err, msgCitiesFailed)
	}
	return c.JSON(fiber.Map{"cities": cities})
}

func (h *handlers) health(c *fiber.Ctx) error {
	resp := fiber.Map{
		"status":   "ok",
		"service":  "weather-proxy",
		"upstream": nil,
		"recent":   h.service.RecentProbes(),
	}
	if res, ok := h.service.LatestProbe(); ok {
		resp["upstream"] = res
	}
	return c.JSON(resp)
}

// fail classifies err into a status code and caller-safe message.
// Upstream and unexpected failures are logged and answered with fallback.
func (h *handlers) fail(c *fiber.Ctx, route string, err error, fallback string) error {
	var (
		code int
		msg  string
		kind string
		nf   *weather.NotFoundError
		up   *weather.UpstreamError
	)

	switch {
	case errors.Is(err, weather.ErrMissingCity):
		code, msg, kind = fiber.StatusBadRequest, msgCityRequired, "validation"
	case errors.Is(err, weather.ErrAPIKeyMissing):
		code, msg, kind = fiber.StatusInternalServerError, msgAPIKeyMissing, "configuration"
	case errors.As(err, &nf):
		code, msg, kind = fiber.StatusNotFound, nf.Error(), "not_found"
	case errors.As(err, &up), errors.Is(err, weather.ErrTransport), errors.Is(err, weather.ErrCircuitOpen):
		code, msg, kind = fiber.StatusInternalServerError, fallback, "upstream"
	default:
		code, msg, kind = fiber.StatusInternalServerError, fallback, "unexpected"
	}

	metrics.HandlerFailures.WithLabelValues(route, kind).Inc()

	if code == fiber.StatusInternalServerError {
		h.logger.ErrorContext(c.UserContext(), route+" request failed",
			slog.Any("request_id", c.Locals("requestid")),
			slog.String("kind", kind),
			slog.String("reason", weather.FailureReason(err)),
			slog.Any("error", err),
		)
	}

	return fiber.NewError(code, msg)
}
