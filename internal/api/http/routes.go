package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/astrodash/internal/forecast"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard page and the JSON API into the Fiber app.
// The app must be configured with NewViews.
func RegisterRoutes(app *fiber.App, dash *forecast.Dashboard, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app.Get("/", func(c *fiber.Ctx) error {
		f, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := c.Render("dashboard", dash.View(f)); err != nil {
			logger.Error("failed to render dashboard page", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
		}
		return nil
	})

	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		f, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(dash.View(f))
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"session": dash.ID(),
			"state":   dash.State(),
			"records": dash.Records(),
		})
	})

	v1.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(dash.Stats())
	})
}

// filterQuery holds the table filter query parameters.
type filterQuery struct {
	Query    string
	MinPhase int `validate:"min=0,max=7"`
}

func (q filterQuery) toFilter() forecast.Filter {
	return forecast.Filter{
		Query:    q.Query,
		MinPhase: q.MinPhase,
	}
}

func parseFilterQuery(c *fiber.Ctx) (forecast.Filter, error) {
	var q filterQuery

	q.Query = c.Query("q")

	if raw := c.Query("phase"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return forecast.Filter{}, fiber.NewError(fiber.StatusBadRequest, "phase must be an integer between 0 and 7")
		}
		q.MinPhase = n
	}

	if err := validate.Struct(q); err != nil {
		return forecast.Filter{}, err
	}

	return q.toFilter(), nil
}

// ErrorHandler renders every error as a JSON body with the matching status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
