package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"heatindex-alert/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the watch-mode HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, results *store.ResultStore) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	v1.Get("/checks", func(c *fiber.Ctx) error {
		var q checksQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"checks": results.Recent(q.Limit),
		})
	})

	v1.Get("/checks/latest", func(c *fiber.Ctx) error {
		latest, err := results.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no checks completed yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read check history")
		}
		return c.JSON(latest)
	})
}

// checksQuery holds query parameters for the check-history endpoint.
type checksQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

func (q *checksQuery) bind(c *fiber.Ctx) error {
	q.Limit = c.QueryInt("limit", 20)
	return validate.Struct(q)
}
