package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DecorateWithBodyEx parses and validates the request body before handing
// it to the wrapped handler. Parse or validation failures end the request
// with a 400.
func DecorateWithBodyEx[T any](v *validator.Validate, h func(c *fiber.Ctx, req *T) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)

		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := v.StructCtx(c.Context(), req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return h(c, req)
	}
}
