package httperr

import (
	"github.com/gofiber/fiber/v2"

	apiError "github.com/next-trace/scg-xerror/error"
)

// Fiber responds to a fiber request with err as a snapshot JSON body:
//
//	app.Get("/users/:id", func(c *fiber.Ctx) error {
//		user, err := find(c.Params("id"))
//		if err != nil {
//			return httperr.Fiber(c, fiber.StatusNotFound, err)
//		}
//		return c.JSON(user)
//	})
func Fiber(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(apiError.ToSnapshot(err))
}
