package validate

import (
	"driftsip_admin/constants"
	"driftsip_admin/model"
	"driftsip_admin/utils"

	"github.com/gofiber/fiber/v2"
)

// Login middleware validate body đăng nhập
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_BODY, err)
		}
		if err := v.Struct(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_BODY, err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}
