package handler

import (
	"errors"

	"driftsip_admin/constants"
	"driftsip_admin/database"
	"driftsip_admin/helper"
	"driftsip_admin/model"
	"driftsip_admin/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func Login(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_BODY, nil)
	}

	var account model.Account
	if err := database.DB.Where("username = ?", input.Username).First(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_LOGIN, errors.New("account not found"))
	}

	if !account.IsActive {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_LOGIN, errors.New("account disabled"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_LOGIN, err)
	}

	tokens, err := helper.GenerateTokens(account)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không tạo được token", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tokens)
}

func RefreshToken(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_BODY, err)
	}

	accountId, err := helper.ParseRefreshToken(body.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	var account model.Account
	if err := database.DB.First(&account, accountId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	tokens, err := helper.GenerateTokens(account)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không tạo được token", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tokens)
}
