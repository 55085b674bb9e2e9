package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/store"
	"github.com/f-kazuma/smardy1210/utils"
)

type UserController struct {
	Store store.Store
	Cfg   *config.Config
}

func NewUserController(st store.Store, cfg *config.Config) *UserController {
	return &UserController{Store: st, Cfg: cfg}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	user, err := uc.Store.Users().GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query store",
		})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"email":    user.Email,
	})
}
