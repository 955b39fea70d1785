package handler

import (
	"edumanager/internal/models"
	"edumanager/internal/service"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Settings retrieved successfully", settings)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req models.SchoolSettings
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	settings, err := h.settingsService.Update(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Settings updated successfully", settings)
}
