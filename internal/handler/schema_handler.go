package handler

import (
	"edumanager/internal/models"
	"edumanager/internal/service"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SchemaHandler struct {
	schemaService *service.SchemaService
}

func NewSchemaHandler(schemaService *service.SchemaService) *SchemaHandler {
	return &SchemaHandler{schemaService: schemaService}
}

func (h *SchemaHandler) GetSchema(c *fiber.Ctx) error {
	view, err := h.schemaService.Get(c.UserContext(), c.Params("classId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Schema retrieved successfully", view)
}

func (h *SchemaHandler) SaveSchema(c *fiber.Ctx) error {
	var req models.SchemaRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	view, err := h.schemaService.Save(c.UserContext(), c.Params("classId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Schema saved successfully", view)
}

func (h *SchemaHandler) ReorderSchema(c *fiber.Ctx) error {
	var req models.ReorderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	view, err := h.schemaService.Reorder(c.UserContext(), c.Params("classId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Schema reordered successfully", view)
}
