package handler

import (
	"edumanager/internal/models"
	"edumanager/internal/service"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ClassHandler struct {
	classService *service.ClassService
}

func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

func (h *ClassHandler) GetCycles(c *fiber.Ctx) error {
	cycles, err := h.classService.ListCycles(c.UserContext(), false)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Cycles retrieved successfully", cycles)
}

// GetPublicCycles lists what the student lookup form may offer.
func (h *ClassHandler) GetPublicCycles(c *fiber.Ctx) error {
	cycles, err := h.classService.ListCycles(c.UserContext(), true)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Cycles retrieved successfully", cycles)
}

func (h *ClassHandler) CreateCycle(c *fiber.Ctx) error {
	var req models.CycleRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	cycle, err := h.classService.CreateCycle(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.CreatedResponse(c, "Cycle created successfully", cycle)
}

func (h *ClassHandler) UpdateCycle(c *fiber.Ctx) error {
	var req models.CycleRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	cycle, err := h.classService.UpdateCycle(c.UserContext(), c.Params("cycleId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Cycle updated successfully", cycle)
}

func (h *ClassHandler) DeleteCycle(c *fiber.Ctx) error {
	if err := h.classService.DeleteCycle(c.UserContext(), c.Params("cycleId")); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Cycle deleted successfully", nil)
}

func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	class, err := h.classService.GetClass(c.UserContext(), c.Params("cycleId"), c.Params("classId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Class retrieved successfully", class)
}

func (h *ClassHandler) CreateClass(c *fiber.Ctx) error {
	var req models.ClassRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	class, err := h.classService.CreateClass(c.UserContext(), c.Params("cycleId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.CreatedResponse(c, "Class created successfully", class)
}

func (h *ClassHandler) UpdateClass(c *fiber.Ctx) error {
	var req models.ClassRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	class, err := h.classService.UpdateClass(c.UserContext(), c.Params("cycleId"), c.Params("classId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Class updated successfully", class)
}

func (h *ClassHandler) DeleteClass(c *fiber.Ctx) error {
	if err := h.classService.DeleteClass(c.UserContext(), c.Params("cycleId"), c.Params("classId")); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Class deleted successfully", nil)
}
