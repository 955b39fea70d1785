package handler

import (
	"strconv"

	"edumanager/internal/models"
	"edumanager/internal/service"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type GridHandler struct {
	gridService *service.GridService
}

func NewGridHandler(gridService *service.GridService) *GridHandler {
	return &GridHandler{gridService: gridService}
}

// gridView adds the new-row positions next to the session state.
type gridView struct {
	*tabular.Grid
	NewRows []int `json:"new_rows"`
}

func viewOf(g *tabular.Grid) gridView {
	return gridView{Grid: g, NewRows: g.NewRowIndices()}
}

func (h *GridHandler) OpenSession(c *fiber.Ctx) error {
	grid, err := h.gridService.Open(c.UserContext(), c.Params("fileId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.CreatedResponse(c, "Edit session opened", viewOf(grid))
}

func (h *GridHandler) GetSession(c *fiber.Ctx) error {
	grid, err := h.gridService.Get(c.UserContext(), c.Params("fileId"), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Edit session retrieved", viewOf(grid))
}

func (h *GridHandler) UpdateCell(c *fiber.Ctx) error {
	var req models.CellUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	grid, err := h.gridService.SetCell(c.UserContext(), c.Params("fileId"), c.Params("sessionId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Cell updated", viewOf(grid))
}

func (h *GridHandler) AddRow(c *fiber.Ctx) error {
	grid, err := h.gridService.AddRow(c.UserContext(), c.Params("fileId"), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Row added", viewOf(grid))
}

func (h *GridHandler) DeleteRow(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return respondError(c, utils.FieldErrors{"index": "index must be a non-negative integer"})
	}

	grid, err := h.gridService.DeleteRow(c.UserContext(), c.Params("fileId"), c.Params("sessionId"), index)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Row deleted", viewOf(grid))
}

func (h *GridHandler) SaveSession(c *fiber.Ctx) error {
	file, err := h.gridService.Save(c.UserContext(), c.Params("fileId"), c.Params("sessionId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Changes saved successfully", file)
}

func (h *GridHandler) DiscardSession(c *fiber.Ctx) error {
	if err := h.gridService.Discard(c.UserContext(), c.Params("fileId"), c.Params("sessionId")); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Edit session discarded", nil)
}
