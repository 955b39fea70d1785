package handler

import (
	"errors"
	"net/url"
	"strconv"

	"edumanager/internal/models"
	"edumanager/internal/service"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentHandler struct {
	resultsService  *service.ResultsService
	classService    *service.ClassService
	settingsService *service.SettingsService
}

func NewStudentHandler(resultsService *service.ResultsService, classService *service.ClassService, settingsService *service.SettingsService) *StudentHandler {
	return &StudentHandler{
		resultsService:  resultsService,
		classService:    classService,
		settingsService: settingsService,
	}
}

func (h *StudentHandler) Lookup(c *fiber.Ctx) error {
	var req models.StudentLookupRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	student, err := h.resultsService.Lookup(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Student found", student)
}

func (h *StudentHandler) GetResults(c *fiber.Ctx) error {
	results, err := h.resultsService.Results(c.UserContext(), c.Params("cycleId"), c.Params("classId"), c.Params("studentId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, "Results retrieved successfully", results)
}

// gradeCell is one subject of one period, formatted for the results page.
type gradeCell struct {
	Subject    string
	Class      string
	Department string
	Average    string
}

type periodView struct {
	Name   string
	Grades []gradeCell
}

func formatMark(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// school falls back to the defaults when settings cannot be loaded so the
// public pages still render.
func (h *StudentHandler) school(c *fiber.Ctx) *models.SchoolSettings {
	settings, err := h.settingsService.Get(c.UserContext())
	if err != nil {
		utils.GetLogger().WithError(err).Warn("Failed to load school settings")
		return &models.SchoolSettings{Name: "EduManager"}
	}
	return settings
}

func (h *StudentHandler) renderLookup(c *fiber.Ctx, status int, req models.StudentLookupRequest, message string) error {
	cycles, err := h.classService.ListCycles(c.UserContext(), true)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.Status(status).Render("student/lookup", fiber.Map{
		"Title":   "Student Results",
		"School":  h.school(c),
		"Cycles":  cycles,
		"Request": req,
		"Error":   message,
	}, "layouts/main")
}

func (h *StudentHandler) LookupPage(c *fiber.Ctx) error {
	return h.renderLookup(c, fiber.StatusOK, models.StudentLookupRequest{}, "")
}

func (h *StudentHandler) LookupSubmit(c *fiber.Ctx) error {
	var req models.StudentLookupRequest
	if err := c.BodyParser(&req); err != nil {
		return h.renderLookup(c, fiber.StatusBadRequest, req, "Please fill in every field")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return h.renderLookup(c, fiber.StatusBadRequest, req, "Please fill in every field")
	}

	if _, err := h.resultsService.Lookup(c.UserContext(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrNoResults):
			return h.renderLookup(c, fiber.StatusNotFound, req, "No results have been published for this class yet")
		case errors.Is(err, service.ErrNotFound):
			return h.renderLookup(c, fiber.StatusNotFound, req, "No student matches this ID in the selected class")
		}
		return h.renderError(c, err)
	}

	return c.Redirect("/results/" + url.PathEscape(req.CycleID) + "/" + url.PathEscape(req.ClassID) + "/" + url.PathEscape(req.StudentID))
}

func (h *StudentHandler) ResultsPage(c *fiber.Ctx) error {
	results, err := h.resultsService.Results(c.UserContext(), c.Params("cycleId"), c.Params("classId"), c.Params("studentId"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return h.renderLookup(c, fiber.StatusNotFound, models.StudentLookupRequest{
				CycleID:   c.Params("cycleId"),
				ClassID:   c.Params("classId"),
				StudentID: c.Params("studentId"),
			}, "No results found for this student")
		}
		return h.renderError(c, err)
	}

	periods := make([]periodView, 0, len(results.Periods))
	for _, p := range results.Periods {
		view := periodView{Name: models.PeriodName(p.Period)}
		for _, subject := range results.Subjects {
			grade, ok := p.Grades[subject]
			if !ok {
				continue
			}
			view.Grades = append(view.Grades, gradeCell{
				Subject:    subject,
				Class:      formatMark(grade.ClassMark),
				Department: formatMark(grade.DepartmentMark),
				Average:    formatMark(grade.Average),
			})
		}
		periods = append(periods, view)
	}

	return c.Render("student/results", fiber.Map{
		"Title":   "Results of " + results.StudentID,
		"School":  h.school(c),
		"Results": results,
		"Student": results.Student,
		"Periods": periods,
	}, "layouts/main")
}

func (h *StudentHandler) renderError(c *fiber.Ctx, err error) error {
	utils.GetLogger().WithError(err).WithField("path", c.Path()).Error("Results page failed")
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
		"Title":   "Error",
		"Code":    fiber.StatusInternalServerError,
		"Message": "Results are temporarily unavailable, please try again later",
	}, "layouts/main")
}
