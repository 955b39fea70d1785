package handler

import (
	"errors"
	"strings"

	"edumanager/internal/service"
	"edumanager/internal/tabular"
	"edumanager/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError turns a service error into the JSON envelope. Every handler
// ends here on failure so nothing reaches fiber's error handler.
func respondError(c *fiber.Ctx, err error) error {
	var (
		fieldErrs   utils.FieldErrors
		decodeErr   *tabular.DecodeError
		validateErr *tabular.ValidationError
		persistErr  *service.PersistenceError
	)

	switch {
	case errors.As(err, &fieldErrs):
		return utils.DetailedErrorResponse(c, fiber.StatusBadRequest, "Invalid request", fieldErrs)

	case errors.As(err, &decodeErr):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "The file could not be read", decodeErr)

	case errors.Is(err, service.ErrInvalidFileType):
		return utils.ErrorResponse(c, fiber.StatusUnsupportedMediaType, err.Error(), nil)

	case errors.Is(err, service.ErrInvalidPeriod):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unknown period, see /periods", nil)

	case errors.As(err, &validateErr):
		return utils.DetailedErrorResponse(c, fiber.StatusUnprocessableEntity, validateErr.Error(), validateErr)

	case errors.Is(err, tabular.ErrRowOutOfRange),
		errors.Is(err, tabular.ErrReadOnlyCell),
		errors.Is(err, tabular.ErrFieldIndex):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, service.ErrNoResults):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No results have been published for this class yet", nil)

	case errors.Is(err, service.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, capitalize(err.Error()), nil)

	case errors.As(err, &persistErr):
		utils.GetLogger().WithError(err).WithField("path", c.Path()).Error("Store operation failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not reach the data store, please retry", nil)
	}

	utils.GetLogger().WithError(err).WithField("path", c.Path()).Error("Request failed")
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", nil)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return utils.FieldErrors{"body": "Invalid request body"}
	}
	return utils.ValidateStruct(out)
}

func sendDownload(c *fiber.Ctx, d *service.Download) error {
	c.Set(fiber.HeaderContentType, d.ContentType)
	c.Attachment(d.FileName)
	return c.Send(d.Data)
}
