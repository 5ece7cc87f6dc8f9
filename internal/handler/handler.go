package handler

import (
	"errors"
	"fmt"

	"bukubesar-api/internal/middleware"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Response messages follow the API's established wording per resource.
func listMessage(resource string) string {
	return "List Data " + resource
}

func detailMessage(resource string) string {
	return fmt.Sprintf("Detail Data %s!", resource)
}

func createdMessage(resource string) string {
	return fmt.Sprintf("Data %s Berhasil Ditambahkan!", resource)
}

func updatedMessage(resource string) string {
	return fmt.Sprintf("Data %s Berhasil Diubah!", resource)
}

func deletedMessage(resource string) string {
	return fmt.Sprintf("Data %s Berhasil Dihapus!", resource)
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, resource string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.ValidationErrorResponse(c, verr.Fields)
	case errors.Is(err, repository.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, resource+" not found", nil)
	case errors.Is(err, service.ErrJurnalNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error(), nil)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process "+resource, err)
}

// respondShow answers a direct id lookup. A missing row is a success with a
// null payload, which existing clients rely on.
func respondShow(c *fiber.Ctx, resource string, data interface{}, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.SuccessResponse(c, detailMessage(resource), nil)
	}
	if err != nil {
		return respondError(c, resource, err)
	}
	return utils.SuccessResponse(c, detailMessage(resource), data)
}

// requestError reports a failure to read the request itself.
func requestError(c *fiber.Ctx, resource string, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return utils.ErrorResponse(c, ferr.Code, ferr.Message, nil)
	}
	return respondError(c, resource, err)
}

func invalidBody(c *fiber.Ctx, err error) error {
	return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
}

// actorID is the authenticated profil, empty when auth is disabled.
func actorID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalProfilID).(string)
	return id
}
