package handler

import (
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	resourceRole = "Role"
	rolePageSize = 5
)

type RoleHandler struct {
	profilService *service.ProfilService
}

func NewRoleHandler(profilService *service.ProfilService) *RoleHandler {
	return &RoleHandler{profilService: profilService}
}

// GetRoles lists roles newest first.
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, rolePageSize)

	roles, total, err := h.profilService.ListRoles(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve roles", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponse(c, listMessage(resourceRole), "role", roles, pagination)
}

func (h *RoleHandler) ShowRole(c *fiber.Ctx) error {
	role, err := h.profilService.GetRole(c.Params("id"))
	return respondShow(c, resourceRole, role, err)
}

func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req models.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	role, err := h.profilService.CreateRole(req)
	if err != nil {
		return respondError(c, resourceRole, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceRole), role)
}

func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	var req models.RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	role, err := h.profilService.UpdateRole(c.Params("id"), req)
	if err != nil {
		return respondError(c, resourceRole, err)
	}
	return utils.SuccessResponse(c, updatedMessage(resourceRole), role)
}

func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	if err := h.profilService.DeleteRole(c.Params("id")); err != nil {
		return respondError(c, resourceRole, err)
	}
	return utils.SuccessResponse(c, deletedMessage(resourceRole), nil)
}
