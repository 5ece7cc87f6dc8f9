package handler

import (
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const resourceSubAkun = "Sub Akun"

type SubAkunHandler struct {
	chartService *service.ChartService
}

func NewSubAkunHandler(chartService *service.ChartService) *SubAkunHandler {
	return &SubAkunHandler{chartService: chartService}
}

func (h *SubAkunHandler) GetSubAkun(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, akunPageSize)

	subAkun, total, err := h.chartService.ListSubAkun(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sub akun", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponse(c, listMessage(resourceSubAkun), "sub_akun", subAkun, pagination)
}

func (h *SubAkunHandler) ShowSubAkun(c *fiber.Ctx) error {
	subAkun, err := h.chartService.GetSubAkun(c.Params("id"))
	return respondShow(c, resourceSubAkun, subAkun, err)
}

func (h *SubAkunHandler) CreateSubAkun(c *fiber.Ctx) error {
	var req models.SubAkunRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	subAkun, err := h.chartService.CreateSubAkun(req)
	if err != nil {
		return respondError(c, resourceSubAkun, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceSubAkun), subAkun)
}

func (h *SubAkunHandler) UpdateSubAkun(c *fiber.Ctx) error {
	var req models.SubAkunRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	subAkun, err := h.chartService.UpdateSubAkun(c.Params("id"), req)
	if err != nil {
		return respondError(c, resourceSubAkun, err)
	}
	return utils.SuccessResponse(c, updatedMessage(resourceSubAkun), subAkun)
}

func (h *SubAkunHandler) DeleteSubAkun(c *fiber.Ctx) error {
	if err := h.chartService.DeleteSubAkun(c.Params("id")); err != nil {
		return respondError(c, resourceSubAkun, err)
	}
	return utils.SuccessResponse(c, deletedMessage(resourceSubAkun), nil)
}
