package handler

import (
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const resourceDataAkun = "Data Akun"

type DataAkunHandler struct {
	chartService *service.ChartService
}

func NewDataAkunHandler(chartService *service.ChartService) *DataAkunHandler {
	return &DataAkunHandler{chartService: chartService}
}

func (h *DataAkunHandler) GetDataAkun(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, akunPageSize)

	dataAkun, total, err := h.chartService.ListDataAkun(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve data akun", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponse(c, listMessage(resourceDataAkun), "data_akun", dataAkun, pagination)
}

func (h *DataAkunHandler) ShowDataAkun(c *fiber.Ctx) error {
	dataAkun, err := h.chartService.GetDataAkun(c.Params("id"))
	return respondShow(c, resourceDataAkun, dataAkun, err)
}

func (h *DataAkunHandler) CreateDataAkun(c *fiber.Ctx) error {
	var req models.DataAkunRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	dataAkun, err := h.chartService.CreateDataAkun(req)
	if err != nil {
		return respondError(c, resourceDataAkun, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceDataAkun), dataAkun)
}

func (h *DataAkunHandler) UpdateDataAkun(c *fiber.Ctx) error {
	var req models.DataAkunRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	dataAkun, err := h.chartService.UpdateDataAkun(c.Params("id"), req)
	if err != nil {
		return respondError(c, resourceDataAkun, err)
	}
	return utils.SuccessResponse(c, updatedMessage(resourceDataAkun), dataAkun)
}

func (h *DataAkunHandler) DeleteDataAkun(c *fiber.Ctx) error {
	if err := h.chartService.DeleteDataAkun(c.Params("id")); err != nil {
		return respondError(c, resourceDataAkun, err)
	}
	return utils.SuccessResponse(c, deletedMessage(resourceDataAkun), nil)
}
