package handler

import (
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	resourceAkun = "Akun"
	akunPageSize = 100
)

type AkunHandler struct {
	chartService *service.ChartService
	excelService *service.ExcelService
}

func NewAkunHandler(chartService *service.ChartService, excelService *service.ExcelService) *AkunHandler {
	return &AkunHandler{
		chartService: chartService,
		excelService: excelService,
	}
}

func (h *AkunHandler) GetAkun(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, akunPageSize)

	akun, total, err := h.chartService.ListAkun(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve akun", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponse(c, listMessage(resourceAkun), "akun", akun, pagination)
}

func (h *AkunHandler) ShowAkun(c *fiber.Ctx) error {
	akun, err := h.chartService.GetAkun(c.Params("id"))
	return respondShow(c, resourceAkun, akun, err)
}

func (h *AkunHandler) CreateAkun(c *fiber.Ctx) error {
	var req models.AkunRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	akun, err := h.chartService.CreateAkun(req)
	if err != nil {
		return respondError(c, resourceAkun, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceAkun), akun)
}

func (h *AkunHandler) UpdateAkun(c *fiber.Ctx) error {
	var req models.AkunRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	akun, err := h.chartService.UpdateAkun(c.Params("id"), req)
	if err != nil {
		return respondError(c, resourceAkun, err)
	}
	return utils.SuccessResponse(c, updatedMessage(resourceAkun), akun)
}

func (h *AkunHandler) DeleteAkun(c *fiber.Ctx) error {
	if err := h.chartService.DeleteAkun(c.Params("id")); err != nil {
		return respondError(c, resourceAkun, err)
	}
	return utils.SuccessResponse(c, deletedMessage(resourceAkun), nil)
}

// ExportChart downloads the whole chart of accounts as xlsx.
func (h *AkunHandler) ExportChart(c *fiber.Ctx) error {
	akun, subAkun, dataAkun, err := h.chartService.Chart()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load chart of accounts", err)
	}

	buf, err := h.excelService.ExportChart(akun, subAkun, dataAkun)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export chart of accounts", err)
	}
	return sendXLSX(c, "chart_of_accounts.xlsx", buf.Bytes())
}

func sendXLSX(c *fiber.Ctx, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(body)
}
