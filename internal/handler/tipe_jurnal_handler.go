package handler

import (
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	resourceTipeJurnal = "Tipe Jurnal"
	tipeJurnalPageSize = 50
)

type TipeJurnalHandler struct {
	jurnalService *service.JurnalService
}

func NewTipeJurnalHandler(jurnalService *service.JurnalService) *TipeJurnalHandler {
	return &TipeJurnalHandler{jurnalService: jurnalService}
}

func (h *TipeJurnalHandler) GetTipeJurnal(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, tipeJurnalPageSize)

	tipe, total, err := h.jurnalService.ListTipe(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve tipe jurnal", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponse(c, listMessage(resourceTipeJurnal), "tipe_jurnal", tipe, pagination)
}

func (h *TipeJurnalHandler) ShowTipeJurnal(c *fiber.Ctx) error {
	tipe, err := h.jurnalService.GetTipe(c.Params("id"))
	return respondShow(c, resourceTipeJurnal, tipe, err)
}

func (h *TipeJurnalHandler) CreateTipeJurnal(c *fiber.Ctx) error {
	var req models.TipeJurnalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	tipe, err := h.jurnalService.CreateTipe(req)
	if err != nil {
		return respondError(c, resourceTipeJurnal, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceTipeJurnal), tipe)
}

func (h *TipeJurnalHandler) UpdateTipeJurnal(c *fiber.Ctx) error {
	var req models.TipeJurnalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	tipe, err := h.jurnalService.UpdateTipe(c.Params("id"), req)
	if err != nil {
		return respondError(c, resourceTipeJurnal, err)
	}
	return utils.SuccessResponse(c, updatedMessage(resourceTipeJurnal), tipe)
}

func (h *TipeJurnalHandler) DeleteTipeJurnal(c *fiber.Ctx) error {
	if err := h.jurnalService.DeleteTipe(c.Params("id")); err != nil {
		return respondError(c, resourceTipeJurnal, err)
	}
	return utils.SuccessResponse(c, deletedMessage(resourceTipeJurnal), nil)
}
