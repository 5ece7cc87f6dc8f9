package handler

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const resourceJurnal = "Jurnal"

type JurnalHandler struct {
	jurnalService *service.JurnalService
	excelService  *service.ExcelService
	cfg           *config.Config
}

func NewJurnalHandler(jurnalService *service.JurnalService, excelService *service.ExcelService, cfg *config.Config) *JurnalHandler {
	return &JurnalHandler{
		jurnalService: jurnalService,
		excelService:  excelService,
		cfg:           cfg,
	}
}

// GetJurnal lists the whole journal by tanggal. It is not paginated.
func (h *JurnalHandler) GetJurnal(c *fiber.Ctx) error {
	rows, err := h.jurnalService.List()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve jurnal", err)
	}
	return utils.SuccessResponse(c, "List Data Jurnals", rows)
}

func (h *JurnalHandler) ShowJurnal(c *fiber.Ctx) error {
	jurnal, err := h.jurnalService.Get(c.Params("id"))
	return respondShow(c, resourceJurnal, jurnal, err)
}

func (h *JurnalHandler) CreateJurnal(c *fiber.Ctx) error {
	var req models.JurnalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	jurnal, err := h.jurnalService.Create(req, actorID(c))
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceJurnal), jurnal)
}

// CreateBulkJurnal stores several entries at once; any invalid entry rejects
// the whole batch.
func (h *JurnalHandler) CreateBulkJurnal(c *fiber.Ctx) error {
	var req models.BulkJurnalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	entries, err := h.jurnalService.CreateMany(req, actorID(c))
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceJurnal), entries)
}

func (h *JurnalHandler) UpdateJurnal(c *fiber.Ctx) error {
	var req models.JurnalRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	jurnal, err := h.jurnalService.Update(c.Params("id"), req)
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.SuccessResponse(c, updatedMessage(resourceJurnal), jurnal)
}

func (h *JurnalHandler) DeleteJurnal(c *fiber.Ctx) error {
	if err := h.jurnalService.Delete(c.Params("id")); err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.SuccessResponse(c, deletedMessage(resourceJurnal), nil)
}

func (h *JurnalHandler) GetByDataAkun(c *fiber.Ctx) error {
	rows, err := h.jurnalService.ListByDataAkun(c.Params("id"))
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.SuccessResponse(c, detailMessage(resourceJurnal), rows)
}

// GetByDataAkunBetween filters by ?start_date=&end_date=; the range applies
// only when both are present.
func (h *JurnalHandler) GetByDataAkunBetween(c *fiber.Ctx) error {
	rows, err := h.jurnalService.ListByDataAkunBetween(c.Params("id"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.SuccessResponse(c, detailMessage(resourceJurnal), rows)
}

func (h *JurnalHandler) GetByProfil(c *fiber.Ctx) error {
	rows, err := h.jurnalService.ListByProfil(c.Params("id"))
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.SuccessResponse(c, detailMessage(resourceJurnal), rows)
}

// ExportJurnal downloads the journal as xlsx, optionally for one account
// (?id_data_akun=) and period (?start_date=&end_date=).
func (h *JurnalHandler) ExportJurnal(c *fiber.Ctx) error {
	rows, err := h.jurnalService.Export(c.Query("id_data_akun"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}

	buf, err := h.excelService.ExportJurnal(rows)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export jurnal", err)
	}
	filename := fmt.Sprintf("jurnal_%s.xlsx", time.Now().Format("20060102_150405"))
	return sendXLSX(c, filename, buf.Bytes())
}

// ImportJurnal stores every row of an uploaded xlsx sheet in one batch. Like
// /banyakjurnal, a single invalid row rejects the whole file.
func (h *JurnalHandler) ImportJurnal(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, resourceJurnal, &service.ValidationError{Fields: map[string]string{
			"file": "The file field is required.",
		}})
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".xlsx" {
		return respondError(c, resourceJurnal, &service.ValidationError{Fields: map[string]string{
			"file": "The file must be a file of type: xlsx.",
		}})
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return respondError(c, resourceJurnal, &service.ValidationError{Fields: map[string]string{
			"file": "The file may not be greater than the upload limit.",
		}})
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read upload", err)
	}
	defer src.Close()

	reqs, err := h.excelService.ParseJurnalImport(src)
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}

	entries, err := h.jurnalService.CreateMany(models.BulkJurnalRequest{Jurnal: reqs}, actorID(c))
	if err != nil {
		return respondError(c, resourceJurnal, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceJurnal), entries)
}

// ImportTemplate downloads an empty import sheet.
func (h *JurnalHandler) ImportTemplate(c *fiber.Ctx) error {
	buf, err := h.excelService.JurnalTemplate()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build import template", err)
	}
	return sendXLSX(c, "jurnal_import.xlsx", buf.Bytes())
}
