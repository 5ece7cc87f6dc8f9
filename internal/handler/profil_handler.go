package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	resourceProfil = "Profil"
	profilPageSize = 100
)

var logoExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".svg": true}

type ProfilHandler struct {
	profilService *service.ProfilService
	cfg           *config.Config
}

func NewProfilHandler(profilService *service.ProfilService, cfg *config.Config) *ProfilHandler {
	return &ProfilHandler{
		profilService: profilService,
		cfg:           cfg,
	}
}

func (h *ProfilHandler) GetProfils(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c, profilPageSize)

	profils, total, err := h.profilService.List(params)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve profil", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponse(c, listMessage(resourceProfil), "profil", profils, pagination)
}

func (h *ProfilHandler) ShowProfil(c *fiber.Ctx) error {
	profil, err := h.profilService.Get(c.Params("id"))
	return respondShow(c, resourceProfil, profil, err)
}

// CreateProfil accepts JSON or multipart form data with an optional logo file.
func (h *ProfilHandler) CreateProfil(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return requestError(c, resourceProfil, err)
	}

	profil, err := h.profilService.Create(*req)
	if err != nil {
		h.discardLogo(req)
		return respondError(c, resourceProfil, err)
	}
	return utils.CreatedResponse(c, createdMessage(resourceProfil), profil)
}

func (h *ProfilHandler) UpdateProfil(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return requestError(c, resourceProfil, err)
	}

	profil, err := h.profilService.Update(c.Params("id"), *req)
	if err != nil {
		h.discardLogo(req)
		return respondError(c, resourceProfil, err)
	}
	return utils.SuccessResponse(c, updatedMessage(resourceProfil), profil)
}

func (h *ProfilHandler) DeleteProfil(c *fiber.Ctx) error {
	if err := h.profilService.Delete(c.Params("id")); err != nil {
		return respondError(c, resourceProfil, err)
	}
	return utils.SuccessResponse(c, deletedMessage(resourceProfil), nil)
}

// parseRequest binds the body and stores an uploaded logo.
func (h *ProfilHandler) parseRequest(c *fiber.Ctx) (*models.ProfilRequest, error) {
	var req models.ProfilRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Logo = nil

	file, err := c.FormFile("logo")
	if err != nil {
		// not multipart, or no logo part
		return &req, nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !logoExtensions[ext] {
		return nil, &service.ValidationError{Fields: map[string]string{
			"logo": "The logo field must be a file of type: jpeg, png, jpg, gif, svg.",
		}}
	}
	if file.Size > int64(h.cfg.UploadMaxSize) {
		return nil, &service.ValidationError{Fields: map[string]string{
			"logo": fmt.Sprintf("The logo field must not be greater than %d kilobytes.", h.cfg.UploadMaxSize/1024),
		}}
	}

	if err := os.MkdirAll(h.profilService.LogoDir(), 0o755); err != nil {
		return nil, fmt.Errorf("prepare logo storage: %w", err)
	}
	name := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(h.profilService.LogoDir(), name)); err != nil {
		return nil, fmt.Errorf("save logo: %w", err)
	}
	req.Logo = &name
	return &req, nil
}

func (h *ProfilHandler) discardLogo(req *models.ProfilRequest) {
	if req.Logo != nil {
		h.profilService.RemoveLogo(*req.Logo)
	}
}
