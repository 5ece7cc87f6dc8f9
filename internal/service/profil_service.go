package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProfilService manages roles and user profiles.
type ProfilService struct {
	roleStore   RoleStore
	profilStore ProfilStore
	cfg         *config.Config
	logger      *logrus.Logger
}

func NewProfilService(roleStore RoleStore, profilStore ProfilStore, cfg *config.Config, logger *logrus.Logger) *ProfilService {
	return &ProfilService{
		roleStore:   roleStore,
		profilStore: profilStore,
		cfg:         cfg,
		logger:      logger,
	}
}

// LogoDir is where uploaded profile logos are stored.
func (s *ProfilService) LogoDir() string {
	return filepath.Join(s.cfg.UploadPath, "logos")
}

// Role

func (s *ProfilService) ListRoles(params utils.PaginationParams) ([]models.Role, int, error) {
	return s.roleStore.FindAll(params.Limit, params.Offset())
}

func (s *ProfilService) GetRole(id string) (*models.Role, error) {
	return s.roleStore.FindByID(id)
}

func (s *ProfilService) CreateRole(req models.RoleRequest) (*models.Role, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	role := &models.Role{ID: uuid.NewString(), Role: req.Role}
	if err := s.roleStore.Create(role); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

// EnsureRole returns the role with the given name, creating it when absent.
func (s *ProfilService) EnsureRole(name string) (*models.Role, bool, error) {
	role, err := s.roleStore.FindByName(name)
	if err == nil {
		return role, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("load role %q: %w", name, err)
	}
	role, err = s.CreateRole(models.RoleRequest{Role: name})
	if err != nil {
		return nil, false, err
	}
	return role, true, nil
}

func (s *ProfilService) UpdateRole(id string, req models.RoleRequest) (*models.Role, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	role, err := s.roleStore.FindByID(id)
	if err != nil {
		return nil, err
	}
	role.Role = req.Role
	if err := s.roleStore.Update(role); err != nil {
		return nil, fmt.Errorf("update role %s: %w", id, err)
	}
	return role, nil
}

// DeleteRole removes the role and every profil holding it.
func (s *ProfilService) DeleteRole(id string) error {
	if _, err := s.roleStore.FindByID(id); err != nil {
		return err
	}
	if err := s.roleStore.Delete(id); err != nil {
		return fmt.Errorf("delete role %s: %w", id, err)
	}
	s.logger.WithField("id_role", id).Info("Role deleted")
	return nil
}

// Profil

func (s *ProfilService) List(params utils.PaginationParams) ([]models.Profil, int, error) {
	profils, total, err := s.profilStore.FindAll(params.Limit, params.Offset(), params.Search)
	if err != nil {
		return nil, 0, err
	}
	for i := range profils {
		s.decorate(&profils[i])
	}
	return profils, total, nil
}

func (s *ProfilService) Get(id string) (*models.Profil, error) {
	profil, err := s.profilStore.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.decorate(profil)
	return profil, nil
}

func (s *ProfilService) Create(req models.ProfilRequest) (*models.Profil, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Password == nil || *req.Password == "" {
		return nil, fieldError("password", "The password field is required.")
	}
	if err := s.checkProfil(req, ""); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(*req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profil := &models.Profil{
		ID:       uuid.NewString(),
		RoleID:   req.RoleID,
		Nama:     req.Nama,
		Username: req.Username,
		Email:    emptyToNil(req.Email),
		Password: hash,
		Alamat:   emptyToNil(req.Alamat),
		Logo:     emptyToNil(req.Logo),
	}
	if err := s.profilStore.Create(profil); err != nil {
		return nil, s.writeError(err)
	}

	s.logger.WithFields(logrus.Fields{"id_profil": profil.ID, "username": profil.Username}).Info("Profil created")
	return s.Get(profil.ID)
}

// Update replaces the profile. password, email, alamat and logo keep their
// stored values when omitted; a replaced logo file is removed.
func (s *ProfilService) Update(id string, req models.ProfilRequest) (*models.Profil, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	profil, err := s.profilStore.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkProfil(req, id); err != nil {
		return nil, err
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		profil.Password = hash
	}

	var oldLogo *string
	if req.Logo != nil && *req.Logo != "" {
		oldLogo = profil.Logo
		profil.Logo = req.Logo
	}
	if req.Email != nil {
		profil.Email = emptyToNil(req.Email)
	}
	if req.Alamat != nil {
		profil.Alamat = req.Alamat
	}
	profil.RoleID = req.RoleID
	profil.Nama = req.Nama
	profil.Username = req.Username

	if err := s.profilStore.Update(profil); err != nil {
		return nil, s.writeError(err)
	}
	if oldLogo != nil && *oldLogo != *profil.Logo {
		s.RemoveLogo(*oldLogo)
	}
	return s.Get(id)
}

func (s *ProfilService) Delete(id string) error {
	profil, err := s.profilStore.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.profilStore.Delete(id); err != nil {
		return fmt.Errorf("delete profil %s: %w", id, err)
	}
	if profil.Logo != nil {
		s.RemoveLogo(*profil.Logo)
	}
	s.logger.WithField("id_profil", id).Info("Profil deleted")
	return nil
}

// RemoveLogo deletes a stored logo file. Failures are only logged.
func (s *ProfilService) RemoveLogo(name string) {
	if name == "" {
		return
	}
	path := filepath.Join(s.LogoDir(), filepath.Base(name))
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.WithError(err).WithField("path", path).Warn("Failed to remove logo")
	}
}

// checkProfil verifies the role reference and username/email uniqueness.
// exceptID excludes the profil being updated.
func (s *ProfilService) checkProfil(req models.ProfilRequest, exceptID string) error {
	fields := map[string]string{}

	if _, err := s.roleStore.FindByID(req.RoleID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("load role: %w", err)
		}
		fields["id_role"] = invalidReference("id_role")
	}

	taken, err := s.profilStore.UsernameTaken(req.Username, exceptID)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		fields["username"] = "The username has already been taken."
	}

	if req.Email != nil && *req.Email != "" {
		taken, err := s.profilStore.EmailTaken(*req.Email, exceptID)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			fields["email"] = "The email has already been taken."
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// writeError covers the races checkProfil cannot see.
func (s *ProfilService) writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return fieldError("username", "The username or email has already been taken.")
	case errors.Is(err, repository.ErrForeignKey):
		return fieldError("id_role", invalidReference("id_role"))
	}
	return fmt.Errorf("save profil: %w", err)
}

func (s *ProfilService) decorate(p *models.Profil) {
	if p.Logo != nil {
		p.LogoURL = s.cfg.LogoURL(*p.Logo)
	}
}

func emptyToNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
