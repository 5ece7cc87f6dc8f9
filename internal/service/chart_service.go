package service

import (
	"errors"
	"fmt"

	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ChartService manages the chart of accounts: akun, sub akun and data akun.
// Child kode values are assigned here before anything is persisted.
type ChartService struct {
	akunStore     AkunStore
	subAkunStore  SubAkunStore
	dataAkunStore DataAkunStore
	logger        *logrus.Logger
}

func NewChartService(akunStore AkunStore, subAkunStore SubAkunStore, dataAkunStore DataAkunStore, logger *logrus.Logger) *ChartService {
	return &ChartService{
		akunStore:     akunStore,
		subAkunStore:  subAkunStore,
		dataAkunStore: dataAkunStore,
		logger:        logger,
	}
}

// Akun

func (s *ChartService) ListAkun(params utils.PaginationParams) ([]models.Akun, int, error) {
	return s.akunStore.FindAll(params.Limit, params.Offset(), params.Search)
}

func (s *ChartService) GetAkun(id string) (*models.Akun, error) {
	return s.akunStore.FindByID(id)
}

func (s *ChartService) CreateAkun(req models.AkunRequest) (*models.Akun, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	akun := &models.Akun{
		ID:   uuid.NewString(),
		Nama: req.Nama,
		Kode: *req.Kode,
	}
	if err := s.akunStore.Create(akun); err != nil {
		return nil, fmt.Errorf("create akun: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"id_akun": akun.ID, "kode": akun.Kode}).Info("Akun created")
	return akun, nil
}

func (s *ChartService) UpdateAkun(id string, req models.AkunRequest) (*models.Akun, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	akun, err := s.akunStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	akun.Nama = req.Nama
	akun.Kode = *req.Kode
	if err := s.akunStore.Update(akun); err != nil {
		return nil, fmt.Errorf("update akun %s: %w", id, err)
	}
	return akun, nil
}

// DeleteAkun removes the akun together with its sub accounts, their data
// accounts and every journal entry posted against those.
func (s *ChartService) DeleteAkun(id string) error {
	if _, err := s.akunStore.FindByID(id); err != nil {
		return err
	}
	if err := s.akunStore.Delete(id); err != nil {
		return fmt.Errorf("delete akun %s: %w", id, err)
	}
	s.logger.WithField("id_akun", id).Info("Akun deleted")
	return nil
}

// SubAkun

func (s *ChartService) ListSubAkun(params utils.PaginationParams) ([]models.SubAkun, int, error) {
	return s.subAkunStore.FindAll(params.Limit, params.Offset(), params.Search)
}

func (s *ChartService) GetSubAkun(id string) (*models.SubAkun, error) {
	return s.subAkunStore.FindByID(id)
}

func (s *ChartService) CreateSubAkun(req models.SubAkunRequest) (*models.SubAkun, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	kode, err := s.nextSubAkunKode(req.AkunID, req.Nama)
	if err != nil {
		return nil, err
	}

	subAkun := &models.SubAkun{
		ID:     uuid.NewString(),
		AkunID: req.AkunID,
		Nama:   req.Nama,
		Kode:   kode,
	}
	if err := s.subAkunStore.Create(subAkun); err != nil {
		return nil, referenceError(err, "id_akun")
	}

	s.logger.WithFields(logrus.Fields{"id_sub_akun": subAkun.ID, "kode": kode}).Info("Sub akun created")
	return s.subAkunStore.FindByID(subAkun.ID)
}

// UpdateSubAkun replaces nama and parent. kode is only recomputed when the
// sub account moves to another akun.
func (s *ChartService) UpdateSubAkun(id string, req models.SubAkunRequest) (*models.SubAkun, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	subAkun, err := s.subAkunStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.AkunID != subAkun.AkunID {
		kode, err := s.nextSubAkunKode(req.AkunID, req.Nama)
		if err != nil {
			return nil, err
		}
		s.logger.WithFields(logrus.Fields{
			"id_sub_akun": id,
			"from":        subAkun.AkunID,
			"to":          req.AkunID,
			"kode":        kode,
		}).Info("Sub akun moved")
		subAkun.Kode = kode
	}
	subAkun.AkunID = req.AkunID
	subAkun.Nama = req.Nama

	if err := s.subAkunStore.Update(subAkun); err != nil {
		return nil, referenceError(err, "id_akun")
	}
	return s.subAkunStore.FindByID(id)
}

func (s *ChartService) DeleteSubAkun(id string) error {
	if _, err := s.subAkunStore.FindByID(id); err != nil {
		return err
	}
	if err := s.subAkunStore.Delete(id); err != nil {
		return fmt.Errorf("delete sub akun %s: %w", id, err)
	}
	return nil
}

func (s *ChartService) nextSubAkunKode(akunID, nama string) (int, error) {
	parent, err := s.akunStore.FindByID(akunID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("load akun %s: %w", akunID, err)
	}
	count, err := s.subAkunStore.CountByAkun(akunID)
	if err != nil {
		return 0, fmt.Errorf("count sub akun of %s: %w", akunID, err)
	}
	return SubAkunKode(parent, nama, count), nil
}

// DataAkun

func (s *ChartService) ListDataAkun(params utils.PaginationParams) ([]models.DataAkun, int, error) {
	return s.dataAkunStore.FindAll(params.Limit, params.Offset(), params.Search)
}

func (s *ChartService) GetDataAkun(id string) (*models.DataAkun, error) {
	return s.dataAkunStore.FindByID(id)
}

func (s *ChartService) CreateDataAkun(req models.DataAkunRequest) (*models.DataAkun, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	kode, err := s.nextDataAkunKode(req.SubAkunID)
	if err != nil {
		return nil, err
	}

	dataAkun := &models.DataAkun{
		ID:        uuid.NewString(),
		SubAkunID: req.SubAkunID,
		Nama:      req.Nama,
		Kode:      kode,
		Debit:     nullDecimal(req.Debit),
		Kredit:    nullDecimal(req.Kredit),
	}
	if err := s.dataAkunStore.Create(dataAkun); err != nil {
		return nil, referenceError(err, "id_sub_akun")
	}

	s.logger.WithFields(logrus.Fields{"id_data_akun": dataAkun.ID, "kode": kode}).Info("Data akun created")
	return s.dataAkunStore.FindByID(dataAkun.ID)
}

// UpdateDataAkun keeps the stored debit and kredit when the request omits them.
func (s *ChartService) UpdateDataAkun(id string, req models.DataAkunRequest) (*models.DataAkun, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	dataAkun, err := s.dataAkunStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.SubAkunID != dataAkun.SubAkunID {
		kode, err := s.nextDataAkunKode(req.SubAkunID)
		if err != nil {
			return nil, err
		}
		dataAkun.Kode = kode
	}
	dataAkun.SubAkunID = req.SubAkunID
	dataAkun.Nama = req.Nama
	if req.Debit != nil {
		dataAkun.Debit = nullDecimal(req.Debit)
	}
	if req.Kredit != nil {
		dataAkun.Kredit = nullDecimal(req.Kredit)
	}

	if err := s.dataAkunStore.Update(dataAkun); err != nil {
		return nil, referenceError(err, "id_sub_akun")
	}
	return s.dataAkunStore.FindByID(id)
}

func (s *ChartService) DeleteDataAkun(id string) error {
	if _, err := s.dataAkunStore.FindByID(id); err != nil {
		return err
	}
	if err := s.dataAkunStore.Delete(id); err != nil {
		return fmt.Errorf("delete data akun %s: %w", id, err)
	}
	return nil
}

func (s *ChartService) nextDataAkunKode(subAkunID string) (int, error) {
	base := 0
	parent, err := s.subAkunStore.FindByID(subAkunID)
	switch {
	case err == nil:
		base = parent.Kode
	case !errors.Is(err, repository.ErrNotFound):
		return 0, fmt.Errorf("load sub akun %s: %w", subAkunID, err)
	}
	count, err := s.dataAkunStore.CountBySubAkun(subAkunID)
	if err != nil {
		return 0, fmt.Errorf("count data akun of %s: %w", subAkunID, err)
	}
	return DataAkunKode(base, count), nil
}

// Chart returns the whole hierarchy for export.
func (s *ChartService) Chart() ([]models.Akun, []models.SubAkun, []models.DataAkun, error) {
	akun, err := s.akunStore.GetAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load akun: %w", err)
	}
	subAkun, err := s.subAkunStore.GetAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load sub akun: %w", err)
	}
	dataAkun, err := s.dataAkunStore.GetAll()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load data akun: %w", err)
	}
	return akun, subAkun, dataAkun, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
