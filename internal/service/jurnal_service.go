package service

import (
	"errors"
	"fmt"

	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type JurnalService struct {
	jurnalStore   JurnalStore
	tipeStore     TipeJurnalStore
	dataAkunStore DataAkunStore
	logger        *logrus.Logger
}

func NewJurnalService(jurnalStore JurnalStore, tipeStore TipeJurnalStore, dataAkunStore DataAkunStore, logger *logrus.Logger) *JurnalService {
	return &JurnalService{
		jurnalStore:   jurnalStore,
		tipeStore:     tipeStore,
		dataAkunStore: dataAkunStore,
		logger:        logger,
	}
}

// TipeJurnal

func (s *JurnalService) ListTipe(params utils.PaginationParams) ([]models.TipeJurnal, int, error) {
	return s.tipeStore.FindAll(params.Limit, params.Offset(), params.Search)
}

func (s *JurnalService) GetTipe(id string) (*models.TipeJurnal, error) {
	return s.tipeStore.FindByID(id)
}

func (s *JurnalService) CreateTipe(req models.TipeJurnalRequest) (*models.TipeJurnal, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tipe := &models.TipeJurnal{ID: uuid.NewString(), Nama: req.Nama}
	if err := s.tipeStore.Create(tipe); err != nil {
		return nil, fmt.Errorf("create tipe jurnal: %w", err)
	}
	return tipe, nil
}

func (s *JurnalService) UpdateTipe(id string, req models.TipeJurnalRequest) (*models.TipeJurnal, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tipe, err := s.tipeStore.FindByID(id)
	if err != nil {
		return nil, err
	}
	tipe.Nama = req.Nama
	if err := s.tipeStore.Update(tipe); err != nil {
		return nil, fmt.Errorf("update tipe jurnal %s: %w", id, err)
	}
	return tipe, nil
}

func (s *JurnalService) DeleteTipe(id string) error {
	if _, err := s.tipeStore.FindByID(id); err != nil {
		return err
	}
	if err := s.tipeStore.Delete(id); err != nil {
		return fmt.Errorf("delete tipe jurnal %s: %w", id, err)
	}
	return nil
}

// Jurnal

// List returns every entry ordered by tanggal, unpaginated.
func (s *JurnalService) List() ([]models.JurnalDetail, error) {
	return s.jurnalStore.FindAll()
}

func (s *JurnalService) Get(id string) (*models.Jurnal, error) {
	return s.jurnalStore.FindByID(id)
}

// ListByDataAkun returns entries that debit or credit the account. An empty
// result is reported as ErrJurnalNotFound.
func (s *JurnalService) ListByDataAkun(dataAkunID string) ([]models.JurnalDetail, error) {
	return s.nonEmpty(s.jurnalStore.FindByDataAkun(dataAkunID, nil))
}

// ListByDataAkunBetween narrows ListByDataAkun to [start, end]. The date
// filter applies only when both bounds are given.
func (s *JurnalService) ListByDataAkunBetween(dataAkunID, start, end string) ([]models.JurnalDetail, error) {
	period, err := parsePeriod(start, end)
	if err != nil {
		return nil, err
	}
	return s.nonEmpty(s.jurnalStore.FindByDataAkun(dataAkunID, period))
}

func (s *JurnalService) ListByProfil(profilID string) ([]models.JurnalDetail, error) {
	return s.nonEmpty(s.jurnalStore.FindByProfil(profilID))
}

// Export returns the rows for a spreadsheet export: the whole journal, or
// one account's entries when dataAkunID is set. No rows is not an error here.
func (s *JurnalService) Export(dataAkunID, start, end string) ([]models.JurnalDetail, error) {
	if dataAkunID == "" {
		return s.jurnalStore.FindAll()
	}
	period, err := parsePeriod(start, end)
	if err != nil {
		return nil, err
	}
	return s.jurnalStore.FindByDataAkun(dataAkunID, period)
}

func (s *JurnalService) nonEmpty(rows []models.JurnalDetail, err error) ([]models.JurnalDetail, error) {
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrJurnalNotFound
	}
	return rows, nil
}

// Create records one entry. actorID is the authenticated profil and is used
// when the request does not name one.
func (s *JurnalService) Create(req models.JurnalRequest, actorID string) (*models.Jurnal, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	jurnal, fields, err := s.build(req, "")
	if err != nil {
		return nil, err
	}
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	jurnal.ID = uuid.NewString()
	if jurnal.ProfilID == nil && actorID != "" {
		jurnal.ProfilID = &actorID
	}

	if err := s.jurnalStore.Create(jurnal); err != nil {
		return nil, referenceError(err, "id_profil")
	}

	s.logger.WithFields(logrus.Fields{
		"id_jurnal": jurnal.ID,
		"id_debit":  jurnal.DebitID,
		"id_kredit": jurnal.KreditID,
		"nominal":   jurnal.Nominal.String(),
	}).Info("Jurnal created")
	return jurnal, nil
}

// CreateMany records a batch in one transaction: every entry is checked
// first and nothing is written unless all of them are valid.
func (s *JurnalService) CreateMany(req models.BulkJurnalRequest, actorID string) ([]models.Jurnal, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	entries := make([]models.Jurnal, 0, len(req.Jurnal))
	invalid := map[string]string{}
	for i, item := range req.Jurnal {
		jurnal, fields, err := s.build(item, fmt.Sprintf("jurnal[%d].", i))
		if err != nil {
			return nil, err
		}
		for k, v := range fields {
			invalid[k] = v
		}
		if fields != nil {
			continue
		}
		jurnal.ID = uuid.NewString()
		if jurnal.ProfilID == nil && actorID != "" {
			jurnal.ProfilID = &actorID
		}
		entries = append(entries, *jurnal)
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Fields: invalid}
	}

	if err := s.jurnalStore.CreateMany(entries); err != nil {
		return nil, referenceError(err, "id_profil")
	}
	s.logger.WithField("count", len(entries)).Info("Jurnal batch created")
	return entries, nil
}

// Update replaces the entry. id_profil keeps its stored value when omitted.
func (s *JurnalService) Update(id string, req models.JurnalRequest) (*models.Jurnal, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.jurnalStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	jurnal, fields, err := s.build(req, "")
	if err != nil {
		return nil, err
	}
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	jurnal.ID = existing.ID
	jurnal.CreatedAt = existing.CreatedAt
	if jurnal.ProfilID == nil {
		jurnal.ProfilID = existing.ProfilID
	}

	if err := s.jurnalStore.Update(jurnal); err != nil {
		return nil, referenceError(err, "id_profil")
	}
	return jurnal, nil
}

func (s *JurnalService) Delete(id string) error {
	if _, err := s.jurnalStore.FindByID(id); err != nil {
		return err
	}
	if err := s.jurnalStore.Delete(id); err != nil {
		return fmt.Errorf("delete jurnal %s: %w", id, err)
	}
	return nil
}

// build maps a validated request onto a Jurnal and checks that the type and
// both accounts exist. Unresolved references come back as field messages,
// keyed with prefix for batch items.
func (s *JurnalService) build(req models.JurnalRequest, prefix string) (*models.Jurnal, map[string]string, error) {
	var fields map[string]string
	addField := func(name string) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields[prefix+name] = invalidReference(name)
	}

	if _, err := s.tipeStore.FindByID(req.TipeJurnalID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("load tipe jurnal: %w", err)
		}
		addField("id_tipe_jurnal")
	}
	for name, id := range map[string]string{"id_debit": req.DebitID, "id_kredit": req.KreditID} {
		if _, err := s.dataAkunStore.FindByID(id); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return nil, nil, fmt.Errorf("load data akun: %w", err)
			}
			addField(name)
		}
	}
	if fields != nil {
		return nil, fields, nil
	}

	// the validator already accepted the date
	tanggal, err := models.ParseDate(req.Tanggal)
	if err != nil {
		return nil, map[string]string{prefix + "tanggal": err.Error()}, nil
	}

	jurnal := &models.Jurnal{
		TipeJurnalID:  req.TipeJurnalID,
		Tanggal:       tanggal,
		NamaTransaksi: req.NamaTransaksi,
		Nominal:       *req.Nominal,
		DebitID:       req.DebitID,
		KreditID:      req.KreditID,
	}
	if req.ProfilID != nil && *req.ProfilID != "" {
		profilID := *req.ProfilID
		jurnal.ProfilID = &profilID
	}
	return jurnal, nil, nil
}

// parsePeriod returns nil unless both bounds are present.
func parsePeriod(start, end string) (*models.DateRange, error) {
	if start == "" || end == "" {
		return nil, nil
	}
	startDate, err := models.ParseDate(start)
	if err != nil {
		return nil, fieldError("start_date", "The start_date field must be a valid date (YYYY-MM-DD).")
	}
	endDate, err := models.ParseDate(end)
	if err != nil {
		return nil, fieldError("end_date", "The end_date field must be a valid date (YYYY-MM-DD).")
	}
	return &models.DateRange{Start: startDate, End: endDate}, nil
}
