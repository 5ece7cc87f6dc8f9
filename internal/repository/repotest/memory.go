// Package repotest holds in-memory stores for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository"
)

// Store implements every service store interface over plain maps. Foreign
// keys are checked on write and deletes cascade like the MySQL schema.
type Store struct {
	mu       sync.Mutex
	akun     map[string]models.Akun
	subAkun  map[string]models.SubAkun
	dataAkun map[string]models.DataAkun
	tipe     map[string]models.TipeJurnal
	jurnal   map[string]models.Jurnal
	roles    map[string]models.Role
	profils  map[string]models.Profil
	revoked  map[string]time.Time
	seq      int
	created  map[string]int
}

func New() *Store {
	return &Store{
		akun:     map[string]models.Akun{},
		subAkun:  map[string]models.SubAkun{},
		dataAkun: map[string]models.DataAkun{},
		tipe:     map[string]models.TipeJurnal{},
		jurnal:   map[string]models.Jurnal{},
		roles:    map[string]models.Role{},
		profils:  map[string]models.Profil{},
		revoked:  map[string]time.Time{},
		created:  map[string]int{},
	}
}

// Views narrow the shared Store to one entity so that method sets match the
// service interfaces.
func (s *Store) Akun() *AkunStore             { return &AkunStore{s} }
func (s *Store) SubAkun() *SubAkunStore       { return &SubAkunStore{s} }
func (s *Store) DataAkun() *DataAkunStore     { return &DataAkunStore{s} }
func (s *Store) TipeJurnal() *TipeJurnalStore { return &TipeJurnalStore{s} }
func (s *Store) Jurnal() *JurnalStore         { return &JurnalStore{s} }
func (s *Store) Role() *RoleStore             { return &RoleStore{s} }
func (s *Store) Profil() *ProfilStore         { return &ProfilStore{s} }
func (s *Store) Token() *TokenStore           { return &TokenStore{s} }

// stamp records insertion order; it stands in for created_at ordering.
func (s *Store) stamp(id string) {
	s.seq++
	s.created[id] = s.seq
}

func page[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func matches(search string, values ...string) bool {
	if search == "" {
		return true
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), strings.ToLower(search)) {
			return true
		}
	}
	return false
}

// Akun

type AkunStore struct{ s *Store }

func (a *AkunStore) FindAll(limit, offset int, search string) ([]models.Akun, int, error) {
	all, _ := a.GetAll()
	var rows []models.Akun
	for _, r := range all {
		if matches(search, r.Nama) {
			rows = append(rows, r)
		}
	}
	return page(rows, limit, offset), len(rows), nil
}

func (a *AkunStore) GetAll() ([]models.Akun, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	rows := make([]models.Akun, 0, len(a.s.akun))
	for _, r := range a.s.akun {
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Kode < rows[j].Kode })
	return rows, nil
}

func (a *AkunStore) FindByID(id string) (*models.Akun, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	r, ok := a.s.akun[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (a *AkunStore) Create(akun *models.Akun) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	akun.CreatedAt, akun.UpdatedAt = time.Now(), time.Now()
	a.s.akun[akun.ID] = *akun
	a.s.stamp(akun.ID)
	return nil
}

func (a *AkunStore) Update(akun *models.Akun) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	akun.UpdatedAt = time.Now()
	a.s.akun[akun.ID] = *akun
	return nil
}

func (a *AkunStore) Delete(id string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for subID, sub := range a.s.subAkun {
		if sub.AkunID == id {
			a.s.deleteSubAkun(subID)
		}
	}
	delete(a.s.akun, id)
	return nil
}

// SubAkun

type SubAkunStore struct{ s *Store }

func (st *SubAkunStore) FindAll(limit, offset int, search string) ([]models.SubAkun, int, error) {
	all, _ := st.GetAll()
	var rows []models.SubAkun
	for _, r := range all {
		if matches(search, r.Nama) {
			rows = append(rows, r)
		}
	}
	return page(rows, limit, offset), len(rows), nil
}

func (st *SubAkunStore) GetAll() ([]models.SubAkun, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	rows := make([]models.SubAkun, 0, len(st.s.subAkun))
	for id := range st.s.subAkun {
		rows = append(rows, st.s.subAkunWithParent(id))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Kode < rows[j].Kode })
	return rows, nil
}

func (st *SubAkunStore) FindByID(id string) (*models.SubAkun, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.subAkun[id]; !ok {
		return nil, repository.ErrNotFound
	}
	r := st.s.subAkunWithParent(id)
	return &r, nil
}

func (st *SubAkunStore) CountByAkun(akunID string) (int, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	n := 0
	for _, r := range st.s.subAkun {
		if r.AkunID == akunID {
			n++
		}
	}
	return n, nil
}

func (st *SubAkunStore) Create(sub *models.SubAkun) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.akun[sub.AkunID]; !ok {
		return repository.ErrForeignKey
	}
	sub.CreatedAt, sub.UpdatedAt = time.Now(), time.Now()
	row := *sub
	row.Akun = nil
	st.s.subAkun[sub.ID] = row
	st.s.stamp(sub.ID)
	return nil
}

func (st *SubAkunStore) Update(sub *models.SubAkun) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.akun[sub.AkunID]; !ok {
		return repository.ErrForeignKey
	}
	sub.UpdatedAt = time.Now()
	row := *sub
	row.Akun = nil
	st.s.subAkun[sub.ID] = row
	return nil
}

func (st *SubAkunStore) Delete(id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.deleteSubAkun(id)
	return nil
}

func (s *Store) subAkunWithParent(id string) models.SubAkun {
	r := s.subAkun[id]
	if a, ok := s.akun[r.AkunID]; ok {
		r.Akun = &models.AkunRef{ID: a.ID, Kode: a.Kode, Nama: a.Nama}
	}
	return r
}

func (s *Store) deleteSubAkun(id string) {
	for dataID, d := range s.dataAkun {
		if d.SubAkunID == id {
			s.deleteDataAkun(dataID)
		}
	}
	delete(s.subAkun, id)
}

// DataAkun

type DataAkunStore struct{ s *Store }

func (st *DataAkunStore) FindAll(limit, offset int, search string) ([]models.DataAkun, int, error) {
	all, _ := st.GetAll()
	var rows []models.DataAkun
	for _, r := range all {
		if matches(search, r.Nama) {
			rows = append(rows, r)
		}
	}
	return page(rows, limit, offset), len(rows), nil
}

func (st *DataAkunStore) GetAll() ([]models.DataAkun, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	rows := make([]models.DataAkun, 0, len(st.s.dataAkun))
	for id := range st.s.dataAkun {
		rows = append(rows, st.s.dataAkunWithParent(id))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Kode < rows[j].Kode })
	return rows, nil
}

func (st *DataAkunStore) FindByID(id string) (*models.DataAkun, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.dataAkun[id]; !ok {
		return nil, repository.ErrNotFound
	}
	r := st.s.dataAkunWithParent(id)
	return &r, nil
}

func (st *DataAkunStore) CountBySubAkun(subAkunID string) (int, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	n := 0
	for _, r := range st.s.dataAkun {
		if r.SubAkunID == subAkunID {
			n++
		}
	}
	return n, nil
}

func (st *DataAkunStore) Create(d *models.DataAkun) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.subAkun[d.SubAkunID]; !ok {
		return repository.ErrForeignKey
	}
	d.CreatedAt, d.UpdatedAt = time.Now(), time.Now()
	row := *d
	row.SubAkun = nil
	st.s.dataAkun[d.ID] = row
	st.s.stamp(d.ID)
	return nil
}

func (st *DataAkunStore) Update(d *models.DataAkun) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.subAkun[d.SubAkunID]; !ok {
		return repository.ErrForeignKey
	}
	d.UpdatedAt = time.Now()
	row := *d
	row.SubAkun = nil
	st.s.dataAkun[d.ID] = row
	return nil
}

func (st *DataAkunStore) Delete(id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.deleteDataAkun(id)
	return nil
}

func (s *Store) dataAkunWithParent(id string) models.DataAkun {
	r := s.dataAkun[id]
	if _, ok := s.subAkun[r.SubAkunID]; ok {
		sub := s.subAkunWithParent(r.SubAkunID)
		r.SubAkun = &models.SubAkunRef{ID: sub.ID, Kode: sub.Kode, Nama: sub.Nama, Akun: sub.Akun}
	}
	return r
}

func (s *Store) deleteDataAkun(id string) {
	for jid, j := range s.jurnal {
		if j.DebitID == id || j.KreditID == id {
			delete(s.jurnal, jid)
		}
	}
	delete(s.dataAkun, id)
}

// TipeJurnal

type TipeJurnalStore struct{ s *Store }

func (st *TipeJurnalStore) FindAll(limit, offset int, search string) ([]models.TipeJurnal, int, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	var rows []models.TipeJurnal
	for _, r := range st.s.tipe {
		if matches(search, r.Nama) {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return st.s.created[rows[i].ID] < st.s.created[rows[j].ID] })
	return page(rows, limit, offset), len(rows), nil
}

func (st *TipeJurnalStore) FindByID(id string) (*models.TipeJurnal, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	r, ok := st.s.tipe[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (st *TipeJurnalStore) Create(t *models.TipeJurnal) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	t.CreatedAt, t.UpdatedAt = time.Now(), time.Now()
	st.s.tipe[t.ID] = *t
	st.s.stamp(t.ID)
	return nil
}

func (st *TipeJurnalStore) Update(t *models.TipeJurnal) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	t.UpdatedAt = time.Now()
	st.s.tipe[t.ID] = *t
	return nil
}

func (st *TipeJurnalStore) Delete(id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for jid, j := range st.s.jurnal {
		if j.TipeJurnalID == id {
			delete(st.s.jurnal, jid)
		}
	}
	delete(st.s.tipe, id)
	return nil
}

// Jurnal

type JurnalStore struct{ s *Store }

func (st *JurnalStore) details(keep func(models.Jurnal) bool) []models.JurnalDetail {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	rows := []models.JurnalDetail{}
	for _, j := range st.s.jurnal {
		if !keep(j) {
			continue
		}
		d := models.JurnalDetail{Jurnal: j}
		debit := st.s.dataAkun[j.DebitID]
		kredit := st.s.dataAkun[j.KreditID]
		d.DebitAccount = models.DataAkunRef{ID: j.DebitID, Kode: debit.Kode, Nama: debit.Nama}
		d.KreditAccount = models.DataAkunRef{ID: j.KreditID, Kode: kredit.Kode, Nama: kredit.Nama}
		d.TipeJurnal = models.TipeJurnalRef{ID: j.TipeJurnalID, Nama: st.s.tipe[j.TipeJurnalID].Nama}
		rows = append(rows, d)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Tanggal.Equal(rows[j].Tanggal.Time) {
			return rows[i].Tanggal.Before(rows[j].Tanggal.Time)
		}
		return st.s.created[rows[i].ID] < st.s.created[rows[j].ID]
	})
	return rows
}

func (st *JurnalStore) FindAll() ([]models.JurnalDetail, error) {
	return st.details(func(models.Jurnal) bool { return true }), nil
}

func (st *JurnalStore) FindByDataAkun(dataAkunID string, period *models.DateRange) ([]models.JurnalDetail, error) {
	return st.details(func(j models.Jurnal) bool {
		if j.DebitID != dataAkunID && j.KreditID != dataAkunID {
			return false
		}
		if period != nil {
			return !j.Tanggal.Before(period.Start.Time) && !j.Tanggal.After(period.End.Time)
		}
		return true
	}), nil
}

func (st *JurnalStore) FindByProfil(profilID string) ([]models.JurnalDetail, error) {
	return st.details(func(j models.Jurnal) bool {
		return j.ProfilID != nil && *j.ProfilID == profilID
	}), nil
}

func (st *JurnalStore) FindByID(id string) (*models.Jurnal, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	r, ok := st.s.jurnal[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (st *JurnalStore) checkRefs(j *models.Jurnal) error {
	_, okTipe := st.s.tipe[j.TipeJurnalID]
	_, okDebit := st.s.dataAkun[j.DebitID]
	_, okKredit := st.s.dataAkun[j.KreditID]
	okProfil := true
	if j.ProfilID != nil {
		_, okProfil = st.s.profils[*j.ProfilID]
	}
	if !okTipe || !okDebit || !okKredit || !okProfil {
		return repository.ErrForeignKey
	}
	return nil
}

func (st *JurnalStore) Create(j *models.Jurnal) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if err := st.checkRefs(j); err != nil {
		return err
	}
	j.CreatedAt, j.UpdatedAt = time.Now(), time.Now()
	st.s.jurnal[j.ID] = *j
	st.s.stamp(j.ID)
	return nil
}

func (st *JurnalStore) CreateMany(entries []models.Jurnal) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for i := range entries {
		if err := st.checkRefs(&entries[i]); err != nil {
			return err
		}
	}
	for i := range entries {
		entries[i].CreatedAt, entries[i].UpdatedAt = time.Now(), time.Now()
		st.s.jurnal[entries[i].ID] = entries[i]
		st.s.stamp(entries[i].ID)
	}
	return nil
}

func (st *JurnalStore) Update(j *models.Jurnal) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if err := st.checkRefs(j); err != nil {
		return err
	}
	j.UpdatedAt = time.Now()
	st.s.jurnal[j.ID] = *j
	return nil
}

func (st *JurnalStore) Delete(id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	delete(st.s.jurnal, id)
	return nil
}

// Role

type RoleStore struct{ s *Store }

func (st *RoleStore) FindAll(limit, offset int) ([]models.Role, int, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	rows := make([]models.Role, 0, len(st.s.roles))
	for _, r := range st.s.roles {
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool { return st.s.created[rows[i].ID] > st.s.created[rows[j].ID] })
	return page(rows, limit, offset), len(rows), nil
}

func (st *RoleStore) FindByID(id string) (*models.Role, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	r, ok := st.s.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (st *RoleStore) FindByName(name string) (*models.Role, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for _, r := range st.s.roles {
		if r.Role == name {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (st *RoleStore) Create(r *models.Role) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	r.CreatedAt, r.UpdatedAt = time.Now(), time.Now()
	st.s.roles[r.ID] = *r
	st.s.stamp(r.ID)
	return nil
}

func (st *RoleStore) Update(r *models.Role) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	r.UpdatedAt = time.Now()
	st.s.roles[r.ID] = *r
	return nil
}

func (st *RoleStore) Delete(id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for pid, p := range st.s.profils {
		if p.RoleID == id {
			st.s.deleteProfil(pid)
		}
	}
	delete(st.s.roles, id)
	return nil
}

// Profil

type ProfilStore struct{ s *Store }

func (st *ProfilStore) FindAll(limit, offset int, search string) ([]models.Profil, int, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	var rows []models.Profil
	for id, p := range st.s.profils {
		email := ""
		if p.Email != nil {
			email = *p.Email
		}
		if matches(search, p.Nama, p.Username, email) {
			rows = append(rows, st.s.profilWithRole(id))
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return st.s.created[rows[i].ID] < st.s.created[rows[j].ID] })
	return page(rows, limit, offset), len(rows), nil
}

func (st *ProfilStore) FindByID(id string) (*models.Profil, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.profils[id]; !ok {
		return nil, repository.ErrNotFound
	}
	p := st.s.profilWithRole(id)
	return &p, nil
}

func (st *ProfilStore) FindByIdentifier(identifier string) (*models.Profil, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	var found []string
	for id, p := range st.s.profils {
		if p.Username == identifier || (p.Email != nil && *p.Email == identifier) {
			found = append(found, id)
		}
	}
	if len(found) != 1 {
		return nil, repository.ErrNotFound
	}
	p := st.s.profilWithRole(found[0])
	return &p, nil
}

func (st *ProfilStore) UsernameTaken(username, exceptID string) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for id, p := range st.s.profils {
		if id != exceptID && p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (st *ProfilStore) EmailTaken(email, exceptID string) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for id, p := range st.s.profils {
		if id != exceptID && p.Email != nil && *p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (st *ProfilStore) Create(p *models.Profil) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.roles[p.RoleID]; !ok {
		return repository.ErrForeignKey
	}
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	row := *p
	row.Role, row.LogoURL = nil, ""
	st.s.profils[p.ID] = row
	st.s.stamp(p.ID)
	return nil
}

func (st *ProfilStore) Update(p *models.Profil) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.roles[p.RoleID]; !ok {
		return repository.ErrForeignKey
	}
	p.UpdatedAt = time.Now()
	row := *p
	row.Role, row.LogoURL = nil, ""
	st.s.profils[p.ID] = row
	return nil
}

func (st *ProfilStore) Delete(id string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.deleteProfil(id)
	return nil
}

func (s *Store) profilWithRole(id string) models.Profil {
	p := s.profils[id]
	if r, ok := s.roles[p.RoleID]; ok {
		p.Role = &models.RoleRef{ID: r.ID, Role: r.Role}
	}
	return p
}

func (s *Store) deleteProfil(id string) {
	for jid, j := range s.jurnal {
		if j.ProfilID != nil && *j.ProfilID == id {
			j.ProfilID = nil
			s.jurnal[jid] = j
		}
	}
	delete(s.profils, id)
}

// Token

type TokenStore struct{ s *Store }

func (st *TokenStore) Revoke(_ context.Context, fingerprint string, expiresAt time.Time) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.revoked[fingerprint] = expiresAt
	return nil
}

func (st *TokenStore) IsRevoked(_ context.Context, fingerprint string) (bool, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	exp, ok := st.s.revoked[fingerprint]
	return ok && exp.After(time.Now()), nil
}

func (st *TokenStore) PurgeExpired(_ context.Context) (int64, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	var n int64
	for fp, exp := range st.s.revoked {
		if !exp.After(time.Now()) {
			delete(st.s.revoked, fp)
			n++
		}
	}
	return n, nil
}
