package repository

import (
	"time"

	"bukubesar-api/internal/models"

	"github.com/jmoiron/sqlx"
)

type JurnalRepository struct {
	db *sqlx.DB
}

func NewJurnalRepository(db *sqlx.DB) *JurnalRepository {
	return &JurnalRepository{db: db}
}

type jurnalRow struct {
	models.Jurnal
	DebitKode  int    `db:"debit_kode"`
	DebitNama  string `db:"debit_nama"`
	KreditKode int    `db:"kredit_kode"`
	KreditNama string `db:"kredit_nama"`
	TipeNama   string `db:"tipe_nama"`
}

func (row jurnalRow) toDetail() models.JurnalDetail {
	return models.JurnalDetail{
		Jurnal:        row.Jurnal,
		DebitAccount:  models.DataAkunRef{ID: row.DebitID, Kode: row.DebitKode, Nama: row.DebitNama},
		KreditAccount: models.DataAkunRef{ID: row.KreditID, Kode: row.KreditKode, Nama: row.KreditNama},
		TipeJurnal:    models.TipeJurnalRef{ID: row.TipeJurnalID, Nama: row.TipeNama},
	}
}

const jurnalColumns = "id_jurnal, id_tipe_jurnal, tanggal, nama_transaksi, nominal, id_debit, id_kredit, id_profil, created_at, updated_at"

const jurnalDetailSelect = `
	SELECT j.id_jurnal,
	       j.id_tipe_jurnal,
	       j.tanggal,
	       j.nama_transaksi,
	       j.nominal,
	       j.id_debit,
	       j.id_kredit,
	       j.id_profil,
	       j.created_at,
	       j.updated_at,
	       COALESCE(d.kode, 0) AS debit_kode,
	       COALESCE(d.nama, '') AS debit_nama,
	       COALESCE(k.kode, 0) AS kredit_kode,
	       COALESCE(k.nama, '') AS kredit_nama,
	       COALESCE(t.nama, '') AS tipe_nama
	FROM tb_jurnal j
	LEFT JOIN tb_data_akun d ON d.id_data_akun = j.id_debit
	LEFT JOIN tb_data_akun k ON k.id_data_akun = j.id_kredit
	LEFT JOIN tb_tipe_jurnal t ON t.id_tipe_jurnal = j.id_tipe_jurnal`

func (r *JurnalRepository) selectDetails(query string, args ...interface{}) ([]models.JurnalDetail, error) {
	var rows []jurnalRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	details := make([]models.JurnalDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}

// FindAll returns every entry ordered by tanggal.
func (r *JurnalRepository) FindAll() ([]models.JurnalDetail, error) {
	return r.selectDetails(jurnalDetailSelect + " ORDER BY j.tanggal ASC")
}

// FindByDataAkun returns entries where the account sits on either side.
// A nil period means no date filter.
func (r *JurnalRepository) FindByDataAkun(dataAkunID string, period *models.DateRange) ([]models.JurnalDetail, error) {
	query := jurnalDetailSelect + " WHERE (j.id_debit = ? OR j.id_kredit = ?)"
	args := []interface{}{dataAkunID, dataAkunID}
	if period != nil {
		query += " AND j.tanggal BETWEEN ? AND ?"
		args = append(args, period.Start, period.End)
	}
	return r.selectDetails(query+" ORDER BY j.tanggal ASC", args...)
}

func (r *JurnalRepository) FindByProfil(profilID string) ([]models.JurnalDetail, error) {
	return r.selectDetails(jurnalDetailSelect+" WHERE j.id_profil = ? ORDER BY j.tanggal ASC", profilID)
}

func (r *JurnalRepository) FindByID(id string) (*models.Jurnal, error) {
	var jurnal models.Jurnal
	query := "SELECT " + jurnalColumns + " FROM tb_jurnal WHERE id_jurnal = ? LIMIT 1"
	if err := r.db.Get(&jurnal, query, id); err != nil {
		return nil, translate(err)
	}
	return &jurnal, nil
}

const insertJurnal = `INSERT INTO tb_jurnal (id_jurnal, id_tipe_jurnal, tanggal, nama_transaksi, nominal, id_debit, id_kredit, id_profil, created_at, updated_at)
	VALUES (:id_jurnal, :id_tipe_jurnal, :tanggal, :nama_transaksi, :nominal, :id_debit, :id_kredit, :id_profil, :created_at, :updated_at)`

func (r *JurnalRepository) Create(jurnal *models.Jurnal) error {
	now := time.Now()
	jurnal.CreatedAt, jurnal.UpdatedAt = now, now
	_, err := r.db.NamedExec(insertJurnal, jurnal)
	return translate(err)
}

// CreateMany inserts all entries or none.
func (r *JurnalRepository) CreateMany(entries []models.Jurnal) error {
	if len(entries) == 0 {
		return nil
	}
	now := time.Now()
	return translate(withTx(r.db, func(tx *sqlx.Tx) error {
		for i := range entries {
			entries[i].CreatedAt, entries[i].UpdatedAt = now, now
			if _, err := tx.NamedExec(insertJurnal, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	}))
}

func (r *JurnalRepository) Update(jurnal *models.Jurnal) error {
	jurnal.UpdatedAt = time.Now()
	query := `UPDATE tb_jurnal SET id_tipe_jurnal = :id_tipe_jurnal, tanggal = :tanggal,
	          nama_transaksi = :nama_transaksi, nominal = :nominal, id_debit = :id_debit,
	          id_kredit = :id_kredit, id_profil = :id_profil, updated_at = :updated_at
	          WHERE id_jurnal = :id_jurnal`
	_, err := r.db.NamedExec(query, jurnal)
	return translate(err)
}

func (r *JurnalRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM tb_jurnal WHERE id_jurnal = ?", id)
	return err
}
