package repository

import (
	"fmt"
	"time"

	"bukubesar-api/internal/models"

	"github.com/jmoiron/sqlx"
)

type DataAkunRepository struct {
	db *sqlx.DB
}

func NewDataAkunRepository(db *sqlx.DB) *DataAkunRepository {
	return &DataAkunRepository{db: db}
}

type dataAkunRow struct {
	models.DataAkun
	SubAkunKode int    `db:"sub_akun_kode"`
	SubAkunNama string `db:"sub_akun_nama"`
	AkunID      string `db:"akun_id"`
	AkunKode    int    `db:"akun_kode"`
	AkunNama    string `db:"akun_nama"`
}

func (row dataAkunRow) toModel() models.DataAkun {
	d := row.DataAkun
	d.SubAkun = &models.SubAkunRef{
		ID:   d.SubAkunID,
		Kode: row.SubAkunKode,
		Nama: row.SubAkunNama,
		Akun: &models.AkunRef{ID: row.AkunID, Kode: row.AkunKode, Nama: row.AkunNama},
	}
	return d
}

const dataAkunSelect = `
	SELECT d.id_data_akun,
	       d.id_sub_akun,
	       d.kode,
	       d.nama,
	       d.debit,
	       d.kredit,
	       d.created_at,
	       d.updated_at,
	       COALESCE(s.kode, 0) AS sub_akun_kode,
	       COALESCE(s.nama, '') AS sub_akun_nama,
	       COALESCE(a.id_akun, '') AS akun_id,
	       COALESCE(a.kode, 0) AS akun_kode,
	       COALESCE(a.nama, '') AS akun_nama
	FROM tb_data_akun d
	LEFT JOIN tb_sub_akun s ON s.id_sub_akun = d.id_sub_akun
	LEFT JOIN tb_akun a ON a.id_akun = s.id_akun`

func (r *DataAkunRepository) FindAll(limit, offset int, search string) ([]models.DataAkun, int, error) {
	var rows []dataAkunRow
	var total int

	whereClause, args := searchClause(search, "d.nama", "CAST(d.kode AS CHAR)")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tb_data_akun d %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s %s ORDER BY d.kode ASC LIMIT ? OFFSET ?", dataAkunSelect, whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, 0, err
	}

	dataAkun := make([]models.DataAkun, 0, len(rows))
	for _, row := range rows {
		dataAkun = append(dataAkun, row.toModel())
	}
	return dataAkun, total, nil
}

func (r *DataAkunRepository) GetAll() ([]models.DataAkun, error) {
	var rows []dataAkunRow
	if err := r.db.Select(&rows, dataAkunSelect+" ORDER BY d.kode ASC"); err != nil {
		return nil, err
	}
	dataAkun := make([]models.DataAkun, 0, len(rows))
	for _, row := range rows {
		dataAkun = append(dataAkun, row.toModel())
	}
	return dataAkun, nil
}

func (r *DataAkunRepository) FindByID(id string) (*models.DataAkun, error) {
	var row dataAkunRow
	if err := r.db.Get(&row, dataAkunSelect+" WHERE d.id_data_akun = ? LIMIT 1", id); err != nil {
		return nil, translate(err)
	}
	d := row.toModel()
	return &d, nil
}

// CountBySubAkun counts the leaf accounts currently under a sub account.
func (r *DataAkunRepository) CountBySubAkun(subAkunID string) (int, error) {
	var count int
	err := r.db.Get(&count, "SELECT COUNT(*) FROM tb_data_akun WHERE id_sub_akun = ?", subAkunID)
	return count, err
}

func (r *DataAkunRepository) Create(dataAkun *models.DataAkun) error {
	now := time.Now()
	dataAkun.CreatedAt, dataAkun.UpdatedAt = now, now
	query := `INSERT INTO tb_data_akun (id_data_akun, id_sub_akun, kode, nama, debit, kredit, created_at, updated_at)
	          VALUES (:id_data_akun, :id_sub_akun, :kode, :nama, :debit, :kredit, :created_at, :updated_at)`
	_, err := r.db.NamedExec(query, dataAkun)
	return translate(err)
}

func (r *DataAkunRepository) Update(dataAkun *models.DataAkun) error {
	dataAkun.UpdatedAt = time.Now()
	query := `UPDATE tb_data_akun SET id_sub_akun = :id_sub_akun, kode = :kode, nama = :nama,
	          debit = :debit, kredit = :kredit, updated_at = :updated_at
	          WHERE id_data_akun = :id_data_akun`
	_, err := r.db.NamedExec(query, dataAkun)
	return translate(err)
}

func (r *DataAkunRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("DELETE FROM tb_jurnal WHERE id_debit = ? OR id_kredit = ?", id, id); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM tb_data_akun WHERE id_data_akun = ?", id)
		return err
	})
}
