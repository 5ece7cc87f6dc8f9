package repository

import (
	"fmt"
	"time"

	"bukubesar-api/internal/models"

	"github.com/jmoiron/sqlx"
)

type SubAkunRepository struct {
	db *sqlx.DB
}

func NewSubAkunRepository(db *sqlx.DB) *SubAkunRepository {
	return &SubAkunRepository{db: db}
}

type subAkunRow struct {
	models.SubAkun
	AkunKode int    `db:"akun_kode"`
	AkunNama string `db:"akun_nama"`
}

func (row subAkunRow) toModel() models.SubAkun {
	s := row.SubAkun
	s.Akun = &models.AkunRef{ID: s.AkunID, Kode: row.AkunKode, Nama: row.AkunNama}
	return s
}

const subAkunSelect = `
	SELECT s.id_sub_akun,
	       s.id_akun,
	       s.kode,
	       s.nama,
	       s.created_at,
	       s.updated_at,
	       COALESCE(a.kode, 0) AS akun_kode,
	       COALESCE(a.nama, '') AS akun_nama
	FROM tb_sub_akun s
	LEFT JOIN tb_akun a ON a.id_akun = s.id_akun`

func (r *SubAkunRepository) FindAll(limit, offset int, search string) ([]models.SubAkun, int, error) {
	var rows []subAkunRow
	var total int

	whereClause, args := searchClause(search, "s.nama", "CAST(s.kode AS CHAR)")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tb_sub_akun s %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s %s ORDER BY s.kode ASC LIMIT ? OFFSET ?", subAkunSelect, whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, 0, err
	}

	subAkun := make([]models.SubAkun, 0, len(rows))
	for _, row := range rows {
		subAkun = append(subAkun, row.toModel())
	}
	return subAkun, total, nil
}

func (r *SubAkunRepository) GetAll() ([]models.SubAkun, error) {
	var rows []subAkunRow
	if err := r.db.Select(&rows, subAkunSelect+" ORDER BY s.kode ASC"); err != nil {
		return nil, err
	}
	subAkun := make([]models.SubAkun, 0, len(rows))
	for _, row := range rows {
		subAkun = append(subAkun, row.toModel())
	}
	return subAkun, nil
}

func (r *SubAkunRepository) FindByID(id string) (*models.SubAkun, error) {
	var row subAkunRow
	if err := r.db.Get(&row, subAkunSelect+" WHERE s.id_sub_akun = ? LIMIT 1", id); err != nil {
		return nil, translate(err)
	}
	s := row.toModel()
	return &s, nil
}

// CountByAkun counts the sub accounts currently under an akun.
func (r *SubAkunRepository) CountByAkun(akunID string) (int, error) {
	var count int
	err := r.db.Get(&count, "SELECT COUNT(*) FROM tb_sub_akun WHERE id_akun = ?", akunID)
	return count, err
}

func (r *SubAkunRepository) Create(subAkun *models.SubAkun) error {
	now := time.Now()
	subAkun.CreatedAt, subAkun.UpdatedAt = now, now
	query := `INSERT INTO tb_sub_akun (id_sub_akun, id_akun, kode, nama, created_at, updated_at)
	          VALUES (:id_sub_akun, :id_akun, :kode, :nama, :created_at, :updated_at)`
	_, err := r.db.NamedExec(query, subAkun)
	return translate(err)
}

func (r *SubAkunRepository) Update(subAkun *models.SubAkun) error {
	subAkun.UpdatedAt = time.Now()
	query := `UPDATE tb_sub_akun SET id_akun = :id_akun, kode = :kode, nama = :nama, updated_at = :updated_at
	          WHERE id_sub_akun = :id_sub_akun`
	_, err := r.db.NamedExec(query, subAkun)
	return translate(err)
}

func (r *SubAkunRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		stmts := []string{
			`DELETE j FROM tb_jurnal j
			 JOIN tb_data_akun d ON d.id_data_akun IN (j.id_debit, j.id_kredit)
			 WHERE d.id_sub_akun = ?`,
			`DELETE FROM tb_data_akun WHERE id_sub_akun = ?`,
			`DELETE FROM tb_sub_akun WHERE id_sub_akun = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt, id); err != nil {
				return err
			}
		}
		return nil
	})
}
