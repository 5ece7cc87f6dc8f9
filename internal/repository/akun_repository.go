package repository

import (
	"fmt"
	"time"

	"bukubesar-api/internal/models"

	"github.com/jmoiron/sqlx"
)

type AkunRepository struct {
	db *sqlx.DB
}

func NewAkunRepository(db *sqlx.DB) *AkunRepository {
	return &AkunRepository{db: db}
}

const akunColumns = "id_akun, nama, kode, created_at, updated_at"

func (r *AkunRepository) FindAll(limit, offset int, search string) ([]models.Akun, int, error) {
	var akun []models.Akun
	var total int

	whereClause, args := searchClause(search, "nama", "CAST(kode AS CHAR)")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tb_akun %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM tb_akun %s ORDER BY kode ASC LIMIT ? OFFSET ?`, akunColumns, whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&akun, query, args...); err != nil {
		return nil, 0, err
	}

	return akun, total, nil
}

func (r *AkunRepository) GetAll() ([]models.Akun, error) {
	var akun []models.Akun
	query := fmt.Sprintf("SELECT %s FROM tb_akun ORDER BY kode ASC", akunColumns)
	err := r.db.Select(&akun, query)
	return akun, err
}

func (r *AkunRepository) FindByID(id string) (*models.Akun, error) {
	var akun models.Akun
	query := fmt.Sprintf("SELECT %s FROM tb_akun WHERE id_akun = ? LIMIT 1", akunColumns)
	if err := r.db.Get(&akun, query, id); err != nil {
		return nil, translate(err)
	}
	return &akun, nil
}

func (r *AkunRepository) Create(akun *models.Akun) error {
	now := time.Now()
	akun.CreatedAt, akun.UpdatedAt = now, now
	query := `INSERT INTO tb_akun (id_akun, nama, kode, created_at, updated_at)
	          VALUES (:id_akun, :nama, :kode, :created_at, :updated_at)`
	_, err := r.db.NamedExec(query, akun)
	return translate(err)
}

func (r *AkunRepository) Update(akun *models.Akun) error {
	akun.UpdatedAt = time.Now()
	query := `UPDATE tb_akun SET nama = :nama, kode = :kode, updated_at = :updated_at
	          WHERE id_akun = :id_akun`
	_, err := r.db.NamedExec(query, akun)
	return translate(err)
}

// Delete removes the akun and everything beneath it: the journal entries
// touching its leaf accounts, the leaf accounts, and the sub accounts.
func (r *AkunRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		stmts := []string{
			`DELETE j FROM tb_jurnal j
			 JOIN tb_data_akun d ON d.id_data_akun IN (j.id_debit, j.id_kredit)
			 JOIN tb_sub_akun s ON s.id_sub_akun = d.id_sub_akun
			 WHERE s.id_akun = ?`,
			`DELETE d FROM tb_data_akun d
			 JOIN tb_sub_akun s ON s.id_sub_akun = d.id_sub_akun
			 WHERE s.id_akun = ?`,
			`DELETE FROM tb_sub_akun WHERE id_akun = ?`,
			`DELETE FROM tb_akun WHERE id_akun = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt, id); err != nil {
				return err
			}
		}
		return nil
	})
}
