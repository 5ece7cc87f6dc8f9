package repository

import (
	"fmt"
	"time"

	"bukubesar-api/internal/models"

	"github.com/jmoiron/sqlx"
)

type TipeJurnalRepository struct {
	db *sqlx.DB
}

func NewTipeJurnalRepository(db *sqlx.DB) *TipeJurnalRepository {
	return &TipeJurnalRepository{db: db}
}

func (r *TipeJurnalRepository) FindAll(limit, offset int, search string) ([]models.TipeJurnal, int, error) {
	var tipe []models.TipeJurnal
	var total int

	whereClause, args := searchClause(search, "nama")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tb_tipe_jurnal %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id_tipe_jurnal, nama, created_at, updated_at
		FROM tb_tipe_jurnal %s ORDER BY created_at ASC LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&tipe, query, args...); err != nil {
		return nil, 0, err
	}
	return tipe, total, nil
}

func (r *TipeJurnalRepository) FindByID(id string) (*models.TipeJurnal, error) {
	var tipe models.TipeJurnal
	query := "SELECT id_tipe_jurnal, nama, created_at, updated_at FROM tb_tipe_jurnal WHERE id_tipe_jurnal = ? LIMIT 1"
	if err := r.db.Get(&tipe, query, id); err != nil {
		return nil, translate(err)
	}
	return &tipe, nil
}

func (r *TipeJurnalRepository) Create(tipe *models.TipeJurnal) error {
	now := time.Now()
	tipe.CreatedAt, tipe.UpdatedAt = now, now
	query := `INSERT INTO tb_tipe_jurnal (id_tipe_jurnal, nama, created_at, updated_at)
	          VALUES (:id_tipe_jurnal, :nama, :created_at, :updated_at)`
	_, err := r.db.NamedExec(query, tipe)
	return translate(err)
}

func (r *TipeJurnalRepository) Update(tipe *models.TipeJurnal) error {
	tipe.UpdatedAt = time.Now()
	query := "UPDATE tb_tipe_jurnal SET nama = :nama, updated_at = :updated_at WHERE id_tipe_jurnal = :id_tipe_jurnal"
	_, err := r.db.NamedExec(query, tipe)
	return translate(err)
}

// Delete also removes the journal entries of that type.
func (r *TipeJurnalRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("DELETE FROM tb_jurnal WHERE id_tipe_jurnal = ?", id); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM tb_tipe_jurnal WHERE id_tipe_jurnal = ?", id)
		return err
	})
}
