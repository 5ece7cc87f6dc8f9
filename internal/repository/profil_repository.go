package repository

import (
	"fmt"
	"time"

	"bukubesar-api/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProfilRepository struct {
	db *sqlx.DB
}

func NewProfilRepository(db *sqlx.DB) *ProfilRepository {
	return &ProfilRepository{db: db}
}

type profilRow struct {
	models.Profil
	RoleName string `db:"role_name"`
}

func (row profilRow) toModel() models.Profil {
	p := row.Profil
	p.Role = &models.RoleRef{ID: p.RoleID, Role: row.RoleName}
	return p
}

const profilSelect = `
	SELECT p.id_profil,
	       p.id_role,
	       p.nama,
	       p.username,
	       p.email,
	       p.password,
	       p.alamat,
	       p.logo,
	       p.created_at,
	       p.updated_at,
	       COALESCE(r.role, '') AS role_name
	FROM tb_profil p
	LEFT JOIN tb_role r ON r.id_role = p.id_role`

func (r *ProfilRepository) FindAll(limit, offset int, search string) ([]models.Profil, int, error) {
	var rows []profilRow
	var total int

	whereClause, args := searchClause(search, "p.nama", "p.username", "p.email")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tb_profil p %s", whereClause)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("%s %s ORDER BY p.created_at ASC LIMIT ? OFFSET ?", profilSelect, whereClause)
	args = append(args, limit, offset)
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, 0, err
	}

	profils := make([]models.Profil, 0, len(rows))
	for _, row := range rows {
		profils = append(profils, row.toModel())
	}
	return profils, total, nil
}

func (r *ProfilRepository) FindByID(id string) (*models.Profil, error) {
	var row profilRow
	if err := r.db.Get(&row, profilSelect+" WHERE p.id_profil = ? LIMIT 1", id); err != nil {
		return nil, translate(err)
	}
	p := row.toModel()
	return &p, nil
}

// FindByIdentifier matches the login identifier against username or email.
func (r *ProfilRepository) FindByIdentifier(identifier string) (*models.Profil, error) {
	var rows []profilRow
	query := profilSelect + " WHERE p.username = ? OR p.email = ? LIMIT 2"
	if err := r.db.Select(&rows, query, identifier, identifier); err != nil {
		return nil, err
	}
	// one profil's username equal to another's email is ambiguous
	if len(rows) != 1 {
		return nil, ErrNotFound
	}
	p := rows[0].toModel()
	return &p, nil
}

func (r *ProfilRepository) UsernameTaken(username, exceptID string) (bool, error) {
	var n int
	err := r.db.Get(&n, "SELECT COUNT(*) FROM tb_profil WHERE username = ? AND id_profil <> ?", username, exceptID)
	return n > 0, err
}

func (r *ProfilRepository) EmailTaken(email, exceptID string) (bool, error) {
	var n int
	err := r.db.Get(&n, "SELECT COUNT(*) FROM tb_profil WHERE email = ? AND id_profil <> ?", email, exceptID)
	return n > 0, err
}

func (r *ProfilRepository) Create(profil *models.Profil) error {
	now := time.Now()
	profil.CreatedAt, profil.UpdatedAt = now, now
	query := `INSERT INTO tb_profil (id_profil, id_role, nama, username, email, password, alamat, logo, created_at, updated_at)
	          VALUES (:id_profil, :id_role, :nama, :username, :email, :password, :alamat, :logo, :created_at, :updated_at)`
	_, err := r.db.NamedExec(query, profil)
	return translate(err)
}

func (r *ProfilRepository) Update(profil *models.Profil) error {
	profil.UpdatedAt = time.Now()
	query := `UPDATE tb_profil SET id_role = :id_role, nama = :nama, username = :username, email = :email,
	          password = :password, alamat = :alamat, logo = :logo, updated_at = :updated_at
	          WHERE id_profil = :id_profil`
	_, err := r.db.NamedExec(query, profil)
	return translate(err)
}

func (r *ProfilRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec("UPDATE tb_jurnal SET id_profil = NULL WHERE id_profil = ?", id); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM tb_profil WHERE id_profil = ?", id)
		return err
	})
}
