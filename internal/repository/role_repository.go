package repository

import (
	"time"

	"bukubesar-api/internal/models"

	"github.com/jmoiron/sqlx"
)

type RoleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// FindAll lists newest roles first.
func (r *RoleRepository) FindAll(limit, offset int) ([]models.Role, int, error) {
	var roles []models.Role
	var total int

	if err := r.db.Get(&total, "SELECT COUNT(*) FROM tb_role"); err != nil {
		return nil, 0, err
	}

	query := `SELECT id_role, role, created_at, updated_at FROM tb_role
	          ORDER BY created_at DESC LIMIT ? OFFSET ?`
	if err := r.db.Select(&roles, query, limit, offset); err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

func (r *RoleRepository) FindByID(id string) (*models.Role, error) {
	var role models.Role
	query := "SELECT id_role, role, created_at, updated_at FROM tb_role WHERE id_role = ? LIMIT 1"
	if err := r.db.Get(&role, query, id); err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *RoleRepository) FindByName(name string) (*models.Role, error) {
	var role models.Role
	query := "SELECT id_role, role, created_at, updated_at FROM tb_role WHERE role = ? LIMIT 1"
	if err := r.db.Get(&role, query, name); err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

func (r *RoleRepository) Create(role *models.Role) error {
	now := time.Now()
	role.CreatedAt, role.UpdatedAt = now, now
	query := `INSERT INTO tb_role (id_role, role, created_at, updated_at)
	          VALUES (:id_role, :role, :created_at, :updated_at)`
	_, err := r.db.NamedExec(query, role)
	return translate(err)
}

func (r *RoleRepository) Update(role *models.Role) error {
	role.UpdatedAt = time.Now()
	_, err := r.db.NamedExec("UPDATE tb_role SET role = :role, updated_at = :updated_at WHERE id_role = :id_role", role)
	return translate(err)
}

// Delete removes the role and its profiles. Journal entries made by those
// profiles are kept and detached.
func (r *RoleRepository) Delete(id string) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		stmts := []string{
			`UPDATE tb_jurnal j JOIN tb_profil p ON p.id_profil = j.id_profil
			 SET j.id_profil = NULL WHERE p.id_role = ?`,
			`DELETE FROM tb_profil WHERE id_role = ?`,
			`DELETE FROM tb_role WHERE id_role = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt, id); err != nil {
				return err
			}
		}
		return nil
	})
}
