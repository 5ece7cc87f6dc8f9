package service

import (
	"context"
	"time"

	"bukubesar-api/internal/models"
)

// The store interfaces are satisfied by the sqlx repositories and by the
// in-memory fakes in repository/repotest.

type AkunStore interface {
	FindAll(limit, offset int, search string) ([]models.Akun, int, error)
	GetAll() ([]models.Akun, error)
	FindByID(id string) (*models.Akun, error)
	Create(akun *models.Akun) error
	Update(akun *models.Akun) error
	Delete(id string) error
}

type SubAkunStore interface {
	FindAll(limit, offset int, search string) ([]models.SubAkun, int, error)
	GetAll() ([]models.SubAkun, error)
	FindByID(id string) (*models.SubAkun, error)
	CountByAkun(akunID string) (int, error)
	Create(subAkun *models.SubAkun) error
	Update(subAkun *models.SubAkun) error
	Delete(id string) error
}

type DataAkunStore interface {
	FindAll(limit, offset int, search string) ([]models.DataAkun, int, error)
	GetAll() ([]models.DataAkun, error)
	FindByID(id string) (*models.DataAkun, error)
	CountBySubAkun(subAkunID string) (int, error)
	Create(dataAkun *models.DataAkun) error
	Update(dataAkun *models.DataAkun) error
	Delete(id string) error
}

type TipeJurnalStore interface {
	FindAll(limit, offset int, search string) ([]models.TipeJurnal, int, error)
	FindByID(id string) (*models.TipeJurnal, error)
	Create(tipe *models.TipeJurnal) error
	Update(tipe *models.TipeJurnal) error
	Delete(id string) error
}

type JurnalStore interface {
	FindAll() ([]models.JurnalDetail, error)
	FindByDataAkun(dataAkunID string, period *models.DateRange) ([]models.JurnalDetail, error)
	FindByProfil(profilID string) ([]models.JurnalDetail, error)
	FindByID(id string) (*models.Jurnal, error)
	Create(jurnal *models.Jurnal) error
	CreateMany(entries []models.Jurnal) error
	Update(jurnal *models.Jurnal) error
	Delete(id string) error
}

type RoleStore interface {
	FindAll(limit, offset int) ([]models.Role, int, error)
	FindByID(id string) (*models.Role, error)
	FindByName(name string) (*models.Role, error)
	Create(role *models.Role) error
	Update(role *models.Role) error
	Delete(id string) error
}

type ProfilStore interface {
	FindAll(limit, offset int, search string) ([]models.Profil, int, error)
	FindByID(id string) (*models.Profil, error)
	FindByIdentifier(identifier string) (*models.Profil, error)
	UsernameTaken(username, exceptID string) (bool, error)
	EmailTaken(email, exceptID string) (bool, error)
	Create(profil *models.Profil) error
	Update(profil *models.Profil) error
	Delete(id string) error
}

type TokenStore interface {
	Revoke(ctx context.Context, fingerprint string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, fingerprint string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}
