package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"bukubesar-api/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "mysql"), mock
}

func TestTranslate(t *testing.T) {
	assert.Nil(t, translate(nil))
	assert.ErrorIs(t, translate(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), ErrDuplicate)
	assert.ErrorIs(t, translate(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}), ErrForeignKey)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestSearchClause(t *testing.T) {
	clause, args := searchClause("", "nama")
	assert.Empty(t, clause)
	assert.Nil(t, args)

	clause, args = searchClause("kas", "nama", "kode")
	assert.Equal(t, "WHERE nama LIKE ? OR kode LIKE ?", clause)
	assert.Equal(t, []interface{}{"%kas%", "%kas%"}, args)
}

func TestAkunRepository_DeleteCascadesInOneTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAkunRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE j FROM tb_jurnal j`).WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE d FROM tb_data_akun d`).WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM tb_sub_akun WHERE id_akun = \?`).WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM tb_akun WHERE id_akun = \?`).WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete("a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAkunRepository_DeleteRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAkunRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE j FROM tb_jurnal j`).WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE d FROM tb_data_akun d`).WithArgs("a1").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	assert.Error(t, repo.Delete("a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAkunRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAkunRepository(db)

	mock.ExpectQuery(`SELECT .* FROM tb_akun WHERE id_akun = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id_akun", "nama", "kode", "created_at", "updated_at"}))

	_, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubAkunRepository_CountByAkun(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubAkunRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tb_sub_akun WHERE id_akun = \?`).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByAkun("a1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSubAkunRepository_FindByIDAttachesAkun(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSubAkunRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id_sub_akun", "id_akun", "kode", "nama", "created_at", "updated_at", "akun_kode", "akun_nama"}).
		AddRow("s1", "a1", 101, "Cash", now, now, 100, "Assets")
	mock.ExpectQuery(`FROM tb_sub_akun s\s+LEFT JOIN tb_akun a`).WithArgs("s1").WillReturnRows(rows)

	sub, err := repo.FindByID("s1")
	require.NoError(t, err)
	assert.Equal(t, 101, sub.Kode)
	require.NotNil(t, sub.Akun)
	assert.Equal(t, models.AkunRef{ID: "a1", Kode: 100, Nama: "Assets"}, *sub.Akun)
}

func TestDataAkunRepository_CreateForeignKey(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDataAkunRepository(db)

	mock.ExpectExec(`INSERT INTO tb_data_akun`).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err := repo.Create(&models.DataAkun{ID: "d1", SubAkunID: "missing", Nama: "Kas", Kode: 1})
	assert.ErrorIs(t, err, ErrForeignKey)
}

var jurnalDetailColumns = []string{
	"id_jurnal", "id_tipe_jurnal", "tanggal", "nama_transaksi", "nominal", "id_debit", "id_kredit", "id_profil",
	"created_at", "updated_at", "debit_kode", "debit_nama", "kredit_kode", "kredit_nama", "tipe_nama",
}

func TestJurnalRepository_FindByDataAkun(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJurnalRepository(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE \(j.id_debit = \? OR j.id_kredit = \?\) ORDER BY j.tanggal ASC`).
		WithArgs("d1", "d1").
		WillReturnRows(sqlmock.NewRows(jurnalDetailColumns).
			AddRow("j1", "t1", "2024-01-15", "Setor", "1500.00", "d1", "d2", nil, now, now, 102, "Kas", 301, "Modal", "Umum"))

	rows, err := repo.FindByDataAkun("d1", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-15", rows[0].Tanggal.String())
	assert.Equal(t, "1500", rows[0].Nominal.String())
	assert.Equal(t, models.DataAkunRef{ID: "d1", Kode: 102, Nama: "Kas"}, rows[0].DebitAccount)
	assert.Equal(t, models.DataAkunRef{ID: "d2", Kode: 301, Nama: "Modal"}, rows[0].KreditAccount)
	assert.Equal(t, "Umum", rows[0].TipeJurnal.Nama)
	assert.Nil(t, rows[0].ProfilID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJurnalRepository_FindByDataAkunBetween(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJurnalRepository(db)

	mock.ExpectQuery(`AND j.tanggal BETWEEN \? AND \? ORDER BY j.tanggal ASC`).
		WithArgs("d1", "d1", "2024-01-01", "2024-01-31").
		WillReturnRows(sqlmock.NewRows(jurnalDetailColumns))

	period := &models.DateRange{
		Start: models.NewDate(2024, time.January, 1),
		End:   models.NewDate(2024, time.January, 31),
	}
	rows, err := repo.FindByDataAkun("d1", period)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJurnalRepository_CreateManyRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewJurnalRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO tb_jurnal`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO tb_jurnal`).WillReturnError(&mysql.MySQLError{Number: 1452})
	mock.ExpectRollback()

	err := repo.CreateMany([]models.Jurnal{{ID: "j1"}, {ID: "j2"}})
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfilRepository_FindByIdentifierAmbiguous(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfilRepository(db)
	now := time.Now()

	cols := []string{"id_profil", "id_role", "nama", "username", "email", "password", "alamat", "logo", "created_at", "updated_at", "role_name"}
	mock.ExpectQuery(`WHERE p.username = \? OR p.email = \?`).
		WithArgs("budi", "budi").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("p1", "r1", "Budi", "budi", nil, "hash", nil, nil, now, now, "admin").
			AddRow("p2", "r1", "Other", "other", "budi", "hash", nil, nil, now, now, "admin"))

	_, err := repo.FindByIdentifier("budi")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoleRepository_DeleteDetachesJurnal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRoleRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE tb_jurnal j JOIN tb_profil p`).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM tb_profil WHERE id_role = \?`).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM tb_role WHERE id_role = \?`).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete("r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_WithoutRedis(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTokenRepository(db, nil)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	mock.ExpectExec(`INSERT INTO tb_token_blacklist`).
		WithArgs("fp", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Revoke(ctx, "fp", expires))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tb_token_blacklist WHERE token = \? AND expired_at > \?`).
		WithArgs("fp", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	revoked, err := repo.IsRevoked(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, revoked)

	mock.ExpectExec(`DELETE FROM tb_token_blacklist WHERE expired_at <= \?`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 5))
	n, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
