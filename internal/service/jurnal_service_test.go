package service

import (
	"errors"
	"testing"

	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledger struct {
	kas, bank, modal *models.DataAkun
	tipe             *models.TipeJurnal
}

func seedLedger(t *testing.T, f *fixture) ledger {
	t.Helper()
	akun, err := f.chart.CreateAkun(models.AkunRequest{Kode: intPtr(100), Nama: "Aset"})
	require.NoError(t, err)
	sub, err := f.chart.CreateSubAkun(models.SubAkunRequest{AkunID: akun.ID, Nama: "Kas dan Bank"})
	require.NoError(t, err)

	var l ledger
	l.kas, err = f.chart.CreateDataAkun(models.DataAkunRequest{SubAkunID: sub.ID, Nama: "Kas"})
	require.NoError(t, err)
	l.bank, err = f.chart.CreateDataAkun(models.DataAkunRequest{SubAkunID: sub.ID, Nama: "Bank"})
	require.NoError(t, err)
	l.modal, err = f.chart.CreateDataAkun(models.DataAkunRequest{SubAkunID: sub.ID, Nama: "Modal"})
	require.NoError(t, err)
	l.tipe, err = f.jurnal.CreateTipe(models.TipeJurnalRequest{Nama: "Umum"})
	require.NoError(t, err)
	return l
}

func (l ledger) entry(tanggal, nama string, nominal int64, debit, kredit *models.DataAkun) models.JurnalRequest {
	n := decimal.NewFromInt(nominal)
	return models.JurnalRequest{
		TipeJurnalID:  l.tipe.ID,
		Tanggal:       tanggal,
		NamaTransaksi: nama,
		Nominal:       &n,
		DebitID:       debit.ID,
		KreditID:      kredit.ID,
	}
}

func TestJurnalService_ListByDataAkun(t *testing.T) {
	f := newFixture(t)
	l := seedLedger(t, f)

	_, err := f.jurnal.Create(l.entry("2024-02-01", "Setor modal", 1000, l.kas, l.modal), "")
	require.NoError(t, err)
	_, err = f.jurnal.Create(l.entry("2024-01-15", "Transfer ke bank", 400, l.bank, l.kas), "")
	require.NoError(t, err)
	_, err = f.jurnal.Create(l.entry("2024-03-01", "Modal ke bank", 50, l.bank, l.modal), "")
	require.NoError(t, err)

	rows, err := f.jurnal.ListByDataAkun(l.kas.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// either side matches; ordered by tanggal
	assert.Equal(t, "Transfer ke bank", rows[0].NamaTransaksi)
	assert.Equal(t, "Setor modal", rows[1].NamaTransaksi)
	assert.Equal(t, l.bank.Kode, rows[0].DebitAccount.Kode)
	assert.Equal(t, "Kas", rows[0].KreditAccount.Nama)
	assert.Equal(t, "Umum", rows[0].TipeJurnal.Nama)

	_, err = f.jurnal.ListByDataAkun("unused")
	assert.ErrorIs(t, err, ErrJurnalNotFound)
}

func TestJurnalService_ListByDataAkunBetween(t *testing.T) {
	f := newFixture(t)
	l := seedLedger(t, f)

	for _, d := range []string{"2024-01-01", "2024-01-31", "2024-02-01"} {
		_, err := f.jurnal.Create(l.entry(d, "Entry "+d, 10, l.kas, l.modal), "")
		require.NoError(t, err)
	}

	rows, err := f.jurnal.ListByDataAkunBetween(l.kas.ID, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, rows, 2, "both bounds are inclusive")

	rows, err = f.jurnal.ListByDataAkunBetween(l.kas.ID, "2024-01-01", "")
	require.NoError(t, err)
	assert.Len(t, rows, 3, "a single bound applies no filter")

	rows, err = f.jurnal.ListByDataAkunBetween(l.kas.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = f.jurnal.ListByDataAkunBetween(l.kas.ID, "2025-01-01", "2025-12-31")
	assert.ErrorIs(t, err, ErrJurnalNotFound)

	_, err = f.jurnal.ListByDataAkunBetween(l.kas.ID, "01/01/2024", "2024-12-31")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "start_date")
}

func TestJurnalService_CreateChecksReferences(t *testing.T) {
	f := newFixture(t)
	l := seedLedger(t, f)

	req := l.entry("2024-01-01", "Bad", 10, l.kas, l.modal)
	req.DebitID = "missing"
	req.TipeJurnalID = "missing"

	_, err := f.jurnal.Create(req, "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"id_debit":       "The selected id_debit is invalid.",
		"id_tipe_jurnal": "The selected id_tipe_jurnal is invalid.",
	}, verr.Fields)

	all, err := f.jurnal.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestJurnalService_ProfilDefaultsToActor(t *testing.T) {
	f := newFixture(t)
	l := seedLedger(t, f)
	role, err := f.profils.CreateRole(models.RoleRequest{Role: "admin"})
	require.NoError(t, err)
	actor, err := f.profils.Create(models.ProfilRequest{RoleID: role.ID, Nama: "Budi", Username: "budi", Password: strPtr("rahasia123")})
	require.NoError(t, err)

	created, err := f.jurnal.Create(l.entry("2024-01-01", "Kas masuk", 10, l.kas, l.modal), actor.ID)
	require.NoError(t, err)
	require.NotNil(t, created.ProfilID)
	assert.Equal(t, actor.ID, *created.ProfilID)

	rows, err := f.jurnal.ListByProfil(actor.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// omitted id_profil keeps the stored one on update
	updated, err := f.jurnal.Update(created.ID, l.entry("2024-01-02", "Kas masuk", 20, l.kas, l.modal))
	require.NoError(t, err)
	require.NotNil(t, updated.ProfilID)
	assert.Equal(t, actor.ID, *updated.ProfilID)
	assert.Equal(t, "20", updated.Nominal.String())

	// deleting the profil detaches its entries
	require.NoError(t, f.profils.Delete(actor.ID))
	got, err := f.jurnal.Get(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProfilID)
	_, err = f.jurnal.ListByProfil(actor.ID)
	assert.ErrorIs(t, err, ErrJurnalNotFound)
}

func TestJurnalService_CreateManyIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	l := seedLedger(t, f)

	bad := l.entry("2024-01-02", "Bad", 10, l.kas, l.modal)
	bad.KreditID = "missing"
	_, err := f.jurnal.CreateMany(models.BulkJurnalRequest{Jurnal: []models.JurnalRequest{
		l.entry("2024-01-01", "Good", 10, l.kas, l.modal),
		bad,
	}}, "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "The selected id_kredit is invalid.", verr.Fields["jurnal[1].id_kredit"])

	all, err := f.jurnal.List()
	require.NoError(t, err)
	assert.Empty(t, all)

	created, err := f.jurnal.CreateMany(models.BulkJurnalRequest{Jurnal: []models.JurnalRequest{
		l.entry("2024-01-01", "One", 10, l.kas, l.modal),
		l.entry("2024-01-02", "Two", 20, l.bank, l.kas),
	}}, "")
	require.NoError(t, err)
	assert.Len(t, created, 2)

	all, err = f.jurnal.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestJurnalService_DeleteDataAkunRemovesEntries(t *testing.T) {
	f := newFixture(t)
	l := seedLedger(t, f)

	_, err := f.jurnal.Create(l.entry("2024-01-01", "Kas masuk", 10, l.kas, l.modal), "")
	require.NoError(t, err)
	require.NoError(t, f.chart.DeleteDataAkun(l.modal.ID))

	_, err = f.jurnal.ListByDataAkun(l.kas.ID)
	assert.ErrorIs(t, err, ErrJurnalNotFound)
}

func TestJurnalService_UpdateMissing(t *testing.T) {
	f := newFixture(t)
	l := seedLedger(t, f)

	_, err := f.jurnal.Update("missing", l.entry("2024-01-01", "x", 1, l.kas, l.modal))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.jurnal.Delete("missing"), repository.ErrNotFound)
}
