package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipeJurnal classifies journal entries.
type TipeJurnal struct {
	ID        string    `db:"id_tipe_jurnal" json:"id_tipe_jurnal"`
	Nama      string    `db:"nama" json:"nama"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type TipeJurnalRequest struct {
	Nama string `json:"nama" validate:"required"`
}

type TipeJurnalRef struct {
	ID   string `json:"id_tipe_jurnal"`
	Nama string `json:"nama"`
}

// Jurnal debits one DataAkun and credits another.
type Jurnal struct {
	ID            string          `db:"id_jurnal" json:"id_jurnal"`
	TipeJurnalID  string          `db:"id_tipe_jurnal" json:"id_tipe_jurnal"`
	Tanggal       Date            `db:"tanggal" json:"tanggal"`
	NamaTransaksi string          `db:"nama_transaksi" json:"nama_transaksi"`
	Nominal       decimal.Decimal `db:"nominal" json:"nominal"`
	DebitID       string          `db:"id_debit" json:"id_debit"`
	KreditID      string          `db:"id_kredit" json:"id_kredit"`
	ProfilID      *string         `db:"id_profil" json:"id_profil"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// JurnalDetail is a Jurnal with both accounts and its type resolved.
type JurnalDetail struct {
	Jurnal
	DebitAccount  DataAkunRef   `json:"debit_account"`
	KreditAccount DataAkunRef   `json:"kredit_account"`
	TipeJurnal    TipeJurnalRef `json:"tipe_jurnal"`
}

type JurnalRequest struct {
	TipeJurnalID  string           `json:"id_tipe_jurnal" validate:"required"`
	Tanggal       string           `json:"tanggal" validate:"required,jurnaldate"`
	NamaTransaksi string           `json:"nama_transaksi" validate:"required"`
	Nominal       *decimal.Decimal `json:"nominal" validate:"required"`
	DebitID       string           `json:"id_debit" validate:"required"`
	KreditID      string           `json:"id_kredit" validate:"required"`
	ProfilID      *string          `json:"id_profil"`
}

type BulkJurnalRequest struct {
	Jurnal []JurnalRequest `json:"jurnal" validate:"required,min=1,dive"`
}
