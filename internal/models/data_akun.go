package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataAkun is a leaf posting account; journal entries reference it.
type DataAkun struct {
	ID        string              `db:"id_data_akun" json:"id_data_akun"`
	SubAkunID string              `db:"id_sub_akun" json:"id_sub_akun"`
	Kode      int                 `db:"kode" json:"kode"`
	Nama      string              `db:"nama" json:"nama"`
	Debit     decimal.NullDecimal `db:"debit" json:"debit"`
	Kredit    decimal.NullDecimal `db:"kredit" json:"kredit"`
	SubAkun   *SubAkunRef         `db:"-" json:"sub_akun,omitempty"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
}

type DataAkunRequest struct {
	SubAkunID string           `json:"id_sub_akun" validate:"required"`
	Nama      string           `json:"nama" validate:"required"`
	Debit     *decimal.Decimal `json:"debit"`
	Kredit    *decimal.Decimal `json:"kredit"`
}

// DataAkunRef is the account summary attached to journal rows.
type DataAkunRef struct {
	ID   string `json:"id_data_akun"`
	Kode int    `json:"kode"`
	Nama string `json:"nama"`
}
