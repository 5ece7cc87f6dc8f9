package models

import "time"

// Akun is a top-level account category.
type Akun struct {
	ID        string    `db:"id_akun" json:"id_akun"`
	Nama      string    `db:"nama" json:"nama"`
	Kode      int       `db:"kode" json:"kode"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type AkunRequest struct {
	Kode *int   `json:"kode" validate:"required"`
	Nama string `json:"nama" validate:"required"`
}

// AkunRef is the slim form embedded in child listings.
type AkunRef struct {
	ID   string `db:"id_akun" json:"id_akun"`
	Kode int    `db:"kode" json:"kode"`
	Nama string `db:"nama" json:"nama"`
}

// SubAkun is an account grouped under one Akun.
type SubAkun struct {
	ID        string    `db:"id_sub_akun" json:"id_sub_akun"`
	AkunID    string    `db:"id_akun" json:"id_akun"`
	Kode      int       `db:"kode" json:"kode"`
	Nama      string    `db:"nama" json:"nama"`
	Akun      *AkunRef  `db:"-" json:"akun,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubAkunRequest carries no kode: it is derived from the parent.
type SubAkunRequest struct {
	AkunID string `json:"id_akun" validate:"required"`
	Nama   string `json:"nama" validate:"required"`
}

type SubAkunRef struct {
	ID   string   `json:"id_sub_akun"`
	Kode int      `json:"kode"`
	Nama string   `json:"nama"`
	Akun *AkunRef `json:"akun,omitempty"`
}
