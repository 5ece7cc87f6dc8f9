package models

import "time"

type Role struct {
	ID        string    `db:"id_role" json:"id_role"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type RoleRequest struct {
	Role string `json:"role" form:"role" validate:"required"`
}

type RoleRef struct {
	ID   string `json:"id_role"`
	Role string `json:"role"`
}

// Profil is a user identity. Password holds a bcrypt hash and is never serialized.
type Profil struct {
	ID        string    `db:"id_profil" json:"id_profil"`
	RoleID    string    `db:"id_role" json:"id_role"`
	Nama      string    `db:"nama" json:"nama"`
	Username  string    `db:"username" json:"username"`
	Email     *string   `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	Alamat    *string   `db:"alamat" json:"alamat"`
	Logo      *string   `db:"logo" json:"logo"`
	LogoURL   string    `db:"-" json:"logo_url,omitempty"`
	Role      *RoleRef  `db:"-" json:"role,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProfilRequest is bound from JSON or multipart forms (logo upload).
type ProfilRequest struct {
	RoleID   string  `json:"id_role" form:"id_role" validate:"required"`
	Nama     string  `json:"nama" form:"nama" validate:"required"`
	Username string  `json:"username" form:"username" validate:"required"`
	Password *string `json:"password" form:"password" validate:"omitempty,min=8"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email"`
	Alamat   *string `json:"alamat" form:"alamat"`
	Logo     *string `json:"logo" form:"-"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthProfil is the login payload: no password hash, no timestamps.
type AuthProfil struct {
	ID       string   `json:"id_profil"`
	RoleID   string   `json:"id_role"`
	Nama     string   `json:"nama"`
	Username string   `json:"username"`
	Email    *string  `json:"email"`
	Alamat   *string  `json:"alamat"`
	Logo     *string  `json:"logo"`
	LogoURL  string   `json:"logo_url,omitempty"`
	Role     *RoleRef `json:"role"`
}

func (p *Profil) ToAuthProfil() AuthProfil {
	return AuthProfil{
		ID:       p.ID,
		RoleID:   p.RoleID,
		Nama:     p.Nama,
		Username: p.Username,
		Email:    p.Email,
		Alamat:   p.Alamat,
		Logo:     p.Logo,
		LogoURL:  p.LogoURL,
		Role:     p.Role,
	}
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Profil    AuthProfil `json:"profil"`
}
