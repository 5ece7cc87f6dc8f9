package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTClaims struct {
	ProfilID string `json:"id_profil"`
	Username string `json:"username"`
	RoleID   string `json:"id_role"`
	jwt.RegisteredClaims
}

func GenerateAccessToken(profilID, username, roleID, secret string, expire time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expire)
	claims := JWTClaims{
		ProfilID: profilID,
		Username: username,
		RoleID:   roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   profilID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func ValidateToken(tokenString, secret string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// TokenFingerprint is the HMAC under which a revoked token is recorded,
// so raw tokens never reach storage.
func TokenFingerprint(tokenString, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write([]byte(tokenString))
	return hex.EncodeToString(m.Sum(nil))
}
