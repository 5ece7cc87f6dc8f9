package service

import (
	"context"
	"errors"
	"fmt"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/utils"

	"github.com/sirupsen/logrus"
)

type AuthService struct {
	profilStore ProfilStore
	tokenStore  TokenStore
	cfg         *config.Config
	logger      *logrus.Logger
}

func NewAuthService(profilStore ProfilStore, tokenStore TokenStore, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		profilStore: profilStore,
		tokenStore:  tokenStore,
		cfg:         cfg,
		logger:      logger,
	}
}

// Login checks the identifier (username or email) and password. Every
// credential failure returns ErrInvalidCredentials so callers cannot tell an
// unknown user from a wrong password.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	profil, err := s.profilStore.FindByIdentifier(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find profil: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, profil.Password) {
		s.logger.WithField("id_profil", profil.ID).Warn("Login rejected")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateAccessToken(profil.ID, profil.Username, profil.RoleID, s.cfg.JWTSecret, s.cfg.JWTAccessExpire)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	if profil.Logo != nil {
		profil.LogoURL = s.cfg.LogoURL(*profil.Logo)
	}
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Profil:    profil.ToAuthProfil(),
	}, nil
}

// Authenticate validates a bearer token and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	revoked, err := s.tokenStore.IsRevoked(ctx, utils.TokenFingerprint(token, s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("check revoked token: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the token until it would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return ErrInvalidToken
	}
	if err := s.tokenStore.Revoke(ctx, utils.TokenFingerprint(token, s.cfg.JWTSecret), claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.WithField("id_profil", claims.ProfilID).Info("Token revoked")
	return nil
}

// PurgeRevoked drops revoked-token entries that have expired anyway.
func (s *AuthService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.tokenStore.PurgeExpired(ctx)
}
