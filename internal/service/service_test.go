package service

import (
	"io"
	"testing"
	"time"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/repository/repotest"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppURL:          "http://localhost:8080",
		JWTSecret:       "test-secret",
		JWTAccessExpire: time.Hour,
		UploadPath:      t.TempDir(),
	}
}

type fixture struct {
	store   *repotest.Store
	chart   *ChartService
	jurnal  *JurnalService
	profils *ProfilService
	auth    *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.New()
	cfg := testConfig(t)
	logger := testLogger()
	return &fixture{
		store:   store,
		chart:   NewChartService(store.Akun(), store.SubAkun(), store.DataAkun(), logger),
		jurnal:  NewJurnalService(store.Jurnal(), store.TipeJurnal(), store.DataAkun(), logger),
		profils: NewProfilService(store.Role(), store.Profil(), cfg, logger),
		auth:    NewAuthService(store.Profil(), store.Token(), cfg, logger),
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
