package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/repository/repotest"
	"bukubesar-api/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfilService(t *testing.T) *service.ProfilService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := repotest.New()
	return service.NewProfilService(store.Role(), store.Profil(), &config.Config{UploadPath: t.TempDir()}, logger)
}

func TestRunSeed_Idempotent(t *testing.T) {
	profils := testProfilService(t)
	opts := &profilOptions{role: "admin", nama: "Administrator", username: "admin", password: "rahasia123"}

	var out bytes.Buffer
	require.NoError(t, runSeed(&out, profils, opts, true))
	assert.Contains(t, out.String(), `Created role "admin"`)
	assert.Contains(t, out.String(), `Created profil "admin"`)

	out.Reset()
	require.NoError(t, runSeed(&out, profils, opts, true))
	assert.Equal(t, "Profil \"admin\" already exists\n", out.String())
}

func TestRunSeed_CreateProfilFailsOnDuplicate(t *testing.T) {
	profils := testProfilService(t)
	opts := &profilOptions{role: "staff", nama: "Budi", username: "budi", password: "rahasia123"}

	require.NoError(t, runSeed(io.Discard, profils, opts, false))

	err := runSeed(io.Discard, profils, opts, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")
}

func TestRunSeed_ShortPassword(t *testing.T) {
	profils := testProfilService(t)
	opts := &profilOptions{role: "admin", nama: "Administrator", username: "admin", password: "short"}

	err := runSeed(io.Discard, profils, opts, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "seed", "create-profil", "jurnal-template"}, names)
}

func TestWriteJurnalTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jurnal.xlsx")
	require.NoError(t, writeJurnalTemplate(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reqs, err := service.NewExcelService().ParseJurnalImport(f)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}
