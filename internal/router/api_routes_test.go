package router

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/models"
	"bukubesar-api/internal/repository/repotest"
	"bukubesar-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	app *fiber.App
	svc *Services
}

func newTestAPI(t *testing.T, authRequired bool) *testAPI {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		AppURL:          "http://localhost:8080",
		JWTSecret:       "test-secret",
		JWTAccessExpire: time.Hour,
		AuthRequired:    authRequired,
		UploadMaxSize:   1 << 20,
		UploadPath:      t.TempDir(),
	}
	store := repotest.New()
	svc := &Services{
		Chart:  service.NewChartService(store.Akun(), store.SubAkun(), store.DataAkun(), logger),
		Jurnal: service.NewJurnalService(store.Jurnal(), store.TipeJurnal(), store.DataAkun(), logger),
		Profil: service.NewProfilService(store.Role(), store.Profil(), cfg, logger),
		Auth:   service.NewAuthService(store.Profil(), store.Token(), cfg, logger),
		Excel:  service.NewExcelService(),
	}

	app := fiber.New()
	RegisterAPIRoutes(app.Group("/api"), svc, cfg)
	return &testAPI{app: app, svc: svc}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func (a *testAPI) seedAdmin(t *testing.T) {
	t.Helper()
	role, err := a.svc.Profil.CreateRole(models.RoleRequest{Role: "admin"})
	require.NoError(t, err)
	password := "rahasia123"
	_, err = a.svc.Profil.Create(models.ProfilRequest{RoleID: role.ID, Nama: "Admin", Username: "admin", Password: &password})
	require.NoError(t, err)
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newTestAPI(t, true)

	resp, body := api.do(t, fiber.MethodGet, "/api/akun", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = api.do(t, fiber.MethodGet, "/api/akun", "not-a-jwt", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LoginLogout(t *testing.T) {
	api := newTestAPI(t, true)
	api.seedAdmin(t)

	resp, body := api.do(t, fiber.MethodPost, "/api/login", "", fiber.Map{"username": "admin", "password": "rahasia123"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Login successful", body["message"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "admin", data["username"])
	assert.NotContains(t, data, "password")

	resp, body = api.do(t, fiber.MethodGet, "/api/akun", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "List Data Akun", body["message"])

	resp, body = api.do(t, fiber.MethodPost, "/api/logout", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logged out successfully", body["message"])

	resp, _ = api.do(t, fiber.MethodGet, "/api/akun", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LoginFailuresAreUniform(t *testing.T) {
	api := newTestAPI(t, true)
	api.seedAdmin(t)

	_, wrongPassword := api.do(t, fiber.MethodPost, "/api/login", "", fiber.Map{"username": "admin", "password": "salah12345"})
	resp, unknownUser := api.do(t, fiber.MethodPost, "/api/login", "", fiber.Map{"username": "nobody", "password": "rahasia123"})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Login failed, invalid credentials", unknownUser["message"])
	assert.Equal(t, wrongPassword, unknownUser)

	resp, body := api.do(t, fiber.MethodPost, "/api/login", "", fiber.Map{"username": "admin"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "password")
}

func TestAPI_LoginRateLimited(t *testing.T) {
	api := newTestAPI(t, true)

	var last int
	for i := 0; i < loginAttempts+1; i++ {
		resp, _ := api.do(t, fiber.MethodPost, "/api/login", "", fiber.Map{"username": "nobody", "password": "rahasia123"})
		last = resp.StatusCode
	}
	assert.Equal(t, fiber.StatusTooManyRequests, last)
}

func TestAPI_AkunLifecycle(t *testing.T) {
	api := newTestAPI(t, false)

	resp, body := api.do(t, fiber.MethodPost, "/api/akun", "", fiber.Map{"kode": 100, "nama": "Aset"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Data Akun Berhasil Ditambahkan!", body["message"])
	id := body["data"].(map[string]interface{})["id_akun"].(string)

	resp, body = api.do(t, fiber.MethodGet, "/api/akun/"+id, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Detail Data Akun!", body["message"])

	resp, body = api.do(t, fiber.MethodPut, "/api/akun/"+id, "", fiber.Map{"kode": 100, "nama": "Aktiva"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Aktiva", body["data"].(map[string]interface{})["nama"])

	resp, body = api.do(t, fiber.MethodDelete, "/api/akun/"+id, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Data Akun Berhasil Dihapus!", body["message"])
}

func TestAPI_MissingRows(t *testing.T) {
	api := newTestAPI(t, false)

	resp, body := api.do(t, fiber.MethodGet, "/api/akun/missing", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["data"])

	resp, _ = api.do(t, fiber.MethodPut, "/api/akun/missing", "", fiber.Map{"kode": 1, "nama": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = api.do(t, fiber.MethodDelete, "/api/role/missing", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = api.do(t, fiber.MethodGet, "/api/jurnal/data-akun/missing", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"success": false, "message": "Jurnal not found"}, body)
}

func TestAPI_ValidationErrors(t *testing.T) {
	api := newTestAPI(t, false)

	resp, body := api.do(t, fiber.MethodPost, "/api/akun", "", fiber.Map{})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "kode")
	assert.Contains(t, errs, "nama")

	resp, body = api.do(t, fiber.MethodPost, "/api/sub_akun", "", fiber.Map{"id_akun": "missing", "nama": "Kas"})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "id_akun")
}

func TestAPI_JurnalByDataAkun(t *testing.T) {
	api := newTestAPI(t, false)

	_, body := api.do(t, fiber.MethodPost, "/api/akun", "", fiber.Map{"kode": 100, "nama": "Aset"})
	akunID := body["data"].(map[string]interface{})["id_akun"]
	_, body = api.do(t, fiber.MethodPost, "/api/sub_akun", "", fiber.Map{"id_akun": akunID, "nama": "Kas dan Bank"})
	subID := body["data"].(map[string]interface{})["id_sub_akun"]
	_, body = api.do(t, fiber.MethodPost, "/api/data_akun", "", fiber.Map{"id_sub_akun": subID, "nama": "Kas"})
	kasID := body["data"].(map[string]interface{})["id_data_akun"].(string)
	_, body = api.do(t, fiber.MethodPost, "/api/data_akun", "", fiber.Map{"id_sub_akun": subID, "nama": "Modal"})
	modalID := body["data"].(map[string]interface{})["id_data_akun"].(string)
	_, body = api.do(t, fiber.MethodPost, "/api/tipe_jurnal", "", fiber.Map{"nama": "Umum"})
	tipeID := body["data"].(map[string]interface{})["id_tipe_jurnal"]

	resp, _ := api.do(t, fiber.MethodPost, "/api/banyakjurnal", "", fiber.Map{"jurnal": []fiber.Map{
		{"id_tipe_jurnal": tipeID, "tanggal": "2024-01-05", "nama_transaksi": "Setoran modal", "nominal": 1000000, "id_debit": kasID, "id_kredit": modalID},
		{"id_tipe_jurnal": tipeID, "tanggal": "2024-02-10", "nama_transaksi": "Tarik tunai", "nominal": 250000, "id_debit": modalID, "id_kredit": kasID},
	}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body = api.do(t, fiber.MethodGet, "/api/jurnal/data-akun/"+kasID, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 2)

	resp, body = api.do(t, fiber.MethodGet, "/api/jurnal/data-akun/"+kasID+"/between-date?start_date=2024-01-01&end_date=2024-01-31", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)

	resp, _ = api.do(t, fiber.MethodGet, "/api/jurnal/export?id_data_akun="+kasID, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
}

func TestAPI_ExportChartBeforeIDRoute(t *testing.T) {
	api := newTestAPI(t, false)

	resp, _ := api.do(t, fiber.MethodGet, "/api/akun/export", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get(fiber.HeaderContentType))
}

func (a *testAPI) upload(t *testing.T, path, filename string, content []byte) (*http.Response, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestAPI_JurnalImport(t *testing.T) {
	api := newTestAPI(t, false)

	resp, body := api.upload(t, "/api/jurnal/import", "jurnal.csv", []byte("a,b"))
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "file")

	template, err := api.svc.Excel.JurnalTemplate()
	require.NoError(t, err)
	resp, body = api.upload(t, "/api/jurnal/import", "jurnal.xlsx", template.Bytes())
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "jurnal[0].id_tipe_jurnal")

	resp, _ = api.do(t, fiber.MethodGet, "/api/jurnal", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
