package router

import (
	"time"

	"bukubesar-api/internal/config"
	"bukubesar-api/internal/handler"
	"bukubesar-api/internal/middleware"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	loginAttempts = 5
	loginWindow   = time.Minute
)

// Services is everything the API handlers are built from.
type Services struct {
	Chart  *service.ChartService
	Jurnal *service.JurnalService
	Profil *service.ProfilService
	Auth   *service.AuthService
	Excel  *service.ExcelService
}

// NewServices wires the MySQL repositories into the services. redis may be
// nil, in which case token revocation is checked against MySQL only.
func NewServices(db *sqlx.DB, redis *redis.Client, cfg *config.Config) *Services {
	logger := utils.GetLogger()

	// Initialize repositories
	akunRepo := repository.NewAkunRepository(db)
	subAkunRepo := repository.NewSubAkunRepository(db)
	dataAkunRepo := repository.NewDataAkunRepository(db)
	tipeJurnalRepo := repository.NewTipeJurnalRepository(db)
	jurnalRepo := repository.NewJurnalRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	profilRepo := repository.NewProfilRepository(db)
	tokenRepo := repository.NewTokenRepository(db, redis)

	return &Services{
		Chart:  service.NewChartService(akunRepo, subAkunRepo, dataAkunRepo, logger),
		Jurnal: service.NewJurnalService(jurnalRepo, tipeJurnalRepo, dataAkunRepo, logger),
		Profil: service.NewProfilService(roleRepo, profilRepo, cfg, logger),
		Auth:   service.NewAuthService(profilRepo, tokenRepo, cfg, logger),
		Excel:  service.NewExcelService(),
	}
}

func SetupAPIRoutes(router fiber.Router, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	RegisterAPIRoutes(router, NewServices(db, redis, cfg), cfg)
}

// RegisterAPIRoutes mounts every endpoint on router. Everything except
// /login requires a bearer token unless AUTH_REQUIRED is false.
func RegisterAPIRoutes(router fiber.Router, svc *Services, cfg *config.Config) {
	// Initialize handlers
	authHandler := handler.NewAuthHandler(svc.Auth)
	akunHandler := handler.NewAkunHandler(svc.Chart, svc.Excel)
	subAkunHandler := handler.NewSubAkunHandler(svc.Chart)
	dataAkunHandler := handler.NewDataAkunHandler(svc.Chart)
	tipeJurnalHandler := handler.NewTipeJurnalHandler(svc.Jurnal)
	jurnalHandler := handler.NewJurnalHandler(svc.Jurnal, svc.Excel, cfg)
	roleHandler := handler.NewRoleHandler(svc.Profil)
	profilHandler := handler.NewProfilHandler(svc.Profil, cfg)

	// Public routes
	router.Post("/login", middleware.LoginLimiter(loginAttempts, loginWindow), authHandler.Login)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(svc.Auth, cfg))
	protected.Post("/logout", authHandler.Logout)

	// Akun routes
	akun := protected.Group("/akun")
	akun.Get("/", akunHandler.GetAkun)
	akun.Post("/", akunHandler.CreateAkun)
	akun.Get("/export", akunHandler.ExportChart)
	akun.Get("/:id", akunHandler.ShowAkun)
	akun.Put("/:id", akunHandler.UpdateAkun)
	akun.Delete("/:id", akunHandler.DeleteAkun)

	// Sub akun routes
	subAkun := protected.Group("/sub_akun")
	subAkun.Get("/", subAkunHandler.GetSubAkun)
	subAkun.Post("/", subAkunHandler.CreateSubAkun)
	subAkun.Get("/:id", subAkunHandler.ShowSubAkun)
	subAkun.Put("/:id", subAkunHandler.UpdateSubAkun)
	subAkun.Delete("/:id", subAkunHandler.DeleteSubAkun)

	// Data akun routes
	dataAkun := protected.Group("/data_akun")
	dataAkun.Get("/", dataAkunHandler.GetDataAkun)
	dataAkun.Post("/", dataAkunHandler.CreateDataAkun)
	dataAkun.Get("/:id", dataAkunHandler.ShowDataAkun)
	dataAkun.Put("/:id", dataAkunHandler.UpdateDataAkun)
	dataAkun.Delete("/:id", dataAkunHandler.DeleteDataAkun)

	// Tipe jurnal routes
	tipeJurnal := protected.Group("/tipe_jurnal")
	tipeJurnal.Get("/", tipeJurnalHandler.GetTipeJurnal)
	tipeJurnal.Post("/", tipeJurnalHandler.CreateTipeJurnal)
	tipeJurnal.Get("/:id", tipeJurnalHandler.ShowTipeJurnal)
	tipeJurnal.Put("/:id", tipeJurnalHandler.UpdateTipeJurnal)
	tipeJurnal.Delete("/:id", tipeJurnalHandler.DeleteTipeJurnal)

	// Jurnal routes
	jurnal := protected.Group("/jurnal")
	jurnal.Get("/", jurnalHandler.GetJurnal)
	jurnal.Post("/", jurnalHandler.CreateJurnal)
	jurnal.Get("/export", jurnalHandler.ExportJurnal)
	jurnal.Get("/import/template", jurnalHandler.ImportTemplate)
	jurnal.Post("/import", jurnalHandler.ImportJurnal)
	jurnal.Get("/data-akun/:id", jurnalHandler.GetByDataAkun)
	jurnal.Get("/data-akun/:id/between-date", jurnalHandler.GetByDataAkunBetween)
	jurnal.Get("/profil/:id", jurnalHandler.GetByProfil)
	jurnal.Get("/:id", jurnalHandler.ShowJurnal)
	jurnal.Put("/:id", jurnalHandler.UpdateJurnal)
	jurnal.Delete("/:id", jurnalHandler.DeleteJurnal)
	protected.Post("/banyakjurnal", jurnalHandler.CreateBulkJurnal)

	// Role routes
	role := protected.Group("/role")
	role.Get("/", roleHandler.GetRoles)
	role.Post("/", roleHandler.CreateRole)
	role.Get("/:id", roleHandler.ShowRole)
	role.Put("/:id", roleHandler.UpdateRole)
	role.Delete("/:id", roleHandler.DeleteRole)

	// Profil routes
	profil := protected.Group("/profil")
	profil.Get("/", profilHandler.GetProfils)
	profil.Post("/", profilHandler.CreateProfil)
	profil.Get("/:id", profilHandler.ShowProfil)
	profil.Put("/:id", profilHandler.UpdateProfil)
	profil.Delete("/:id", profilHandler.DeleteProfil)
}
