package router

import (
	"bukubesar-api/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	// Uploaded logos
	app.Static("/storage", cfg.UploadPath)

	api := app.Group("/api")
	SetupAPIRoutes(api, db, redis, cfg)
}
