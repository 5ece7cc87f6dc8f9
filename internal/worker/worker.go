package worker

import (
	"bukubesar-api/internal/config"
	"bukubesar-api/internal/repository"
	"bukubesar-api/internal/service"
	"bukubesar-api/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	TypePurgeRevokedTokens = "auth:purge_revoked_tokens"

	QueueMaintenance = "maintenance"
)

// NewPurgeRevokedTokensTask builds the task the scheduler enqueues.
func NewPurgeRevokedTokensTask() *asynq.Task {
	return asynq.NewTask(TypePurgeRevokedTokens, nil, asynq.Queue(QueueMaintenance), asynq.MaxRetry(3))
}

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	logger := utils.GetLogger()

	profilRepo := repository.NewProfilRepository(db)
	tokenRepo := repository.NewTokenRepository(db, redis)
	authService := service.NewAuthService(profilRepo, tokenRepo, cfg, logger)

	// Register task handlers
	purgeHandler := NewPurgeHandler(authService, logger)
	mux.HandleFunc(TypePurgeRevokedTokens, purgeHandler.Handle)
}
