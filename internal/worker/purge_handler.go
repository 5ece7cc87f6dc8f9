package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Purger removes revoked-token records whose tokens have expired anyway.
type Purger interface {
	PurgeRevoked(ctx context.Context) (int64, error)
}

type PurgeHandler struct {
	purger Purger
	logger *logrus.Logger
}

func NewPurgeHandler(purger Purger, logger *logrus.Logger) *PurgeHandler {
	return &PurgeHandler{
		purger: purger,
		logger: logger,
	}
}

func (h *PurgeHandler) Handle(ctx context.Context, task *asynq.Task) error {
	removed, err := h.purger.PurgeRevoked(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to purge revoked tokens")
		return fmt.Errorf("purge revoked tokens: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"task":    task.Type(),
		"removed": removed,
	}).Info("Purged expired revoked tokens")
	return nil
}
