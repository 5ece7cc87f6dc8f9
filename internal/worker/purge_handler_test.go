package worker

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPurger struct {
	removed int64
	err     error
	calls   int
}

func (s *stubPurger) PurgeRevoked(ctx context.Context) (int64, error) {
	s.calls++
	return s.removed, s.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPurgeHandler_Handle(t *testing.T) {
	purger := &stubPurger{removed: 4}
	h := NewPurgeHandler(purger, quietLogger())

	err := h.Handle(context.Background(), NewPurgeRevokedTokensTask())
	require.NoError(t, err)
	assert.Equal(t, 1, purger.calls)
}

func TestPurgeHandler_HandleError(t *testing.T) {
	purger := &stubPurger{err: errors.New("connection refused")}
	h := NewPurgeHandler(purger, quietLogger())

	err := h.Handle(context.Background(), NewPurgeRevokedTokensTask())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewPurgeRevokedTokensTask(t *testing.T) {
	task := NewPurgeRevokedTokensTask()
	assert.Equal(t, TypePurgeRevokedTokens, task.Type())
	assert.Empty(t, task.Payload())
}
