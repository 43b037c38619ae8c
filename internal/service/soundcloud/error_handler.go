package soundcloud

import (
	"context"
	"errors"

	"github.com/oshokin/soundcloud-grabber/internal/logger"
)

// handleTrackError logs and records a failed track stage and counts the track as failed.
func (s *ServiceImpl) handleTrackError(ctx context.Context, err error, errCtx *ErrorContext) {
	s.handleStageError(ctx, err, errCtx)
	s.incrementTrackFailed()
}

// handleStageError logs and records a failed stage without touching the track counters.
// Context cancellation is expected on CTRL+C and is not logged.
func (s *ServiceImpl) handleStageError(ctx context.Context, err error, errCtx *ErrorContext) {
	if err == nil {
		return
	}

	if !errors.Is(err, context.Canceled) {
		logger.Errorf(ctx, "%s failed: %v", errCtx.Phase, err)
	}

	s.recordError(errCtx, err)
}
