// Package recognition runs every face detected in one frame through the
// matcher and the attendance state machine.
package recognition

import (
	"context"
	"fmt"
	"time"

	"face-logbook/internal/attendance"
	"face-logbook/internal/facematch"
	"face-logbook/internal/shared/apperror"
	"face-logbook/internal/shared/clock"

	"go.uber.org/zap"
)

//go:generate mockgen -source=recognition_service.go -destination=mock/recognition_service_mock.go -package=mock
type Service interface {
	ProcessFrame(ctx context.Context, faces []DetectedFace) (FrameResult, error)
}

type service struct {
	matcher    facematch.Service
	attendance attendance.Service
	clock      clock.Clock
	logger     *zap.Logger
}

func NewService(matcher facematch.Service, att attendance.Service, c clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("recognition.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recognition.service")
	}
	if c == nil {
		c = clock.System(time.UTC)
	}
	return &service{
		matcher:    matcher,
		attendance: att,
		clock:      c,
		logger:     l,
	}
}

// ProcessFrame stamps every face with the same capture time. Faces whose
// embedding is malformed or below threshold are reported as unknown_<i>,
// where i is the face's index in the frame. A storage failure aborts the
// frame and faces already applied stay applied.
func (s *service) ProcessFrame(ctx context.Context, faces []DetectedFace) (FrameResult, error) {
	started := time.Now()
	now := s.clock.Now()

	result := FrameResult{
		Recognized:        []RecognizedFace{},
		UnrecognizedFaces: []UnknownFace{},
		TotalFaces:        len(faces),
	}

	for i, face := range faces {
		match, err := s.matcher.Match(ctx, face.Embedding, nil)
		if err != nil {
			if !apperror.IsCode(err, apperror.CodeInvalidInput) {
				return FrameResult{}, err
			}
			s.logger.Debug("skip face with malformed embedding", zap.Int("index", i), zap.Error(err))
		}
		if err != nil || !match.Matched {
			result.UnrecognizedCount++
			result.UnrecognizedFaces = append(result.UnrecognizedFaces, UnknownFace{
				ID:    fmt.Sprintf("unknown_%d", i),
				BBox:  face.BBox,
				Score: match.Score,
			})
			continue
		}

		res, err := s.attendance.ProcessDetection(ctx, match.IdentityID, now)
		if err != nil {
			s.logger.Error("apply detection failed",
				zap.Int("index", i),
				zap.String("identity_id", match.IdentityID),
				zap.Error(err),
			)
			return FrameResult{}, err
		}
		result.Recognized = append(result.Recognized, RecognizedFace{
			IdentityID: match.IdentityID,
			Name:       match.Name,
			Score:      match.Score,
			BBox:       face.BBox,
			Action:     string(res.Outcome),
		})
	}

	result.ProcessingTimeMS = time.Since(started).Milliseconds()
	s.logger.Info("frame processed",
		zap.Int("faces", len(faces)),
		zap.Int("recognized", len(result.Recognized)),
		zap.Int("unrecognized", result.UnrecognizedCount),
	)
	return result, nil
}
