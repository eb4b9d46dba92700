// Package facematch resolves a face embedding to an enrolled identity by
// exhaustive cosine similarity over the roster.
package facematch

import (
	"context"

	"face-logbook/internal/identity"
	"face-logbook/internal/metrics"
	"face-logbook/internal/shared/apperror"

	"go.uber.org/zap"
)

//go:generate mockgen -source=facematch_service.go -destination=mock/facematch_service_mock.go -package=mock
type Service interface {
	// Match compares embedding with every identity that has a stored
	// embedding. A nil threshold uses the configured default.
	Match(ctx context.Context, embedding []float32, threshold *float64) (MatchResult, error)
}

type service struct {
	identities identity.Repository
	threshold  float64
	metrics    *metrics.Recorder
	logger     *zap.Logger
}

func NewService(identities identity.Repository, threshold float64, recorder *metrics.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("facematch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("facematch.service")
	}
	return &service{
		identities: identities,
		threshold:  threshold,
		metrics:    recorder,
		logger:     l,
	}
}

func (s *service) Match(ctx context.Context, embedding []float32, threshold *float64) (MatchResult, error) {
	limit := s.threshold
	if threshold != nil {
		limit = *threshold
	}

	query, err := Normalize(embedding)
	if err != nil {
		s.metrics.ObserveInvalidQuery()
		s.logger.Warn("reject malformed embedding", zap.Int("dims", len(embedding)), zap.Error(err))
		return MatchResult{Threshold: limit}, err
	}

	candidates, err := s.identities.ListWithEmbedding(ctx)
	if err != nil {
		s.logger.Error("list roster embeddings failed", zap.Error(err))
		return MatchResult{Threshold: limit}, apperror.Persistence(err)
	}

	res, err := best(query, candidates)
	if err != nil {
		s.metrics.ObserveInvalidQuery()
		s.logger.Warn("reject embedding", zap.Int("dims", len(query)), zap.Error(err))
		return MatchResult{Threshold: limit}, err
	}
	res.Threshold = limit
	res.Matched = res.IdentityID != "" && res.Score >= limit
	if !res.Matched {
		res.IdentityID = ""
		res.Name = ""
		res.GroupID = nil
	}

	s.metrics.ObserveMatch(res.Score, res.Matched)
	s.logger.Debug("face match evaluated",
		zap.Int("candidates", len(candidates)),
		zap.Float64("score", res.Score),
		zap.Float64("threshold", limit),
		zap.Bool("matched", res.Matched),
		zap.String("identity_id", res.IdentityID),
	)
	return res, nil
}

// best scans candidates in the given order. A later candidate replaces the
// current best only with a strictly greater score, so the first one wins ties.
// With no candidates the score is 0.
func best(query []float32, candidates []identity.Identity) (MatchResult, error) {
	var (
		res   MatchResult
		found bool
	)
	for i := range candidates {
		stored := candidates[i].Vector()
		if stored == nil {
			continue
		}
		score, err := Dot(query, stored)
		if err != nil {
			return MatchResult{}, err
		}
		if !found || score > res.Score {
			found = true
			res = MatchResult{
				IdentityID: candidates[i].ID,
				Name:       candidates[i].Name,
				GroupID:    candidates[i].GroupID,
				Score:      score,
			}
		}
	}
	return res, nil
}
