package facematch_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"face-logbook/internal/facematch"
	facematcherrors "face-logbook/internal/facematch/errors"
	"face-logbook/internal/identity"
	identityMock "face-logbook/internal/identity/mock"
	"face-logbook/internal/shared/apperror"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func enrolled(t *testing.T, id string, raw []float32) identity.Identity {
	t.Helper()
	unit, err := facematch.Normalize(raw)
	require.NoError(t, err)
	v := pgvector.NewVector(unit)
	return identity.Identity{ID: id, Name: "name-" + id, Embedding: &v}
}

func randomVector(r *rand.Rand, dims int) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = float32(r.NormFloat64())
	}
	return v
}

func setupMatcher(t *testing.T, roster []identity.Identity) facematch.Service {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := identityMock.NewMockRepository(ctrl)
	repo.EXPECT().ListWithEmbedding(gomock.Any()).Return(roster, nil).AnyTimes()
	return facematch.NewService(repo, 0.60, nil, zap.NewNop())
}

func TestMatch_IdenticalEmbeddingScoresOne(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	raw := randomVector(r, 128)
	svc := setupMatcher(t, []identity.Identity{
		enrolled(t, "S001", randomVector(r, 128)),
		enrolled(t, "S002", raw),
	})

	// Query is not normalized by the caller.
	query := make([]float32, len(raw))
	for i, x := range raw {
		query[i] = x * 3.5
	}

	one := 1.0
	res, err := svc.Match(context.Background(), query, &one)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "S002", res.IdentityID)
	assert.InDelta(t, 1.0, res.Score, 1e-6)
}

func TestMatch_RandomVectorsDoNotMatchNearOne(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	svc := setupMatcher(t, []identity.Identity{enrolled(t, "S001", randomVector(r, 64))})

	threshold := 0.99
	res, err := svc.Match(context.Background(), randomVector(r, 64), &threshold)
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Empty(t, res.IdentityID)
	assert.Less(t, res.Score, 0.99)
}

func TestMatch_Deterministic(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	roster := []identity.Identity{
		enrolled(t, "S001", randomVector(r, 32)),
		enrolled(t, "S002", randomVector(r, 32)),
		enrolled(t, "S003", randomVector(r, 32)),
	}
	svc := setupMatcher(t, roster)
	query := randomVector(r, 32)

	first, err := svc.Match(context.Background(), query, nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.Match(context.Background(), query, nil)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMatch_TieKeepsFirstSeen(t *testing.T) {
	svc := setupMatcher(t, []identity.Identity{
		enrolled(t, "S001", []float32{1, 0, 0}),
		enrolled(t, "S002", []float32{1, 0, 0}),
	})

	res, err := svc.Match(context.Background(), []float32{2, 0, 0}, nil)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, "S001", res.IdentityID)
}

func TestMatch_EdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("empty roster", func(t *testing.T) {
		svc := setupMatcher(t, nil)
		res, err := svc.Match(ctx, []float32{1, 2, 3}, nil)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Equal(t, 0.0, res.Score)
	})

	t.Run("identity without embedding is skipped", func(t *testing.T) {
		svc := setupMatcher(t, []identity.Identity{
			{ID: "S000", Name: "no face"},
			enrolled(t, "S001", []float32{0, 1}),
		})
		res, err := svc.Match(ctx, []float32{0, 1}, nil)
		require.NoError(t, err)
		assert.Equal(t, "S001", res.IdentityID)
	})

	t.Run("below threshold keeps best score", func(t *testing.T) {
		svc := setupMatcher(t, []identity.Identity{enrolled(t, "S001", []float32{1, 0})})
		res, err := svc.Match(ctx, []float32{1, 1}, nil)
		require.NoError(t, err)
		assert.True(t, res.Matched) // cos 45deg ~ 0.707
		high := 0.9
		res, err = svc.Match(ctx, []float32{1, 1}, &high)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.InDelta(t, 0.7071, res.Score, 1e-3)
	})

	t.Run("empty query", func(t *testing.T) {
		svc := setupMatcher(t, nil)
		_, err := svc.Match(ctx, nil, nil)
		assert.ErrorIs(t, err, facematcherrors.ErrEmptyEmbedding)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})

	t.Run("zero query", func(t *testing.T) {
		svc := setupMatcher(t, nil)
		_, err := svc.Match(ctx, []float32{0, 0}, nil)
		assert.ErrorIs(t, err, facematcherrors.ErrZeroEmbedding)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		svc := setupMatcher(t, []identity.Identity{enrolled(t, "S001", []float32{1, 0, 0})})
		_, err := svc.Match(ctx, []float32{1, 0}, nil)
		assert.ErrorIs(t, err, facematcherrors.ErrDimensionMismatch)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})
}

func TestMatch_RepositoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := identityMock.NewMockRepository(ctrl)
	repo.EXPECT().ListWithEmbedding(gomock.Any()).Return(nil, errors.New("connection reset"))

	svc := facematch.NewService(repo, 0.6, nil, zap.NewNop())
	_, err := svc.Match(context.Background(), []float32{1}, nil)
	assert.Equal(t, apperror.CodePersistence, apperror.CodeOf(err))
}

func TestNormalize(t *testing.T) {
	v, err := facematch.Normalize([]float32{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
}
