package facematcherrors

import (
	"face-logbook/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmptyEmbedding = apperror.New(
		apperror.CodeInvalidInput,
		"Embedding must not be empty",
		http.StatusBadRequest,
	)
	ErrZeroEmbedding = apperror.New(
		apperror.CodeInvalidInput,
		"Embedding has zero norm",
		http.StatusBadRequest,
	)
	ErrNonFiniteEmbedding = apperror.New(
		apperror.CodeInvalidInput,
		"Embedding contains NaN or Inf",
		http.StatusBadRequest,
	)
	ErrDimensionMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Embedding dimensionality does not match the roster",
		http.StatusBadRequest,
	)
)
