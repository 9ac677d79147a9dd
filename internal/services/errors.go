package services

import (
	apierrors "autoreport/internal/errors"
)

var (
	// ErrNoAnalysis is returned by the read operations before any run completed
	ErrNoAnalysis = apierrors.ErrNoAnalysis

	// ErrNoSources is returned when an analysis request carries no files
	ErrNoSources = apierrors.NewAppValidationError("at least one source file is required")
)
