package http

import (
	"context"

	"autoreport/internal/pipeline"
	"autoreport/internal/services"
	"autoreport/internal/validation"
	"autoreport/pkg/contracts/domain"
)

// ReportServiceInterface defines the analysis operations the handlers need
type ReportServiceInterface interface {
	Analyze(ctx context.Context, uploads []services.Upload) (*pipeline.Result, error)
	MarketSummary(ctx context.Context) (domain.MarketSummary, error)
	VOCSummary(ctx context.Context) (domain.VOCSummary, error)
	Rows(ctx context.Context, dataset string, page validation.PageRequest) (*services.RowsPage, error)
	InvalidateCache(ctx context.Context, fingerprint string) services.InvalidateResult
}

var _ ReportServiceInterface = (*services.ReportService)(nil)
