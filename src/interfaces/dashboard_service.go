package interfaces

import (
	"context"
	"io"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IDashboardService defines the contract between the HTTP layer and the
// fetch/transform pipeline.
// -----------------------------------------------------------------------------

type IDashboardService interface {

	// -----------------------------------------------------------------------------

	// BuildDashboard runs the full pipeline for one query: validation, cache
	// lookup, provider fetch on miss, analytics transform.
	BuildDashboard(ctx context.Context, q models.MQuery) (*models.MDashboard, error)

	// -----------------------------------------------------------------------------

	// ExportCSV writes the tabular view of the query result to w.
	ExportCSV(ctx context.Context, q models.MQuery, w io.Writer) error

	// -----------------------------------------------------------------------------

	// Defaults returns a query populated with the configured default values.
	Defaults() models.MQuery
}
