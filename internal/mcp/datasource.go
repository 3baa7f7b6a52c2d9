package mcp

import (
	"context"
	"net/url"
	"time"

	"github.com/meltforce/trainsphere/internal/forms"
	"github.com/meltforce/trainsphere/internal/models"
	"github.com/meltforce/trainsphere/internal/progress"
	"github.com/meltforce/trainsphere/internal/report"
	"github.com/meltforce/trainsphere/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Local (direct database)
// and HTTPClient (remote via REST API) both satisfy this interface.
type DataSource interface {
	GetProgress(ctx context.Context, period, category string) (*progress.Overview, error)
	GetWorkout(ctx context.Context, id int64) (*models.SessionDetail, error)
	LogWorkout(ctx context.Context, form url.Values) (int64, error)
	GetReport(ctx context.Context) (*models.ReportDocument, error)
}

// Local implements DataSource against the embedded database.
type Local struct {
	db       *storage.DB
	progress *progress.Aggregator
	report   *report.Compiler
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a Local data source from the storage and domain layers.
func NewLocal(db *storage.DB, agg *progress.Aggregator, compiler *report.Compiler) *Local {
	return &Local{db: db, progress: agg, report: compiler}
}

func (l *Local) GetProgress(ctx context.Context, period, category string) (*progress.Overview, error) {
	return l.progress.Overview(ctx, period, category, 0)
}

func (l *Local) GetWorkout(ctx context.Context, id int64) (*models.SessionDetail, error) {
	return l.db.GetWorkout(ctx, id)
}

func (l *Local) LogWorkout(ctx context.Context, form url.Values) (int64, error) {
	sub, err := forms.ParseWorkout(form, time.Now())
	if err != nil {
		return 0, err
	}
	return l.db.CreateWorkout(ctx, sub.Session(), sub.Entries())
}

func (l *Local) GetReport(ctx context.Context) (*models.ReportDocument, error) {
	return l.report.Build(ctx)
}
