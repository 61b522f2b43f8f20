package ports

import (
	"context"
	"time"

	"NPSLabeler/internal/domain"
	"NPSLabeler/internal/labeling"
)

// ResponseSource pulls survey responses awaiting labeling from the warehouse.
type ResponseSource interface {
	Fetch(ctx context.Context) ([]domain.Response, error)
}

// Classifier scores one response text against the candidate label taxonomy.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []labeling.Label) (labeling.Scores, error)
}

// ResultSink persists labeled records into the destination table. Save
// appends one chunk; Reset discards prior output before a full reload.
type ResultSink interface {
	Reset(ctx context.Context) error
	Save(ctx context.Context, records []domain.LabeledRecord) error
}

// Exporter mirrors saved chunks into a local artifact for ad-hoc review.
type Exporter interface {
	Reset(ctx context.Context) error
	Export(ctx context.Context, records []domain.LabeledRecord) error
}

// Notifier pushes run summaries to an ops channel.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// Scheduler controls when labeling runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
