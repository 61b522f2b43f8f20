package warehouse

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"NPSLabeler/internal/domain"
	"NPSLabeler/internal/ports"
)

const createOutputTable = `CREATE TABLE IF NOT EXISTS ` + outputTable + ` (
	customer_response TEXT,
	main_topic        TEXT,
	sub_topic         TEXT,
	type_service      TEXT
)`

const replaceOutputTable = `CREATE OR REPLACE TABLE ` + outputTable + ` (
	customer_response TEXT,
	main_topic        TEXT,
	sub_topic         TEXT,
	type_service      TEXT
)`

// Sink appends labeled records into the destination table.
type Sink struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ ports.ResultSink = (*Sink)(nil)

func NewSink(db *sqlx.DB, logger *slog.Logger) *Sink {
	return &Sink{db: db, logger: logger}
}

// Reset recreates the destination table empty, discarding prior output. Full
// reloads call this once before the first chunk.
func (s *Sink) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, replaceOutputTable); err != nil {
		return fmt.Errorf("replace output table: %w", err)
	}
	s.logger.Info("output table replaced", "table", outputTable)
	return nil
}

func buildInsert(records []domain.LabeledRecord) (string, []any, error) {
	insert := sq.Insert(outputTable).
		Columns("customer_response", "main_topic", "sub_topic", "type_service")
	for _, rec := range records {
		insert = insert.Values(rec.ResponseText, rec.MainTopic, rec.SubTopic, rec.ServiceType)
	}
	return insert.ToSql()
}

// Save appends one chunk of records, creating the table on first use.
func (s *Sink) Save(ctx context.Context, records []domain.LabeledRecord) error {
	if len(records) == 0 {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, createOutputTable); err != nil {
		return fmt.Errorf("ensure output table: %w", err)
	}

	query, args, err := buildInsert(records)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert labeled records: %w", err)
	}

	s.logger.Info("chunk saved", "table", outputTable, "rows", len(records))
	return nil
}
