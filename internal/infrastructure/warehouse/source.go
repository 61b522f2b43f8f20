package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"NPSLabeler/internal/domain"
	"NPSLabeler/internal/ports"
	"NPSLabeler/internal/textutil"
)

// The survey vendor exports one free-text column per rating band; the first
// non-null of the three is the customer response. The column names carry
// punctuation, so they stay quoted.
var responseColumns = [3]string{
	`"we_are_sorry_that_you_had_an_unpleasant_experience._can_you_please_provide_more_information_on_why_you_gave_that_rating?"`,
	`"we_are_glad_you_had_a_great_experience._can_you_please_provide_more_information_on_why_you_gave_that_rating?"`,
	`"thank_you_for_your_response._can_you_please_provide_more_information_on_why_you_gave_that_rating?"`,
}

func coalescedResponse() string {
	return fmt.Sprintf("COALESCE(%s, %s, %s)", responseColumns[0], responseColumns[1], responseColumns[2])
}

// Source reads survey responses awaiting labeling from the raw NPS tables.
// In incremental mode, rows whose response text and service type already
// appear in the output table are filtered out with an anti-join.
type Source struct {
	db          *sqlx.DB
	incremental bool
	logger      *slog.Logger
}

var _ ports.ResponseSource = (*Source)(nil)

func NewSource(db *sqlx.DB, incremental bool, logger *slog.Logger) *Source {
	return &Source{db: db, incremental: incremental, logger: logger}
}

type sourceRow struct {
	Provider sql.NullString `db:"provider_name"`
	Response sql.NullString `db:"customer_response"`
	Service  sql.NullString `db:"type_service"`
}

// buildPendingQuery assembles the fetch query. Aliases are quoted lowercase
// so the driver reports them verbatim instead of upper-folding.
func buildPendingQuery(incremental bool) (string, []any, error) {
	resp := coalescedResponse()

	q := sq.Select(
		`a.provider_name AS "provider_name"`,
		resp+` AS "customer_response"`,
		`b.type_service AS "type_service"`,
	).
		Distinct().
		From(rawTable + " a").
		LeftJoin(domainTable + " b ON a.provider_name = b.name")

	if incremental {
		q = q.
			LeftJoin(outputTable + " c ON " + resp + " = c.customer_response AND b.type_service = c.type_service").
			Where("c.customer_response IS NULL")
	}

	return q.ToSql()
}

// Fetch returns the pending responses. The warehouse text is kept verbatim,
// because the anti-join matches it byte for byte against what the sink wrote;
// the sanitized copy rides alongside for classification. Rows whose sanitized
// text is blank are skipped further down the pipeline.
func (s *Source) Fetch(ctx context.Context) ([]domain.Response, error) {
	query, args, err := buildPendingQuery(s.incremental)
	if err != nil {
		return nil, fmt.Errorf("build pending query: %w", err)
	}

	var rows []sourceRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query pending responses: %w", err)
	}

	responses := make([]domain.Response, 0, len(rows))
	for _, r := range rows {
		responses = append(responses, domain.Response{
			ID:           uuid.New(),
			Text:         r.Response.String,
			CleanText:    textutil.Sanitize(r.Response.String),
			ProviderName: r.Provider.String,
			ServiceType:  r.Service.String,
		})
	}

	s.logger.Info("fetched pending responses", "rows", len(responses), "incremental", s.incremental)
	return responses, nil
}
