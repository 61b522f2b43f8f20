package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"NPSLabeler/internal/domain"
	"NPSLabeler/internal/labeling"
	"NPSLabeler/internal/ports"
)

// PipelineDeps wires the driven adapters into the labeling workflow.
type PipelineDeps struct {
	Source     ports.ResponseSource
	Classifier ports.Classifier
	Sink       ports.ResultSink
	Exporter   ports.Exporter
	Notifier   ports.Notifier
	Logger     *slog.Logger

	// Taxonomy is the candidate label list sent to the classifier. It must
	// cover every label the deriver reads.
	Taxonomy []labeling.Label

	ChunkSize   int
	Workers     int
	Timeout     time.Duration
	Incremental bool
}

// Pipeline implements the labeling workflow: fetch pending responses, score
// them against the taxonomy, derive topics, and save chunk by chunk.
type Pipeline struct {
	source     ports.ResponseSource
	classifier ports.Classifier
	sink       ports.ResultSink
	exporter   ports.Exporter
	notifier   ports.Notifier
	logger     *slog.Logger

	deriver  *labeling.Deriver
	taxonomy []labeling.Label
	memo     *scoreMemo

	chunkSize   int
	workers     int
	timeout     time.Duration
	incremental bool
}

// NewPipeline constructs the workflow and validates the taxonomy contract
// up front, before any warehouse or classifier traffic.
func NewPipeline(deps PipelineDeps) (*Pipeline, error) {
	if deps.Source == nil || deps.Classifier == nil || deps.Sink == nil {
		return nil, fmt.Errorf("pipeline requires a source, a classifier, and a sink")
	}
	if err := labeling.CheckTaxonomy(deps.Taxonomy); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	chunkSize := deps.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 100
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = 4
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Pipeline{
		source:      deps.Source,
		classifier:  deps.Classifier,
		sink:        deps.Sink,
		exporter:    deps.Exporter,
		notifier:    deps.Notifier,
		logger:      logger,
		deriver:     labeling.NewDeriver(),
		taxonomy:    deps.Taxonomy,
		memo:        newScoreMemo(),
		chunkSize:   chunkSize,
		workers:     workers,
		timeout:     timeout,
		incremental: deps.Incremental,
	}, nil
}

// Run executes one full labeling pass. Chunks already saved stay saved when
// a later chunk fails.
func (p *Pipeline) Run(ctx context.Context) (domain.RunStats, error) {
	var stats domain.RunStats
	p.memo.reset()

	responses, err := p.source.Fetch(ctx)
	if err != nil {
		return stats, fmt.Errorf("fetch responses: %w", err)
	}
	stats.Fetched = len(responses)

	pending := make([]domain.Response, 0, len(responses))
	for _, r := range responses {
		if r.CleanText == "" {
			stats.Blank++
			continue
		}
		pending = append(pending, r)
	}

	if !p.incremental {
		if err := p.sink.Reset(ctx); err != nil {
			return stats, fmt.Errorf("reset sink: %w", err)
		}
		if p.exporter != nil {
			if err := p.exporter.Reset(ctx); err != nil {
				return stats, fmt.Errorf("reset exporter: %w", err)
			}
		}
	}

	for start := 0; start < len(pending); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[start:end]
		stats.Chunks++

		records, err := p.LabelBatch(ctx, chunk)
		if err != nil {
			return stats, fmt.Errorf("label chunk %d: %w", stats.Chunks, err)
		}
		stats.Labeled += len(records)
		stats.Failed += len(chunk) - len(records)

		if err := p.sink.Save(ctx, records); err != nil {
			return stats, fmt.Errorf("save chunk %d: %w", stats.Chunks, err)
		}
		if p.exporter != nil {
			if err := p.exporter.Export(ctx, records); err != nil {
				return stats, fmt.Errorf("export chunk %d: %w", stats.Chunks, err)
			}
		}

		p.logger.Info("chunk complete",
			"chunk", stats.Chunks,
			"rows", len(chunk),
			"labeled", len(records))
	}

	p.logger.Info("run complete",
		"fetched", stats.Fetched,
		"blank", stats.Blank,
		"labeled", stats.Labeled,
		"failed", stats.Failed,
		"chunks", stats.Chunks)

	if p.notifier != nil {
		if err := p.notifier.PublishSummary(ctx, summarize(stats, p.incremental)); err != nil {
			p.logger.Warn("publish summary failed", "error", err)
		}
	}

	return stats, nil
}

// LabelBatch classifies and labels one batch of responses concurrently. Rows
// whose classification fails are logged and dropped; the survivors come back
// in input order. The returned error is non-nil only when the whole batch
// must abort: run cancellation or a taxonomy contract violation.
func (p *Pipeline) LabelBatch(ctx context.Context, responses []domain.Response) ([]domain.LabeledRecord, error) {
	results := make([]*domain.LabeledRecord, len(responses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range responses {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resp := responses[i]

			scores, err := p.scoresFor(gctx, resp.CleanText)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				p.logger.Error("classification failed",
					"offset", i,
					"text", resp.CleanText,
					"error", err)
				return nil
			}

			flags, err := p.deriver.Derive(resp.CleanText, scores)
			if err != nil {
				return err
			}
			mainTopic, subTopic := labeling.Reduce(flags)
			p.logger.Debug("row labeled",
				"id", resp.ID,
				"main_topic", mainTopic,
				"sub_topic", subTopic)

			// The warehouse text goes out verbatim; incremental fetches
			// match output rows against it byte for byte.
			results[i] = &domain.LabeledRecord{
				ResponseText: resp.Text,
				MainTopic:    mainTopic,
				SubTopic:     subTopic,
				ServiceType:  resp.ServiceType,
				ProviderName: resp.ProviderName,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]domain.LabeledRecord, 0, len(responses))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	return records, nil
}

// scoresFor classifies one text under the per-call timeout, memoizing by
// sanitized text so repeated responses within a run hit the model once.
func (p *Pipeline) scoresFor(ctx context.Context, text string) (labeling.Scores, error) {
	if scores, ok := p.memo.get(text); ok {
		return scores, nil
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	scores, err := p.classifier.Classify(cctx, text, p.taxonomy)
	cancel()
	if err != nil {
		return nil, err
	}

	p.memo.put(text, scores)
	return scores, nil
}

func summarize(stats domain.RunStats, incremental bool) string {
	mode := "full"
	if incremental {
		mode = "incremental"
	}
	return fmt.Sprintf("NPS labeling (%s): %d fetched, %d blank, %d labeled, %d failed, %d chunks",
		mode, stats.Fetched, stats.Blank, stats.Labeled, stats.Failed, stats.Chunks)
}
