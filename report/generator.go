package report

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/tally/metrics"
	"github.com/remiges-tech/tally/objstore"
)

// Metric names recorded by the Generator. The application is expected to
// register them before use.
const (
	MetricReportsGenerated = "tally_reports_generated_total"
	MetricReportFailures   = "tally_report_failures_total"
)

// Failure stages used as the label value of MetricReportFailures.
const (
	StageSource = "source"
	StageSink   = "sink"
)

// GeneratorConfig holds configuration for statistic generation.
type GeneratorConfig struct {
	// Strict makes malformed source lines (wrong field count or
	// non-numeric amount) fail the whole read instead of being skipped.
	Strict bool
}

// Generator runs the statistics pipeline: read and aggregate the source
// transaction log, render the report, and write it back to the store.
type Generator struct {
	store   objstore.ObjectStore
	logger  *logharbour.Logger
	metrics metrics.Metrics
	config  GeneratorConfig
}

// NewGenerator creates a Generator over the given store. The metrics
// recorder may be nil, in which case nothing is recorded.
func NewGenerator(store objstore.ObjectStore, logger *logharbour.Logger, m metrics.Metrics, config GeneratorConfig) *Generator {
	return &Generator{
		store:   store,
		logger:  logger,
		metrics: m,
		config:  config,
	}
}

// GetStatistic reads the transaction log identified by fromObject,
// aggregates its supply and buy totals, writes the rendered report to
// toObject (replacing any previous content) and returns the report.
//
// Failures reading the source surface as SourceReadError and failures
// writing the destination as SinkWriteError; both are fatal and abort the
// call with the destination untouched in the source-failure case. There
// are no retries.
func (g *Generator) GetStatistic(ctx context.Context, fromObject, toObject string) (Report, error) {
	genID := uuid.New().String()

	totals, err := g.readAndCalculateTotals(ctx, fromObject)
	if err != nil {
		g.logger.Error(err).LogActivity("Failed to read transaction log", map[string]any{
			"generation_id": genID,
			"source":        fromObject,
		})
		g.recordFailure(StageSource)
		return Report{}, err
	}

	rep := NewReport(totals)

	if err := g.writeReport(ctx, toObject, rep); err != nil {
		g.logger.Error(err).LogActivity("Failed to write report", map[string]any{
			"generation_id": genID,
			"dest":          toObject,
		})
		g.recordFailure(StageSink)
		return Report{}, err
	}

	g.logger.Info().LogActivity("Report generated", map[string]any{
		"generation_id": genID,
		"source":        fromObject,
		"dest":          toObject,
		"supply":        rep.Supply,
		"buy":           rep.Buy,
		"result":        rep.Result,
	})
	if g.metrics != nil {
		g.metrics.Record(MetricReportsGenerated, 1)
	}

	return rep, nil
}

// readAndCalculateTotals opens the source object and aggregates it. The
// reader is released on every exit path.
func (g *Generator) readAndCalculateTotals(ctx context.Context, fromObject string) (Totals, error) {
	rc, err := g.store.Get(ctx, fromObject)
	if err != nil {
		return Totals{}, SourceReadError{Source: fromObject, Err: err}
	}
	defer rc.Close()

	totals, err := ReadTotals(rc, g.config.Strict)
	if err != nil {
		return Totals{}, SourceReadError{Source: fromObject, Err: err}
	}
	return totals, nil
}

// writeReport stores the rendered report, replacing any prior content of
// the destination object.
func (g *Generator) writeReport(ctx context.Context, toObject string, rep Report) error {
	text := rep.String()
	contentType := mimetype.Detect([]byte(text)).String()
	if err := g.store.Put(ctx, toObject, strings.NewReader(text), int64(len(text)), contentType); err != nil {
		return SinkWriteError{Dest: toObject, Err: err}
	}
	return nil
}

func (g *Generator) recordFailure(stage string) {
	if g.metrics != nil {
		g.metrics.RecordWithLabels(MetricReportFailures, 1, stage)
	}
}
