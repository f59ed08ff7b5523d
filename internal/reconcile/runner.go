// =============================================================================
// Express Reconcile - Runner
// =============================================================================
//
// The Runner wraps the pure pipeline with the file work for one export pair:
// load both grids, reconcile, render the summary workbook, save it under the
// configured name. Batch mode creates one Runner per pair; Runners share
// nothing.
//
// =============================================================================

package reconcile

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/tanakrit-dev/express-reconcile/internal/config"
	"github.com/tanakrit-dev/express-reconcile/internal/report"
	"github.com/tanakrit-dev/express-reconcile/internal/workbook"
	"github.com/tanakrit-dev/express-reconcile/pkg/utils"
)

// Runner processes a single sales/stock export pair.
type Runner struct {
	salesPath string
	stockPath string
	dialect   *config.DialectConfig
	main      *config.MainConfig
	meta      report.Meta
	logger    Logger
}

// New creates a Runner for one export pair. Zero-valued meta fields fall
// back to the dialect's report defaults.
func New(salesPath, stockPath string, dialect *config.DialectConfig, main *config.MainConfig, meta report.Meta, logger Logger) *Runner {
	if meta.Title == "" {
		meta.Title = dialect.Report.Title
	}
	if meta.Branch == "" {
		meta.Branch = dialect.Report.Branch
	}
	if meta.Version == "" {
		meta.Version = dialect.Report.Version
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = nowIn(dialect.Report.Timezone)
	}
	if logger == nil {
		logger = NewLogger(false)
	}

	return &Runner{
		salesPath: salesPath,
		stockPath: stockPath,
		dialect:   dialect,
		main:      main,
		meta:      meta,
		logger:    logger,
	}
}

// Run executes the pipeline for the pair and writes the summary workbook.
func (r *Runner) Run() Result {
	result := Result{SalesFile: r.salesPath, StockFile: r.stockPath}

	r.logger.Debug("loading sales export %s", r.salesPath)
	sales, err := workbook.Load(r.salesPath)
	if err != nil {
		result.Error = fmt.Errorf("sales export: %w", err)
		return result
	}

	r.logger.Debug("loading stock export %s", r.stockPath)
	stockGrid, err := workbook.Load(r.stockPath)
	if err != nil {
		result.Error = fmt.Errorf("stock export: %w", err)
		return result
	}

	summary, err := Reconcile(sales, stockGrid, r.dialect)
	if err != nil {
		result.Error = err
		return result
	}
	result.Summary = summary

	r.logger.Info("%s: %d bills, %d barcodes (%d matched, %d not found, %d malformed)",
		filepath.Base(r.salesPath), summary.BillCount, len(summary.Summaries),
		summary.Stats.Matched, summary.Stats.NotFound, summary.Stats.Malformed)

	f, err := report.Build(toReportDocument(summary), r.meta)
	if err != nil {
		result.Error = fmt.Errorf("failed to build report: %w", err)
		return result
	}
	defer f.Close()

	name := utils.OutputFileName(r.main.OutputNameFormat, r.dialect.DialectCode, r.salesPath)
	outPath := filepath.Join(r.main.OutputDir, name)
	if err := f.SaveAs(outPath); err != nil {
		result.Error = fmt.Errorf("failed to save report: %w", err)
		return result
	}

	result.OutputFile = outPath
	result.Success = true
	return result
}

// toReportDocument converts a pipeline summary into the writer's input.
func toReportDocument(s *Summary) report.Document {
	return report.Document{
		BillRange: s.BillRange,
		BillCount: s.BillCount,
		Total:     s.Total,
		Lines:     s.Matches,
	}
}

// nowIn returns the current time in the named zone, falling back to local
// time when the zone is unknown.
func nowIn(zone string) time.Time {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Now()
	}
	return time.Now().In(loc)
}
