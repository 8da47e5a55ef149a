package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/threemf/internal/ctxlog"
)

// Run loads the model, checks every resource, and writes the report.
func (a *App) Run(ctx context.Context) (*Report, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.", "model_path", a.config.ModelPath)

	doc, diags := a.loader.LoadPaths(ctx, a.config.ModelPath)
	if diags.HasErrors() {
		wr := hcl.NewDiagnosticTextWriter(a.logW, a.loader.Files(), 100, false)
		if err := wr.WriteDiagnostics(diags); err != nil {
			logger.Error("Failed to write diagnostics.", "error", err)
		}
		return nil, fmt.Errorf("%w: %d error(s) in %s", ErrLoadFailed, len(diags.Errs()), a.config.ModelPath)
	}

	report := Check(ctx, doc, a.config.FailFast)
	if err := report.Write(a.outW, a.config.ReportFormat); err != nil {
		return report, fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Model checked.", "resources", len(report.Resources), "invalid", report.InvalidCount())
	if !report.Valid {
		return report, ErrInvalidModel
	}
	logger.Debug("App.Run method finished.")
	return report, nil
}
