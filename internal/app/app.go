package app

import (
	"github.com/integrations-dev/catalog/internal/catalog"
	"github.com/integrations-dev/catalog/internal/repo"
	"github.com/integrations-dev/catalog/internal/report"
)

type CatalogOptions struct {
	Checks   []string
	Output   string
	Format   string
	Reporter Reporter
}

type ColumnsOptions struct {
	Reporter Reporter
}

// Catalog inspects the requested integrations under root and writes the
// report. Nothing is written unless every requested name is valid.
func Catalog(root string, opts CatalogOptions) error {
	reporter := ensureReporter(opts.Reporter)
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	builder := catalog.Builder{Layout: repo.New(root)}
	names, err := builder.Resolve(opts.Checks)
	if err != nil {
		return err
	}

	progress := reporter.Progress("Inspecting", len(names))
	builder.OnInspect = progress.Increment
	entries, err := builder.Build(names)
	progress.Done()
	if err != nil {
		return err
	}

	return report.Write(report.ParseDestination(opts.Output), format, entries, reporter)
}

func Columns(opts ColumnsOptions) error {
	reporter := ensureReporter(opts.Reporter)
	for _, spec := range report.ColumnDescriptions() {
		reporter.Column(spec.Name, spec.Description)
	}
	return nil
}
