package report

import "github.com/integrations-dev/catalog/internal/catalog"

type ColumnSpec struct {
	Name        string
	Description string
}

var descriptions = map[string]string{
	"name":          "Integration directory name.",
	"has_dashboard": "Ships a dashboards asset directory or a legacy dashboard.",
	"has_logs":      "Configuration template documents a logs section.",
	"is_jmx":        "Provides a JMX metrics.yaml mapping.",
	"is_prometheus": "Check subclasses OpenMetricsBaseCheck.",
	"is_http":       "Check uses the shared HTTP client.",
	"has_e2e":       "Tests are marked for end-to-end runs.",
	"tile_only":     "No configuration template; metadata-only tile.",
}

func ColumnDescriptions() []ColumnSpec {
	cols := catalog.Columns()
	out := make([]ColumnSpec, 0, len(cols))
	for _, name := range cols {
		out = append(out, ColumnSpec{Name: name, Description: descriptions[name]})
	}
	return out
}
