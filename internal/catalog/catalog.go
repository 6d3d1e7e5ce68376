package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Wildcard requests every valid integration.
const Wildcard = "all"

const (
	logsMarker       = "# logs:"
	prometheusMarker = "(OpenMetricsBaseCheck):"
	httpMarker       = "self.http."
)

var columns = []string{"name", "has_dashboard", "has_logs", "is_jmx", "is_prometheus", "is_http", "has_e2e", "tile_only"}

// Dashboards that live outside the integration assets.
var legacyDashboards = map[string]bool{
	"vsphere":   true,
	"sqlserver": true,
	"tomcat":    true,
	"pusher":    true,
	"sigsci":    true,
	"marathon":  true,
	"ibm_was":   true,
	"nginx":     true,
	"immunio":   true,
}

var ErrNoIntegrations = errors.New("no integrations requested")

type InvalidIntegrationError struct {
	Name string
}

func (e *InvalidIntegrationError) Error() string {
	return fmt.Sprintf("Check `%s` is not an Agent-based Integration", e.Name)
}

type Entry struct {
	Name         string `yaml:"name"`
	HasDashboard bool   `yaml:"has_dashboard"`
	HasLogs      bool   `yaml:"has_logs"`
	IsJMX        bool   `yaml:"is_jmx"`
	IsPrometheus bool   `yaml:"is_prometheus"`
	IsHTTP       bool   `yaml:"is_http"`
	HasE2E       bool   `yaml:"has_e2e"`
	TileOnly     bool   `yaml:"tile_only"`
}

// Values returns the entry's traits in column order.
func (e Entry) Values() []any {
	return []any{e.Name, e.HasDashboard, e.HasLogs, e.IsJMX, e.IsPrometheus, e.IsHTTP, e.HasE2E, e.TileOnly}
}

// Layout resolves where an integration keeps its files.
type Layout interface {
	ConfigFile(name string) string
	CheckFile(name string) string
	AssetsDir(name string) string
	DataDir(name string) string
	ValidIntegrations() ([]string, error)
	HasE2E(name string) (bool, error)
}

type Builder struct {
	Layout Layout
	// OnInspect, when set, is called with each name before it is inspected.
	OnInspect func(name string)
}

// Columns returns the report column names in order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

func IsLegacyDashboard(name string) bool {
	return legacyDashboards[name]
}

// Resolve expands the wildcard and rejects names outside the valid set.
func (b Builder) Resolve(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrNoIntegrations
	}
	if b.Layout == nil {
		return nil, errors.New("catalog layout is required")
	}
	valid, err := b.Layout.ValidIntegrations()
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	for _, name := range names {
		if name == Wildcard {
			return valid, nil
		}
	}

	known := make(map[string]bool, len(valid))
	for _, name := range valid {
		known[name] = true
	}
	for _, name := range names {
		if !known[name] {
			return nil, &InvalidIntegrationError{Name: name}
		}
	}
	return names, nil
}

func (b Builder) Build(names []string) ([]Entry, error) {
	resolved, err := b.Resolve(names)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(resolved))
	for _, name := range resolved {
		if b.OnInspect != nil {
			b.OnInspect(name)
		}
		entry, err := b.Inspect(name)
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Inspect derives the traits of a single integration. It does not check
// membership in the valid set.
func (b Builder) Inspect(name string) (Entry, error) {
	entry := Entry{Name: name}

	config, found, err := readOptional(b.Layout.ConfigFile(name))
	if err != nil {
		return Entry{}, err
	}
	if !found {
		entry.TileOnly = true
	} else {
		entry.HasLogs = strings.Contains(config, logsMarker)
	}

	source, found, err := readOptional(b.Layout.CheckFile(name))
	if err != nil {
		return Entry{}, err
	}
	if found {
		entry.IsPrometheus = strings.Contains(source, prometheusMarker)
		entry.IsHTTP = strings.Contains(source, httpMarker)
	}

	entry.HasDashboard = IsLegacyDashboard(name)
	if !entry.HasDashboard {
		entry.HasDashboard, err = exists(filepath.Join(b.Layout.AssetsDir(name), "dashboards"))
		if err != nil {
			return Entry{}, err
		}
	}

	entry.IsJMX, err = exists(filepath.Join(b.Layout.DataDir(name), "metrics.yaml"))
	if err != nil {
		return Entry{}, err
	}

	entry.HasE2E, err = b.Layout.HasE2E(name)
	if err != nil {
		return Entry{}, fmt.Errorf("e2e support: %w", err)
	}
	return entry, nil
}

func readOptional(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
