package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/integrations-dev/catalog/internal/catalog"
)

type captureLog struct {
	lines []string
}

func (c *captureLog) Info(message string) {
	c.lines = append(c.lines, message)
}

func sampleEntries() []catalog.Entry {
	return []catalog.Entry{
		{Name: "nginx", HasDashboard: true, IsJMX: true},
		{Name: "pagerduty", TileOnly: true},
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleEntries()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !reflect.DeepEqual(records[0], catalog.Columns()) {
		t.Fatalf("expected header %v, got %v", catalog.Columns(), records[0])
	}
	if len(records)-1 != len(sampleEntries()) {
		t.Fatalf("expected %d rows, got %d", len(sampleEntries()), len(records)-1)
	}
	want := []string{"nginx", "True", "False", "True", "False", "False", "False", "False"}
	if !reflect.DeepEqual(records[1], want) {
		t.Fatalf("expected row %v, got %v", want, records[1])
	}
}

func TestWriteCSVUsesCRLF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []catalog.Entry{{Name: "nginx"}}); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	want := "name,has_dashboard,has_logs,is_jmx,is_prometheus,is_http,has_e2e,tile_only\r\n" +
		"nginx,False,False,False,False,False,False,False\r\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteCSVQuotesNames(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []catalog.Entry{{Name: "odd,name"}}); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if !strings.Contains(buf.String(), `"odd,name"`) {
		t.Fatalf("expected quoted name, got %q", buf.String())
	}
}

func TestWriteYAMLKeepsColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, sampleEntries()); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	seq := doc.Content[0]
	if len(seq.Content) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(seq.Content))
	}
	var keys []string
	for i := 0; i < len(seq.Content[0].Content); i += 2 {
		keys = append(keys, seq.Content[0].Content[i].Value)
	}
	if !reflect.DeepEqual(keys, catalog.Columns()) {
		t.Fatalf("expected keys %v, got %v", catalog.Columns(), keys)
	}
}

func TestConsoleLines(t *testing.T) {
	lines := ConsoleLines(sampleEntries())
	want := "name=pagerduty has_dashboard=False has_logs=False is_jmx=False is_prometheus=False is_http=False has_e2e=False tile_only=True"
	if len(lines) != 2 || lines[1] != want {
		t.Fatalf("unexpected console lines: %#v", lines)
	}
}

func TestParseDestination(t *testing.T) {
	if got := ParseDestination(""); got.Kind != DestinationNone {
		t.Fatalf("expected console destination, got %+v", got)
	}
	if got := ParseDestination("tmp"); got.Kind != DestinationTemp {
		t.Fatalf("expected temp destination, got %+v", got)
	}
	if got := ParseDestination("out/catalog.csv"); got.Kind != DestinationPath || got.Path != "out/catalog.csv" {
		t.Fatalf("expected path destination, got %+v", got)
	}
	for _, value := range []string{" tmp", "  "} {
		if got := ParseDestination(value); got.Kind != DestinationPath || got.Path != value {
			t.Fatalf("expected %q to be a literal path, got %+v", value, got)
		}
	}
}

func TestWriteConsoleSendsLinesToLog(t *testing.T) {
	log := &captureLog{}
	if err := Write(ParseDestination(""), FormatCSV, sampleEntries(), log); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(log.lines) != 2 || !strings.HasPrefix(log.lines[0], "name=nginx ") {
		t.Fatalf("unexpected console output: %#v", log.lines)
	}
}

func TestWriteOverwritesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(strings.Repeat("stale content\n", 50)), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	log := &captureLog{}
	if err := Write(ParseDestination(path), FormatCSV, sampleEntries(), log); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Fatalf("expected existing content to be truncated")
	}
	if len(log.lines) != 1 || !strings.Contains(log.lines[0], path) {
		t.Fatalf("expected confirmation naming %s, got %#v", path, log.lines)
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	log := &captureLog{}
	if err := Write(ParseDestination(TempSentinel), FormatCSV, sampleEntries(), log); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(log.lines) != 1 {
		t.Fatalf("expected one confirmation line, got %#v", log.lines)
	}
	start := strings.Index(log.lines[0], "`")
	end := strings.LastIndex(log.lines[0], "`")
	path := log.lines[0][start+1 : end]
	if !strings.HasPrefix(filepath.Base(path), "integration_catalog") || filepath.Ext(path) != ".csv" {
		t.Fatalf("unexpected temp file name %q", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open temp file: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read temp file: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatCSV {
		t.Fatalf("expected csv default, got %q %v", f, err)
	}
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Fatalf("expected yaml, got %q %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestColumnDescriptionsCoverColumns(t *testing.T) {
	for _, spec := range ColumnDescriptions() {
		if spec.Description == "" {
			t.Fatalf("missing description for %s", spec.Name)
		}
	}
}
