package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/integrations-dev/catalog/internal/catalog"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown catalog format %q", value)
	}
}

func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".csv"
}

type Logger interface {
	Info(message string)
}

// Write emits entries to the console when dest is empty, otherwise to the
// destination file, which is closed before Write returns.
func Write(dest Destination, format Format, entries []catalog.Entry, log Logger) (err error) {
	if dest.IsConsole() {
		for _, line := range ConsoleLines(entries) {
			log.Info(line)
		}
		return nil
	}

	sink, err := Open(dest, format)
	if err != nil {
		return err
	}
	log.Info(sink.Message)
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", sink.Path, closeErr)
		}
	}()

	switch format {
	case FormatYAML:
		err = WriteYAML(sink, entries)
	default:
		err = WriteCSV(sink, entries)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", sink.Path, err)
	}
	return nil
}

func WriteCSV(w io.Writer, entries []catalog.Entry) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(catalog.Columns()); err != nil {
		return err
	}
	for _, entry := range entries {
		values := entry.Values()
		row := make([]string, len(values))
		for i, value := range values {
			row[i] = formatValue(value)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteYAML(w io.Writer, entries []catalog.Entry) error {
	if entries == nil {
		entries = []catalog.Entry{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}

// ConsoleLines renders one key=value line per entry in column order.
func ConsoleLines(entries []catalog.Entry) []string {
	cols := catalog.Columns()
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		var b strings.Builder
		for i, value := range entry.Values() {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cols[i])
			b.WriteByte('=')
			b.WriteString(formatValue(value))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func formatValue(value any) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
