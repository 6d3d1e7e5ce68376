package report

import (
	"fmt"
	"io"
	"os"
)

// TempSentinel selects a fresh temporary file as the destination.
const TempSentinel = "tmp"

type DestinationKind int

const (
	DestinationNone DestinationKind = iota
	DestinationTemp
	DestinationPath
)

type Destination struct {
	Kind DestinationKind
	Path string
}

// ParseDestination maps a --file value to a destination. The value is used
// verbatim: only "" means console and only "tmp" means a temporary file.
func ParseDestination(value string) Destination {
	switch value {
	case "":
		return Destination{Kind: DestinationNone}
	case TempSentinel:
		return Destination{Kind: DestinationTemp}
	default:
		return Destination{Kind: DestinationPath, Path: value}
	}
}

func (d Destination) IsConsole() bool {
	return d.Kind == DestinationNone
}

// Sink is an open report destination. Message tells the user where the
// report is going.
type Sink struct {
	io.WriteCloser
	Path    string
	Message string
}

func Open(dest Destination, format Format) (*Sink, error) {
	var (
		file *os.File
		err  error
	)
	switch dest.Kind {
	case DestinationTemp:
		file, err = os.CreateTemp("", "integration_catalog*"+format.Ext())
		if err != nil {
			return nil, fmt.Errorf("create temporary catalog: %w", err)
		}
	case DestinationPath:
		file, err = os.OpenFile(dest.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", dest.Path, err)
		}
	default:
		return nil, fmt.Errorf("destination kind %d has no file", dest.Kind)
	}
	return &Sink{
		WriteCloser: file,
		Path:        file.Name(),
		Message:     fmt.Sprintf("Catalog is being saved to `%s`", file.Name()),
	}, nil
}
