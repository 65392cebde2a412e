// Package output renders command results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatAuto Format = "auto"
)

// Formatter writes results to one writer in one format.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a formatter writing format to w.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, writer: w}
}

// Format returns the output format.
func (f *Formatter) Format() Format {
	return f.format
}

// Writer returns the output writer.
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// IsText reports whether results are rendered for humans.
func (f *Formatter) IsText() bool {
	return f.format == FormatText
}

//nolint:gochecknoglobals // read-only encoder table
var encoders = map[Format]func(io.Writer, any) error{
	FormatJSON: writeJSON,
	FormatYAML: writeYAML,
}

// Print writes v in the formatter's format. Text output uses v's String
// method when it has one.
func (f *Formatter) Print(v any) error {
	if enc, ok := encoders[f.format]; ok {
		return enc(f.writer, v)
	}
	if s, ok := v.(fmt.Stringer); ok {
		v = s.String()
	}
	_, err := fmt.Fprintln(f.writer, v)
	return err
}

// Printf writes formatted text regardless of format.
func (f *Formatter) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(f.writer, format, args...)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: Fd() fits an int on supported platforms
}

// DetectFormat resolves FormatAuto to text on a terminal and JSON
// otherwise; explicit formats pass through.
func DetectFormat(w io.Writer, explicit Format) Format {
	if explicit != FormatAuto {
		return explicit
	}
	if IsTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

// ParseFormat parses a format name; unknown names mean auto.
func ParseFormat(s string) Format {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText, FormatYAML:
		return f
	case "yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}
