package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	sdkerr "github.com/vechain/vechain-sdk-go/pkg/errors"
)

// ErrorOutput is the structured form of a failed command.
type ErrorOutput struct {
	Error ErrorDetail `json:"error" yaml:"error"`
}

// ErrorDetail mirrors the fields of an SDK error.
type ErrorDetail struct {
	Code       string            `json:"code" yaml:"code"`
	Message    string            `json:"message" yaml:"message"`
	Details    map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty" yaml:"cause,omitempty"`
	ExitCode   int               `json:"exit_code" yaml:"exit_code"`
}

// DetailOf converts err to its structured form. Errors outside the SDK
// taxonomy are reported as GENERAL_ERROR.
func DetailOf(err error) ErrorDetail {
	var se *sdkerr.SDKError
	if !errors.As(err, &se) {
		return ErrorDetail{
			Code:     sdkerr.ErrGeneral.Code,
			Message:  err.Error(),
			ExitCode: sdkerr.ExitGeneral,
		}
	}

	d := ErrorDetail{
		Code:       se.Code,
		Message:    se.Message,
		Details:    se.Details,
		Suggestion: se.Suggestion,
		ExitCode:   se.ExitCode,
	}
	if se.Cause != nil {
		d.Cause = se.Cause.Error()
	}
	return d
}

// FormatError writes err to w in format.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	d := DetailOf(err)
	switch format {
	case FormatJSON:
		return writeJSON(w, ErrorOutput{Error: d})
	case FormatYAML:
		return writeYAML(w, ErrorOutput{Error: d})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Error [%s]: %s\n", d.Code, d.Message)
	if d.Cause != "" {
		fmt.Fprintf(&sb, "Cause: %s\n", d.Cause)
	}
	if len(d.Details) > 0 {
		keys := make([]string, 0, len(d.Details))
		for k := range d.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %s\n", k, d.Details[k])
		}
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&sb, "\nSuggestion: %s\n", d.Suggestion)
	}

	_, writeErr := io.WriteString(w, sb.String())
	return writeErr
}
