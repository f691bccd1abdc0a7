package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for formatting a Report.
type Formatter interface {
	// Format converts a Report to its textual form.
	Format(report *Report) (string, error)
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(report *Report) (string, error)

// Format implements the Formatter interface.
func (f FormatFunc) Format(report *Report) (string, error) {
	return f(report)
}

// Output format names.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ForFormat returns the formatter registered under name.
func ForFormat(name string) (Formatter, error) {
	switch name {
	case FormatText, "":
		return FormatFunc(formatText), nil
	case FormatYAML:
		return FormatFunc(formatYAML), nil
	case FormatJSON:
		return FormatFunc(formatJSON), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", name)
	}
}

// formatText renders one block per device: the header line, one line per
// codec and a blank line.
func formatText(r *Report) (string, error) {
	var sb strings.Builder
	for _, d := range r.Devices {
		fmt.Fprintf(&sb, "Device %d: %s\n", d.Index, d.Name)
		for _, c := range d.Codecs {
			sb.WriteString(string(c))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func formatYAML(r *Report) (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	return string(data), nil
}

func formatJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(data) + "\n", nil
}
