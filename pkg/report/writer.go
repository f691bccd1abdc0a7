package report

import (
	"fmt"
	"io"

	"github.com/user/nvencprobe/pkg/ports"
)

// Writer writes formatted reports to an output stream.
type Writer struct {
	formatter Formatter
	out       io.Writer
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(formatter Formatter, out io.Writer) *Writer {
	return &Writer{
		formatter: formatter,
		out:       out,
	}
}

// Write formats the report and writes it out.
func (w *Writer) Write(report *Report) error {
	content, err := w.formatter.Format(report)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w.out, content); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Save formats the report and stores it at path.
func Save(fs ports.FileSystem, formatter Formatter, path string, report *Report) error {
	content, err := formatter.Format(report)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
