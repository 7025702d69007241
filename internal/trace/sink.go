package trace

import (
	"strings"

	"github.com/natefinch/atomic"
)

// FileSink writes a run's trace to a single file via a rename-based atomic
// write, so a reader never observes a partially written trace.
type FileSink struct {
	Path string
}

// NewFileSink returns a FileSink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// WriteAll writes lines to the sink's path atomically, one newline-
// terminated line per event, with a trailing final newline.
func (f *FileSink) WriteAll(lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return atomic.WriteFile(f.Path, strings.NewReader(b.String()))
}

// MemorySink records a run's trace lines in memory, for oracle and test
// harnesses that want the trace without touching a filesystem.
type MemorySink struct {
	Written []string
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteAll records lines. It never fails.
func (m *MemorySink) WriteAll(lines []string) error {
	m.Written = append([]string(nil), lines...)
	return nil
}
