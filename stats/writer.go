package stats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Writer dumps groups to a stats file. Every Write replaces the previous
// content of the file, so the file always reflects the latest report.
type Writer struct {
	path    string
	reports int
}

// NewWriter prepares a writer for the given path. The parent directory is
// created if it does not exist.
func NewWriter(path string) (*Writer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("stats: creating %s: %w", dir, err)
	}

	return &Writer{path: path}, nil
}

// Path returns the file the writer writes to.
func (w *Writer) Path() string {
	return w.path
}

// NumReports returns how many reports have been written.
func (w *Writer) NumReports() int {
	return w.reports
}

// Write renders the groups into the stats file. Each line has the form
// `<group>.<stat> <value> # <description>`.
func (w *Writer) Write(groups ...*Group) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("stats: opening %s: %w", w.path, err)
	}

	bw := bufio.NewWriter(f)

	w.reports++
	fmt.Fprintf(bw, "# report %d\n", w.reports)

	for _, g := range groups {
		for _, e := range g.Flatten() {
			fmt.Fprintf(bw, "%s %s # %s\n", e.Name, e.Value, e.Desc)
		}
	}

	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("stats: writing %s: %w", w.path, err)
	}

	return f.Close()
}
