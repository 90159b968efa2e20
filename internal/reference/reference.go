// Package reference holds the canonical Latin species list used as a soft
// validation oracle during species segmentation. The list is advisory:
// loading failures degrade to an empty list and membership never blocks a
// split.
package reference

import (
	"strings"

	"go.uber.org/zap"

	"seedsplit/internal/dataset"
)

// List is a read-only set of canonical Latin binomials.
type List struct {
	names []string
	index map[string]struct{}
}

// NewList builds a list from raw names, trimming and dropping blanks.
func NewList(names []string) *List {
	l := &List{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := l.index[n]; dup {
			continue
		}
		l.names = append(l.names, n)
		l.index[n] = struct{}{}
	}
	return l
}

// Load reads the reference dataset at path and extracts the named column.
// Load never fails: any error is logged as a warning and an empty list is
// returned so the run can continue without a reference.
func Load(path, column string, log *zap.Logger) *List {
	if path == "" {
		return NewList(nil)
	}

	table, err := dataset.Read(path)
	if err != nil {
		log.Warn("species reference unavailable, continuing without it",
			zap.String("path", path), zap.Error(err))
		return NewList(nil)
	}

	col := table.ColumnIndex(column)
	if col < 0 {
		log.Warn("species reference column missing, continuing without it",
			zap.String("path", path), zap.String("column", column))
		return NewList(nil)
	}

	names := make([]string, 0, len(table.Rows))
	for i := range table.Rows {
		names = append(names, table.Cell(i, col))
	}

	list := NewList(names)
	log.Info("species reference loaded",
		zap.String("path", path), zap.Int("names", list.Len()))
	return list
}

// Contains reports whether name is in the canonical list.
func (l *List) Contains(name string) bool {
	_, ok := l.index[strings.TrimSpace(name)]
	return ok
}

// Sample returns up to n names for prompt grounding.
func (l *List) Sample(n int) []string {
	if n <= 0 || l.Len() == 0 {
		return nil
	}
	if n > len(l.names) {
		n = len(l.names)
	}
	out := make([]string, n)
	copy(out, l.names[:n])
	return out
}

// Len returns the number of canonical names.
func (l *List) Len() int {
	return len(l.names)
}
