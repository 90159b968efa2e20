// Package expand turns one source row into the set of output rows implied
// by its resolved name fragments: one row per name, cross-producted when
// both the species and variety columns split.
package expand

import (
	"context"

	"seedsplit/internal/resolve"
)

// FragmentSource resolves one cell into an ordered, non-empty fragment
// list. Satisfied by *resolve.Orchestrator.
type FragmentSource interface {
	Fragments(ctx context.Context, raw string, field resolve.Field) []string
}

// Engine expands rows positionally. Column indexes are -1 when the dataset
// does not carry that column.
type Engine struct {
	source     FragmentSource
	varietyCol int
	speciesCol int
}

// NewEngine builds an expansion engine over the given fragment source.
func NewEngine(source FragmentSource, varietyCol, speciesCol int) *Engine {
	return &Engine{source: source, varietyCol: varietyCol, speciesCol: speciesCol}
}

// ExpandRow returns the output rows for one source row, in stable order:
// species fragments outermost, variety fragments innermost. When a column
// resolves to a single fragment the original cell value is kept untouched;
// only a true multi-way split overwrites the cell.
func (e *Engine) ExpandRow(ctx context.Context, row []string) [][]string {
	if e.speciesCol < 0 && e.varietyCol < 0 {
		return [][]string{cloneRow(row)}
	}

	if e.speciesCol < 0 {
		return e.expandSingle(ctx, row, e.varietyCol, resolve.FieldVariety)
	}
	if e.varietyCol < 0 {
		return e.expandSingle(ctx, row, e.speciesCol, resolve.FieldSpecies)
	}

	speciesFrags := e.source.Fragments(ctx, cell(row, e.speciesCol), resolve.FieldSpecies)

	var out [][]string
	for _, sp := range speciesFrags {
		// The variety text is re-resolved from the original row for
		// every species fragment; it does not vary per species.
		varietyFrags := e.source.Fragments(ctx, cell(row, e.varietyCol), resolve.FieldVariety)
		for _, v := range varietyFrags {
			emitted := cloneRow(row)
			if len(speciesFrags) > 1 {
				emitted[e.speciesCol] = sp
			}
			if len(varietyFrags) > 1 {
				emitted[e.varietyCol] = v
			}
			out = append(out, emitted)
		}
	}
	return out
}

// expandSingle handles the one-splittable-column case: 1xN expansion.
func (e *Engine) expandSingle(ctx context.Context, row []string, col int, field resolve.Field) [][]string {
	frags := e.source.Fragments(ctx, cell(row, col), field)

	out := make([][]string, 0, len(frags))
	for _, f := range frags {
		emitted := cloneRow(row)
		if len(frags) > 1 {
			emitted[col] = f
		}
		out = append(out, emitted)
	}
	return out
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
