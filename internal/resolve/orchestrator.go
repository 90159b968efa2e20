package resolve

import (
	"context"

	"go.uber.org/zap"

	"seedsplit/internal/reference"
	"seedsplit/internal/segment"
)

// Orchestrator resolves one cell at a time: probabilistic resolver first
// when configured, deterministic segmentation as the fallback.
type Orchestrator struct {
	resolver Resolver // nil means deterministic-only
	ref      *reference.List
	log      *zap.Logger
}

// NewOrchestrator builds an orchestrator. resolver may be nil for
// deterministic-only operation; ref may be nil when no species reference
// list is available.
func NewOrchestrator(resolver Resolver, ref *reference.List, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{resolver: resolver, ref: ref, log: log}
}

// Fragments resolves a raw cell value into an ordered, non-empty fragment
// list. Missing/blank cells pass through as a singleton without touching
// the resolver or segmenter. Fragments never returns an empty slice and
// never fails.
func (o *Orchestrator) Fragments(ctx context.Context, raw string, field Field) []string {
	text, ok := segment.Normalize(raw)
	if !ok {
		return []string{raw}
	}

	if o.resolver != nil {
		frags, err := o.resolver.Resolve(ctx, text, field)
		switch {
		case err != nil:
			o.log.Debug("resolver failed, using deterministic rules",
				zap.String("field", string(field)), zap.Error(err))
		case len(frags) == 1 && frags[0] == text:
			// Verbatim echo of the input: the resolver did nothing
			// useful, let the deterministic rules decide.
		case len(frags) > 0:
			return frags
		}
	}

	switch field {
	case FieldSpecies:
		var checker segment.ReferenceChecker
		if o.ref != nil {
			checker = o.ref
		}
		return segment.Species(text, checker)
	default:
		return segment.Varieties(text)
	}
}
