// Package resolve turns one cell's text into an ordered list of name
// fragments. The probabilistic LLM resolver is tried first when configured;
// the deterministic segmenter is the safety net, so resolution always
// produces a non-empty result and never fails.
package resolve

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"seedsplit/internal/llm"
	"seedsplit/internal/reference"
)

// Field selects the segmentation domain for a cell.
type Field string

const (
	FieldVariety Field = "variety"
	FieldSpecies Field = "species"
)

// Resolver is the probabilistic segmentation capability. Implementations
// return the ordered fragments extracted from text, or an error when the
// result is unusable; callers treat any error as "fall back to the
// deterministic rules".
type Resolver interface {
	Resolve(ctx context.Context, text string, field Field) ([]string, error)
}

// LLMResolver resolves cells through a chat-completion client.
type LLMResolver struct {
	client llm.Client
	ref    *reference.List
	sample int
	log    *zap.Logger
}

// NewLLMResolver builds a resolver over client. ref may be nil; sample is
// the number of reference names included in species prompts.
func NewLLMResolver(client llm.Client, ref *reference.List, sample int, log *zap.Logger) *LLMResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMResolver{client: client, ref: ref, sample: sample, log: log}
}

// Resolve sends the cell text to the LLM and parses the reply as a JSON
// array of name fragments.
func (r *LLMResolver) Resolve(ctx context.Context, text string, field Field) ([]string, error) {
	var system, user string
	switch field {
	case FieldVariety:
		system = varietySystemPrompt
		user = varietyPrompt(text)
	case FieldSpecies:
		system = speciesSystemPrompt
		var sample []string
		if r.ref != nil {
			sample = r.ref.Sample(r.sample)
		}
		user = speciesPrompt(text, sample)
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}

	reply, err := r.client.CompleteWithSystem(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	frags, err := parseFragments(reply)
	if err != nil {
		r.log.Debug("unusable resolver reply",
			zap.String("field", string(field)), zap.String("reply", reply), zap.Error(err))
		return nil, err
	}
	return frags, nil
}
