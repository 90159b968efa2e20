// Package pipeline runs one end-to-end expansion: read the tabular input,
// resolve and expand every row in order, write the tabular output.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seedsplit/internal/config"
	"seedsplit/internal/dataset"
	"seedsplit/internal/expand"
	"seedsplit/internal/llm"
	"seedsplit/internal/reference"
	"seedsplit/internal/resolve"
)

// Stats summarizes one pipeline run.
type Stats struct {
	InputRows  int
	OutputRows int
}

// Pipeline expands accession datasets. The LLM client is an explicit
// constructor argument: nil means deterministic-only operation, there is no
// ambient environment probing at run time.
type Pipeline struct {
	cfg    *config.Config
	client llm.Client
	log    *zap.Logger
}

// New builds a pipeline. client may be nil.
func New(cfg *config.Config, client llm.Client, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, client: client, log: log}
}

// Run processes inputPath into outputPath. Input errors and write errors
// are fatal; per-cell resolver failures degrade silently to deterministic
// segmentation inside the orchestrator.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*Stats, error) {
	log := p.log.With(zap.String("run_id", uuid.NewString()))

	table, err := dataset.Read(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input dataset: %w", err)
	}

	varietyCol := table.ColumnIndex(p.cfg.Columns.Variety)
	speciesCol := table.ColumnIndex(p.cfg.Columns.Species)
	if varietyCol < 0 && speciesCol < 0 {
		return nil, fmt.Errorf("no recognized column in %s: want %q or %q, have [%s]",
			inputPath, p.cfg.Columns.Variety, p.cfg.Columns.Species,
			strings.Join(table.Header, ", "))
	}

	var ref *reference.List
	if speciesCol >= 0 {
		ref = reference.Load(p.cfg.Reference.Path, p.cfg.Reference.Column, log)
	}

	var resolver resolve.Resolver
	if p.client != nil {
		resolver = resolve.NewLLMResolver(p.client, ref, p.cfg.Reference.PromptSample, log)
		log.Info("probabilistic resolver enabled", zap.String("provider", p.cfg.LLM.Provider))
	} else {
		log.Info("no LLM client configured, using deterministic segmentation only")
	}

	orch := resolve.NewOrchestrator(resolver, ref, log)
	engine := expand.NewEngine(orch, varietyCol, speciesCol)

	total := len(table.Rows)
	log.Info("processing dataset",
		zap.String("input", inputPath),
		zap.Int("rows", total),
		zap.Bool("variety_column", varietyCol >= 0),
		zap.Bool("species_column", speciesCol >= 0))

	out := &dataset.Table{Header: table.Header}
	for i, row := range table.Rows {
		if (i+1)%10 == 0 || i+1 == total {
			log.Info("progress", zap.Int("row", i+1), zap.Int("total", total))
		}
		out.Rows = append(out.Rows, engine.ExpandRow(ctx, row)...)
	}

	if err := dataset.Write(outputPath, out); err != nil {
		return nil, fmt.Errorf("failed to write output dataset: %w", err)
	}

	stats := &Stats{InputRows: total, OutputRows: len(out.Rows)}
	log.Info("dataset expanded",
		zap.String("output", outputPath),
		zap.Int("input_rows", stats.InputRows),
		zap.Int("output_rows", stats.OutputRows))
	return stats, nil
}
