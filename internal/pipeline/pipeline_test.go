package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedsplit/internal/config"
	"seedsplit/internal/dataset"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_DeterministicExpansion(t *testing.T) {
	in := writeCSV(t, "in.csv",
		"Accession Number,Variety Name species,Latin Name species,Origin\n"+
			"GBK-001,wheat(T.A) : 1. SANEEN. 2. WQ 110,\"Hordeum vulgare, Rhanterium epapposum\",Kenya\n"+
			"GBK-002,3. JIW.1,Pisum sativum,Sudan\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	p := New(config.DefaultConfig(), nil, nil)
	stats, err := p.Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.InputRows)
	assert.Equal(t, 5, stats.OutputRows) // 2x2 + 1x1

	got, err := dataset.Read(out)
	require.NoError(t, err)

	want := [][]string{
		{"GBK-001", "1. SANEEN", "Hordeum vulgare", "Kenya"},
		{"GBK-001", "2. WQ 110", "Hordeum vulgare", "Kenya"},
		{"GBK-001", "1. SANEEN", "Rhanterium epapposum", "Kenya"},
		{"GBK-001", "2. WQ 110", "Rhanterium epapposum", "Kenya"},
		{"GBK-002", "3. JIW.1", "Pisum sativum", "Sudan"},
	}
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Errorf("expanded rows mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RowCountIdentity(t *testing.T) {
	// Output row count equals the sum over input rows of
	// (variety fragments x species fragments).
	in := writeCSV(t, "in.csv",
		"Variety Name species,Latin Name species\n"+
			"1. A 2. B 3. C,\"s a, s b\"\n"+ // 3x2
			",\n"+ // 1x1 blank
			"plain,Pisum sativum\n") // 1x1
	out := filepath.Join(t.TempDir(), "out.csv")

	stats, err := New(config.DefaultConfig(), nil, nil).Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.InputRows)
	assert.Equal(t, 8, stats.OutputRows)
	assert.GreaterOrEqual(t, stats.OutputRows, stats.InputRows)
}

func TestRun_VarietyColumnOnly(t *testing.T) {
	in := writeCSV(t, "in.csv",
		"Accession Number,Variety Name species\n"+
			"GBK-003,1. Alpha 2. Beta\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	stats, err := New(config.DefaultConfig(), nil, nil).Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OutputRows)
}

func TestRun_MissingRecognizedColumns(t *testing.T) {
	in := writeCSV(t, "in.csv", "Foo,Bar\nx,y\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	_, err := New(config.DefaultConfig(), nil, nil).Run(context.Background(), in, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recognized column")
	assert.Contains(t, err.Error(), "Foo, Bar")
	assert.NoFileExists(t, out)
}

func TestRun_MissingInputFile(t *testing.T) {
	_, err := New(config.DefaultConfig(), nil, nil).
		Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "out.csv")
	assert.ErrorContains(t, err, "failed to read input dataset")
}

func TestRun_ReferenceLoadFailureIsNonFatal(t *testing.T) {
	in := writeCSV(t, "in.csv",
		"Latin Name species\n"+
			"Pisum sativum Phaseolus vulgaris\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	cfg := config.DefaultConfig()
	cfg.Reference.Path = filepath.Join(t.TempDir(), "missing-species.xlsx")

	stats, err := New(cfg, nil, nil).Run(context.Background(), in, out)
	require.NoError(t, err)
	// Binomial matches absent from the (empty) reference still split.
	assert.Equal(t, 2, stats.OutputRows)
}

func TestRun_PassThroughRowsUnchanged(t *testing.T) {
	in := writeCSV(t, "in.csv",
		"Accession Number,Variety Name species\n"+
			"GBK-004,\n"+
			"GBK-005,   \n")
	out := filepath.Join(t.TempDir(), "out.csv")

	stats, err := New(config.DefaultConfig(), nil, nil).Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OutputRows)

	got, err := dataset.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "GBK-004", got.Rows[0][0])
	assert.Equal(t, "   ", got.Rows[1][1])
}
