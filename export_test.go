package mathsolve_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve"
)

func TestWriteMarkdown(t *testing.T) {
	p := newProcessor()
	ok := p.Process(context.Background(), "2*x + 3 = 7")
	bad := p.Process(context.Background(), "(x + 1")

	var buf bytes.Buffer
	require.NoError(t, mathsolve.WriteMarkdown(&buf, ok, bad))
	out := buf.String()

	assert.Contains(t, out, "# Processing steps\n\n")
	assert.Contains(t, out, "1. **parse**: `2*x + 3 = 7` → `2*x + 3 = 7`")
	assert.Contains(t, out, "3. **solve** (equation): ")
	assert.Contains(t, out, "→ `[2]`")
	assert.Contains(t, out, "5. result for `2*x + 3 = 7`: $2$")
	assert.Contains(t, out, "6. **parse**: `(x + 1` (failed: ")
}

func TestExportMarkdown(t *testing.T) {
	tr := newProcessor().Process(context.Background(), "sqrt(16)")
	path := filepath.Join(t.TempDir(), "steps.md")
	require.NoError(t, mathsolve.ExportMarkdown(path, tr))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "**format**: `numerical_evaluation` → `4`")

	err = mathsolve.ExportMarkdown(filepath.Join(t.TempDir(), "missing", "steps.md"), tr)
	assert.ErrorContains(t, err, "export ")
}
