package mathsolve

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteMarkdown writes traces as a numbered Markdown list of processing
// steps.
func WriteMarkdown(w io.Writer, traces ...*SessionTrace) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "# Processing steps\n\n")
	n := 0
	for _, tr := range traces {
		for _, st := range tr.Stages {
			n++
			fmt.Fprintf(bw, "%d. %s\n", n, stepLine(tr, st))
		}
		if tr.Output != nil && tr.Output.Markup != "" {
			n++
			fmt.Fprintf(bw, "%d. result for `%s`: $%s$\n", n, tr.Input, tr.Output.Markup)
		}
	}
	return bw.Flush()
}

func stepLine(tr *SessionTrace, st Stage) string {
	in, out := st.Describe()
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", st.Name())
	if s, ok := st.(*SolveStage); ok && s.Category != "" {
		fmt.Fprintf(&b, " (%s)", s.Category)
	}
	switch {
	case out != "":
		fmt.Fprintf(&b, ": `%s` → `%s`", in, out)
	case in != "":
		fmt.Fprintf(&b, ": `%s`", in)
	default:
		fmt.Fprintf(&b, ": `%s`", tr.Input)
	}
	if !st.OK() {
		b.WriteString(" (failed: " + strings.Join(st.Diagnostics(), "; ") + ")")
	}
	return b.String()
}

// ExportMarkdown writes traces to the file at path.
func ExportMarkdown(path string, traces ...*SessionTrace) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return WriteMarkdown(f, traces...)
}
