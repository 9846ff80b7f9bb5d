package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/assistant"
)

// ui prints traces and assistant replies.
type ui struct {
	out io.Writer

	title  lipgloss.Style
	stage  lipgloss.Style
	label  lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
	result lipgloss.Style
	muted  lipgloss.Style
	ai     lipgloss.Style

	md *glamour.TermRenderer
}

func newUI(out io.Writer, color bool) *ui {
	u := &ui{out: out}
	plain := lipgloss.NewStyle()
	u.title, u.stage, u.label, u.ok, u.fail, u.result, u.muted, u.ai = plain, plain, plain, plain, plain, plain, plain, plain
	style := "notty"
	if color {
		u.title = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
		u.stage = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
		u.label = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		u.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		u.fail = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		u.result = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		u.muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
		u.ai = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
		style = "auto"
	}
	var err error
	if style == "auto" {
		u.md, err = glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	} else {
		u.md, err = glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(80))
	}
	if err != nil {
		u.md = nil
	}
	return u
}

func (u *ui) printf(format string, args ...interface{}) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *ui) rule() {
	u.printf("%s\n", u.title.Render(strings.Repeat("=", 60)))
}

func (u *ui) field(name, value string) {
	u.printf("  %s %s\n", u.label.Render(name+":"), value)
}

// markdown renders an assistant reply, falling back to plain text.
func (u *ui) markdown(text string) string {
	if u.md == nil {
		return text
	}
	out, err := u.md.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (u *ui) reply(text string) {
	u.printf("%s\n%s\n", u.ai.Render("assistant:"), u.markdown(text))
}

// trace prints tr. With steps every stage is shown; otherwise only
// the outcome.
func (u *ui) trace(tr *mathsolve.SessionTrace, steps bool) {
	if steps {
		u.rule()
		u.printf("%s %s\n", u.title.Render("Input:"), u.result.Render(tr.Input))
		for _, st := range tr.Stages {
			u.stageBlock(st)
			for _, ex := range tr.Explanations {
				if ex.Stage == st.Name() && ex.Text != assistant.ReplyModelUnavailable {
					u.reply(ex.Text)
				}
			}
		}
	}

	switch {
	case tr.Success:
		u.printf("%s %s\n", u.ok.Render("✓"), u.result.Render(tr.Output.Pretty))
		if tr.Output.Markup != "" {
			u.field("LaTeX", tr.Output.Markup)
		}
	case tr.Err != nil:
		u.printf("%s %v\n", u.fail.Render("✗"), tr.Err)
	default:
		u.printf("%s could not solve %q\n", u.fail.Render("✗"), tr.Input)
		for _, d := range tr.Diagnostics() {
			u.printf("  %s\n", u.muted.Render(d))
		}
	}
	if steps {
		u.rule()
	}
}

func (u *ui) stageBlock(st mathsolve.Stage) {
	mark := u.ok.Render("✓")
	if !st.OK() {
		mark = u.fail.Render("✗")
	}
	u.printf("\n%s %s\n", mark, u.stage.Render(st.Name()))

	switch s := st.(type) {
	case *mathsolve.ParseStage:
		u.field("input type", s.InputKind.String())
		if s.Normalized != "" {
			u.field("normalized", s.Normalized)
		}
		if s.Parsed.Expr != nil {
			u.field("kind", s.Parsed.Kind.String())
			u.field("expression", s.Parsed.Expr.String())
		}
	case *mathsolve.SimplifyStage:
		u.field("simplified", s.Chosen.String())
		if s.Strategy != "" {
			u.field("strategy", string(s.Strategy))
		}
		if s.Preserved {
			u.field("note", "calculus construct kept as is")
		}
		for _, c := range s.Candidates {
			u.printf("    %s %s\n", u.muted.Render(string(c.Strategy)+":"), c.Expr.String())
		}
	case *mathsolve.SolveStage:
		u.field("category", string(s.Category))
		if s.Solution != nil {
			u.field("solution", s.Solution.String())
		}
	case *mathsolve.FormatStage:
		u.field("numeric", s.Numeric)
		u.field("LaTeX", s.Markup)
		u.field("pretty", s.Pretty)
	}
	for _, d := range st.Diagnostics() {
		u.printf("    %s\n", u.muted.Render(d))
	}
}

const usage = `Input formats: plain text or LaTeX.

Equations:       x^2 + 4*x = -8    2*x + 3 = 7    x^2 - 4 = 0
Inequalities:    x^2 - 4 > 0       2*x + 1 <= 5
Simplification:  x^2 + 2*x + 1     sin^2(x) + cos^2(x)    (x+1)*(x-1)
Calculus:        diff(x^3, x)      integrate(x^2, x)
Functions:       factorial(5)      sqrt(16)    log(e^x)    |x - 1|
LaTeX:           \frac{1}{2} + \sqrt{x}

Commands:
  help               this text
  quit, exit         leave
  llm, ai, ollama    talk to the assistant
  clear              forget the assistant dialog
  history            recent requests
  export <file>      write this session's steps as Markdown
`
