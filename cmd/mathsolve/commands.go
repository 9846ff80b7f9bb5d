package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/njchilds90/mathsolve"
)

// demoInputs exercise every problem category.
var demoInputs = []string{
	"x^2 + 4*x - 8",
	"sin^2(x) + cos^2(x)",
	"integrate(x^2, x)",
	"diff(x^3 + 2*x, x)",
	"x^2 - 4 = 0",
	"2*x + 3 = 7",
	"sqrt(16)",
	"factorial(5)",
	"log(E)",
	"pi + E",
}

func solveCmd(get func() *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "solve [expression]",
		Short: "Process a single expression",
		Example: `  mathsolve solve "x^2 - 4 = 0"
  mathsolve solve --json "diff(x^3 + 2*x, x)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			tr := a.process(cmd.Context(), strings.Join(args, " "))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(tr.Result()); err != nil {
					return err
				}
			} else {
				a.ui.trace(tr, a.cfg.Output.ShowSteps)
			}
			if !tr.Success {
				return errors.New("processing failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func demoCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			failed := 0
			for i, in := range demoInputs {
				a.ui.printf("\n%s\n", a.ui.title.Render(fmt.Sprintf("Example %d:", i+1)))
				tr := a.process(cmd.Context(), in)
				a.ui.trace(tr, a.cfg.Output.ShowSteps)
				if !tr.Success {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d examples failed", failed, len(demoInputs))
			}
			return nil
		},
	}
}

func replCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive solver (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, get())
		},
	}
}

func runREPL(cmd *cobra.Command, a *app) error {
	u := a.ui
	u.rule()
	u.printf("%s\n", u.title.Render("Interactive math solver"))
	u.printf("Type 'help' for instructions, 'quit' or 'exit' to leave.\n")
	u.printf("Assistant commands: llm, ai, ollama\n")
	u.rule()

	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		u.printf("\n%s ", u.ok.Render("expr>"))
		if !in.Scan() {
			u.printf("\n")
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		word, rest, _ := strings.Cut(line, " ")

		switch strings.ToLower(word) {
		case "":
			continue
		case "quit", "exit":
			u.printf("Bye.\n")
			return nil
		case "help":
			u.printf("%s", usage)
		case "llm", "ai", "ollama":
			if err := runDialog(cmd, a, in); err != nil {
				return err
			}
		case "clear":
			if a.session != nil {
				a.session.Reset()
			}
			u.printf("Assistant dialog cleared.\n")
		case "history":
			if err := printHistory(cmd, a, a.cfg.Journal.Limit); err != nil {
				u.printf("%s %v\n", u.fail.Render("✗"), err)
			}
		case "export":
			path := strings.TrimSpace(rest)
			if path == "" {
				path = fmt.Sprintf("mathsolve-%s.md", time.Now().Format("20060102-150405"))
			}
			if err := mathsolve.ExportMarkdown(path, a.traces...); err != nil {
				u.printf("%s %v\n", u.fail.Render("✗"), err)
				continue
			}
			u.printf("Exported %d requests to %s\n", len(a.traces), path)
		default:
			a.ui.trace(a.process(cmd.Context(), line), a.cfg.Output.ShowSteps)
		}
	}
}

func chatCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant about writing expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialog(cmd, get(), bufio.NewScanner(cmd.InOrStdin()))
		},
	}
}

// runDialog talks to the assistant until exit. A message spans lines
// up to the first blank line.
func runDialog(cmd *cobra.Command, a *app, in *bufio.Scanner) error {
	u := a.ui
	if a.session == nil {
		u.printf("%s assistant is not configured\n", u.fail.Render("✗"))
		return nil
	}
	p := a.session.Provider()
	u.rule()
	u.printf("%s\n", u.title.Render("Math assistant ("+p.Name()+", "+p.Model()+")"))
	u.printf("End a message with an empty line. Commands: exit, quit, clear.\n")
	u.rule()

	for {
		u.printf("%s ", u.ok.Render("you:"))
		msg, err := readMessage(in)
		if errors.Is(err, io.EOF) {
			u.printf("\n")
			return nil
		}
		if err != nil {
			return err
		}
		switch strings.ToLower(msg) {
		case "":
			continue
		case "exit", "quit":
			u.printf("Back to the solver.\n")
			return nil
		case "clear":
			a.session.Reset()
			u.printf("Dialog history cleared.\n")
			continue
		}
		ctx, cancel := withTimeout(cmd, a.cfg.AssistantTimeout())
		reply := a.session.Chat(ctx, msg)
		cancel()
		u.reply(reply)
	}
}

// readMessage reads lines up to a blank line. A single-line command
// returns at once.
func readMessage(in *bufio.Scanner) (string, error) {
	var lines []string
	for in.Scan() {
		line := strings.TrimRight(in.Text(), " \t")
		if line == "" {
			return strings.TrimSpace(strings.Join(lines, "\n")), nil
		}
		if len(lines) == 0 {
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "exit", "quit", "clear":
				return strings.TrimSpace(line), nil
			}
		}
		lines = append(lines, line)
	}
	if err := in.Err(); err != nil {
		return "", err
	}
	if len(lines) > 0 {
		return strings.TrimSpace(strings.Join(lines, "\n")), nil
	}
	return "", io.EOF
}

func historyCmd(get func() *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent requests from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Journal.Limit
			}
			return printHistory(cmd, a, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	return cmd
}

func printHistory(cmd *cobra.Command, a *app, limit int) error {
	if a.journal == nil {
		return errors.New("journal is disabled")
	}
	entries, err := a.journal.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	u := a.ui
	if len(entries) == 0 {
		u.printf("No requests yet.\n")
		return nil
	}
	for _, e := range entries {
		mark := u.ok.Render("✓")
		out := e.Result
		if !e.Success {
			mark, out = u.fail.Render("✗"), e.Error
		}
		u.printf("%s %s %s  %s → %s\n",
			mark,
			u.muted.Render(e.CreatedAt.Format("2006-01-02 15:04:05")),
			u.label.Render(fmt.Sprintf("[%s]", e.Category)),
			e.Input, out)
	}
	return nil
}
