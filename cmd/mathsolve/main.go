// Command mathsolve parses, simplifies and solves free-form math input.
//
// Usage:
//
//	mathsolve solve "x^2 - 4 = 0"
//	mathsolve solve --json "sin^2(x) + cos^2(x)"
//	mathsolve demo
//	mathsolve repl
//	mathsolve chat --provider ollama
//	mathsolve history -n 10
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/mathsolve/config"
)

// flags holds the global command line flags.
type flags struct {
	configPath string
	verbose    bool
	provider   string
	model      string
	noColor    bool
	steps      bool
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	var a *app

	root := &cobra.Command{
		Use:   "mathsolve",
		Short: "Solve free-form math input step by step",
		Long: `mathsolve turns loosely written math (plain text or LaTeX) into an
expression, simplifies it, decides what kind of problem it is and solves it.

Every request goes through four stages:
  1. Parse: normalize notation and build the expression
  2. Simplify: try several strategies and keep the best candidate
  3. Solve: classify the problem and solve it
  4. Format: render numeric, LaTeX and pretty output

A chat model can explain failures and steps (see --provider).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cmd, f)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "Config file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Debug logging to stderr")
	pf.StringVarP(&f.provider, "provider", "p", "", "Assistant provider (ollama, openai, deepseek, anthropic, gemini)")
	pf.StringVarP(&f.model, "model", "m", "", "Assistant model")
	pf.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&f.steps, "steps", true, "Show processing steps (--steps=false or --no-steps to hide)")
	pf.Bool("no-steps", false, "Hide processing steps")

	get := func() *app { return a }
	root.AddCommand(
		solveCmd(get),
		demoCmd(get),
		replCmd(get),
		chatCmd(get),
		historyCmd(get),
	)
	return root
}
