package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/assistant"
	"github.com/njchilds90/mathsolve/config"
	"github.com/njchilds90/mathsolve/store"
	"github.com/njchilds90/mathsolve/symbolic"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	proc    *mathsolve.Processor
	session *assistant.Session
	journal *store.Journal
	ui      *ui

	// traces of this invocation, for export.
	traces []*mathsolve.SessionTrace
}

func newApp(cmd *cobra.Command, f *flags) (*app, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg, f.verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{
		cfg:    cfg,
		logger: logger,
		ui:     newUI(cmd.OutOrStdout(), cfg.Output.Color),
	}

	if opts, err := cfg.AssistantOptions(); err == nil {
		if p, err := assistant.New(opts); err != nil {
			logger.Warn("assistant disabled", zap.Error(err))
		} else {
			a.session = assistant.NewSession(p,
				assistant.WithLogger(logger),
				assistant.SkipModelCheck(cfg.Assistant.SkipModelCheck),
			)
		}
	}

	procOpts := []mathsolve.Option{mathsolve.WithLogger(logger)}
	if a.session != nil && (cfg.Assistant.ErrorExplanations || cfg.Assistant.StepExplanations) {
		ex := timedExplainer{session: a.session, timeout: cfg.AssistantTimeout()}
		procOpts = append(procOpts, mathsolve.WithExplainer(ex, cfg.Assistant.ErrorExplanations, cfg.Assistant.StepExplanations))
	}
	a.proc = mathsolve.NewProcessor(symbolic.NewEngine(), procOpts...)

	if cfg.Journal.Path != "" {
		j, err := store.Open(cfg.Journal.Path, logger)
		if err != nil {
			logger.Warn("journal disabled", zap.String("path", cfg.Journal.Path), zap.Error(err))
		} else {
			a.journal = j
		}
	}
	return a, nil
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("provider") && f.provider != cfg.Assistant.Provider {
		cfg.Assistant.Provider = f.provider
		cfg.Assistant.Model = ""
		cfg.Assistant.APIKey = ""
		// Pick up the key of the new provider.
		if kind, err := assistant.ParseKind(f.provider); err == nil && kind.EnvVar() != "" {
			cfg.Assistant.APIKey = os.Getenv(kind.EnvVar())
		}
	}
	if fl.Changed("model") {
		cfg.Assistant.Model = f.model
	}
	if fl.Changed("steps") {
		cfg.Output.ShowSteps = f.steps
	}
	if hide, _ := fl.GetBool("no-steps"); hide {
		cfg.Output.ShowSteps = false
	}
	if f.noColor {
		cfg.Output.Color = false
	}
}

func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Logging.Development || verbose {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// process runs input, records it and prints it.
func (a *app) process(ctx context.Context, input string) *mathsolve.SessionTrace {
	tr := a.proc.Process(ctx, input)
	a.traces = append(a.traces, tr)
	if a.journal != nil {
		if err := a.journal.Record(ctx, tr); err != nil {
			a.logger.Warn("journal write failed", zap.Error(err))
		}
	}
	return tr
}

func (a *app) close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn("journal close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// timedExplainer bounds every assistant call.
type timedExplainer struct {
	session *assistant.Session
	timeout time.Duration
}

func (t timedExplainer) ExplainError(ctx context.Context, expression, errMsg string) string {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.session.ExplainError(ctx, expression, errMsg)
}

func (t timedExplainer) ExplainStep(ctx context.Context, stage, input, output string) string {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.session.ExplainStep(ctx, stage, input, output)
}

func withTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
