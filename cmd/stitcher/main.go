package main

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/stitcher/bundle"
	"github.com/viant/stitcher/config"
	"github.com/viant/stitcher/stitch"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
	"os/signal"
)

type options struct {
	config    string
	output    string
	project   string
	branch    string
	workers   int
	queueSize int
	verbose   bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "stitcher [bundle...] -o FILE",
		Short: "Merge documentation bundles into one site bundle",
		Long: `Merges independently built documentation bundles into a single bundle.

Every input document is moved under its bundle project/branch namespace,
assets are written once per content hash, and the output carries the
given site metadata.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, args)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			logger = logger.With(zap.String("run", uuid.NewString()))
			if err = run(cmd.Context(), cfg, logger); err != nil {
				logger.Error("stitch failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.config, "config", "", "YAML config file")
	flags.StringVarP(&opts.output, "output", "o", "", "output bundle")
	flags.StringVar(&opts.project, "project", "", "output site project (default "+config.DefaultProject+")")
	flags.StringVar(&opts.branch, "branch", "", "output site branch (default "+config.DefaultBranch+")")
	flags.IntVar(&opts.workers, "workers", 0, "bundles processed concurrently (default number of CPUs)")
	flags.IntVar(&opts.queueSize, "queue-size", 0, "writer queue capacity")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// load merges the config file with command line flags; flags win
func (o *options) load(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = config.Load(cmd.Context(), afs.New(), o.config); err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		cfg.Bundles = args
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("project") {
		cfg.Site.Project = o.project
	}
	if flags.Changed("branch") {
		cfg.Site.Branch = o.branch
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("queue-size") {
		cfg.QueueSize = o.queueSize
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	fs := afs.New()
	var bundles = make([]*bundle.Bundle, 0, len(cfg.Bundles))
	defer func() {
		for _, aBundle := range bundles {
			if err := aBundle.Close(); err != nil {
				logger.Warn("failed to close bundle", zap.String("url", aBundle.URL()), zap.Error(err))
			}
		}
	}()
	for _, URL := range cfg.Bundles {
		aBundle, err := bundle.Open(ctx, URL, bundle.WithFS(fs), bundle.WithLogger(logger))
		if err != nil {
			return err
		}
		logger.Debug("opened bundle", zap.String("url", URL), zap.String("namespace", aBundle.Namespace()))
		bundles = append(bundles, aBundle)
	}
	set := stitch.New(bundles,
		stitch.WithLogger(logger),
		stitch.WithWorkers(cfg.Workers),
		stitch.WithQueueSize(cfg.QueueSize))
	if err := set.Link(ctx); err != nil {
		return err
	}
	if err := set.SpliceToURL(ctx, fs, &cfg.Site, cfg.Output); err != nil {
		return err
	}
	report := set.LastReport()
	logger.Info("wrote site bundle", zap.String("output", cfg.Output), zap.Int("entries", report.Entries()))
	return nil
}
