// Package cli implements the entryhub command line: the HTTP server and one-shot lookups.
package cli

import (
	"fmt"

	"github.com/CageChen/entryhub/internal/config"
	"github.com/CageChen/entryhub/internal/entry"
	mfs "github.com/CageChen/entryhub/internal/fs"
	"github.com/CageChen/entryhub/internal/logging"
	"github.com/CageChen/entryhub/internal/monitoring"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// app carries the state shared by every command once flags are parsed.
type app struct {
	fs mfs.FileSystem

	configPath  string
	concurrency int
	logLevel    string
	host        string
	port        int
	open        bool

	cfg      *config.Config
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	resolver *entry.Resolver
}

func newApp(fsys mfs.FileSystem) *app {
	return &app{fs: fsys}
}

// Execute runs the entryhub command line against the local filesystem.
func Execute() error {
	return newApp(mfs.NewLocalFS()).rootCommand().Execute()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "entryhub",
		Short: "Resolve filesystem paths into typed entries",
		Long: "entryhub turns filesystem paths into entries carrying name, type, size,\n" +
			"timestamps and a file URL, over HTTP or from the command line.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "path to config file")
	pf.IntVar(&a.concurrency, "concurrency", entry.DefaultConcurrency, "paths resolved at once in a batch")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	// Serving is the default, so the root accepts the serve flags too.
	a.serveFlags(root.Flags())

	root.AddCommand(
		a.serveCommand(),
		a.getCommand(),
		a.listCommand(),
		a.parentCommand(),
		a.resolveCommand(),
		a.hierarchyCommand(),
	)
	return root
}

func (a *app) serveFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.host, "host", "127.0.0.1", "address to listen on")
	fs.IntVarP(&a.port, "port", "p", 8080, "port to listen on")
	fs.BoolVar(&a.open, "open", false, "open the browser after starting")
}

// setup loads the configuration, applies explicitly set flags on top and builds
// the logger, metrics and resolver.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Concurrency = a.concurrency
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("host") {
		cfg.Host = a.host
	}
	if flags.Changed("port") {
		cfg.Port = a.port
	}
	if flags.Changed("open") {
		cfg.Open = a.open
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.metrics = monitoring.NewMetrics()
	a.resolver = entry.NewResolver(a.fs,
		entry.WithLogger(logger.Named("resolver")),
		entry.WithObserver(a.metrics),
		entry.WithConcurrency(cfg.Concurrency),
	)
	return nil
}
