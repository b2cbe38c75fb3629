// ABOUTME: Root cobra command and shared application wiring
// ABOUTME: Loads config, builds the logger, session store and audit service
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/kinetic/config"
	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/insights"
	"github.com/harperreed/kinetic/logging"
)

// auditTemperature keeps audit replies close to deterministic.
const auditTemperature = 0.2

// Options customizes the root command. Zero values use the real clock and the
// configured Gemini model.
type Options struct {
	Version string
	Now     func() time.Time
	Model   insights.Model
}

// App is the state shared by every subcommand.
type App struct {
	Config     *config.Config
	ConfigPath string
	Logger     *zap.Logger
	Store      *db.Store
	Auditor    *insights.Service
	Version    string
}

func (a *App) init(ctx context.Context, opts Options, configPath, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	model := opts.Model
	if model == nil && cfg.HasAPIKey() {
		gm, err := insights.NewGeminiModel(ctx, insights.GeminiOptions{
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			BaseURL:     cfg.AI.BaseURL,
			Temperature: auditTemperature,
		})
		if err != nil {
			return err
		}
		model = gm
	}
	if model == nil {
		logger.Debug("no API key configured, audits are disabled")
	}

	auditor := insights.NewService(model, logger, cfg.AI.AuditTimeout)
	auditor.SetClock(now)

	a.Config = cfg
	a.ConfigPath = configPath
	if a.ConfigPath == "" {
		a.ConfigPath = config.Path()
	}
	a.Logger = logger
	a.Store = db.NewSeededStore(now)
	a.Auditor = auditor
	a.Version = opts.Version
	return nil
}

// NewRootCommand assembles the kinetic command tree.
func NewRootCommand(opts Options) *cobra.Command {
	var (
		configPath string
		logLevel   string
	)
	app := &App{}

	root := &cobra.Command{
		Use:           "kinetic",
		Short:         "Networking pipeline dashboard with AI audits",
		Long:          "kinetic tracks professional contacts through a lifecycle pipeline, surfaces due follow-ups and runs AI networking audits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd.Context(), opts, configPath, logLevel)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/kinetic/config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newBoardCommand(app),
		newFollowUpsCommand(app),
		newStatsCommand(app),
		newContactsCommand(app),
		newDashboardCommand(app),
		newAuditCommand(app),
		newVizCommand(app),
		newServeCommand(app),
		newMCPCommand(app),
		newTUICommand(app),
		newConfigCommand(app),
		newVersionCommand(app),
	)

	return root
}

// Execute runs the CLI until completion or an interrupt.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand(Options{Version: version}).ExecuteContext(ctx)
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kinetic version %s\n", app.Version)
		},
	}
}
