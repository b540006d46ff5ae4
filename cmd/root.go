package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kamal-hamza/metadesigner/internal/adapters/repository"
	"github.com/kamal-hamza/metadesigner/internal/core/services"
	"github.com/kamal-hamza/metadesigner/internal/observability"
	"github.com/kamal-hamza/metadesigner/pkg/config"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
	"github.com/kamal-hamza/metadesigner/pkg/workspace"
)

var (
	cfgFile string

	// Global workspace and configuration
	appWorkspace *workspace.Workspace
	appConfig    *config.Config
	appViper     = viper.New()
	appLogger    *slog.Logger
	appCtx       context.Context

	// Metrics
	metricsRegistry *prometheus.Registry
	observer        observability.Observer

	// Services
	registerService *services.RegisterService
	listService     *services.ListService
	doctorService   *services.DoctorService
	trainService    *services.TrainService

	// Repositories
	registryStore *repository.FileRegistryStore
	datasetStore  *repository.FileDatasetStore
)

// commands that may run before the workspace exists
var noWorkspaceCommands = map[string]bool{
	"init":    true,
	"version": true,
	"help":    true,
}

// commands that create the workspace on demand
var autoInitCommands = map[string]bool{
	"serve":    true,
	"register": true,
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metadesigner",
	Short: "Metadesigner - collect per-designer image datasets",
	Long: ui.StyleTitle.Render("Metadesigner") + " - Designer Dataset Collector\n\n" +
		"Upload 1 to 30 reference images per designer through a small web UI or the CLI.\n" +
		"Each designer gets a hash-named dataset folder and an entry in the designer registry.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/metadesigner/config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "directory holding designer.json and the dataset folders")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = appViper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	_ = appViper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	appCtx = cmd.Context()
	if appCtx == nil {
		appCtx = context.Background()
	}

	if noWorkspaceCommands[cmd.Name()] {
		return nil
	}

	ws, cfg, err := loadWorkspace()
	if err != nil {
		return err
	}
	appWorkspace = ws
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)
	appLogger = observability.NewLogger(appConfig.LogLevel, appConfig.LogFormat, os.Stderr)

	if !appWorkspace.Exists() {
		if !autoInitCommands[cmd.Name()] {
			fmt.Println(ui.FormatError("Workspace not initialized"))
			fmt.Println(ui.FormatInfo("Run 'metadesigner init' to initialize the workspace"))
			return fmt.Errorf("workspace not found at %s", appWorkspace.CachePath)
		}
		if err := appWorkspace.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize workspace: %w", err)
		}
	}

	// Initialize metrics
	metricsRegistry = prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promObserver, err := observability.NewPrometheusObserver("metadesigner", metricsRegistry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	observer = promObserver

	// Initialize repositories
	registryStore = repository.NewFileRegistryStore(appWorkspace.RegistryPath(),
		repository.WithTolerateCorrupt(appConfig.TolerateCorruptRegistry),
		repository.WithLogger(appLogger))
	datasetStore = repository.NewFileDatasetStore(appWorkspace)

	// Initialize services
	registerService = services.NewRegisterService(registryStore, datasetStore,
		services.WithObserver(observer),
		services.WithLogger(appLogger))
	listService = services.NewListService(registryStore, datasetStore)
	doctorService = services.NewDoctorService(registryStore, datasetStore)
	trainService = services.NewTrainService(observer)

	return nil
}

// loadWorkspace resolves paths and layers file, env and flag configuration
func loadWorkspace() (*workspace.Workspace, *config.Config, error) {
	ws, err := workspace.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize workspace: %w", err)
	}

	configPath := ws.ConfigPath
	if cfgFile != "" {
		configPath = cfgFile
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Overlay(appViper); err != nil {
		return nil, nil, err
	}

	if err := ws.WithCacheDir(cfg.CacheDir); err != nil {
		return nil, nil, err
	}
	return ws, cfg, nil
}

// getContext returns a context for operations
func getContext() context.Context {
	if appCtx == nil {
		return context.Background()
	}
	return appCtx
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
