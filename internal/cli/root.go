package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/notejar/internal/config"
	"github.com/existflow/notejar/internal/logger"
	"github.com/existflow/notejar/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	logLevel    string
	logFile     string
	logConsole  bool
	dbPath      string
	catalogFile string
	ephemeral   bool

	// cfg is the effective configuration, set before any command runs
	cfg *config.Config
	// sessionID tags every log line written by this process
	sessionID string
)

var rootCmd = &cobra.Command{
	Use:   "notejar",
	Short: "Note Jar - shake the jar, read a note",
	Long: `Note Jar reveals a collection of hand-written notes one at a time.
Shake the jar three times to draw the next note; every note you open is
kept in your gallery.

Run 'notejar' without arguments to launch the interactive jar.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		loaded, err := config.Load()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, using defaults\n", err)
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
			configChanged = true
		}
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogFile = catalogFile
			configChanged = true
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		sessionID = uuid.NewString()
		logger.Info("Note Jar started",
			logger.F("command", cmd.Name()),
			logger.F("session", sessionID))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			logger.Info("Stdout is not a terminal, printing gallery")
			return printHistory(cmd.OutOrStdout(), env.History(), false, false)
		}

		logger.Info("Launching TUI")
		m := tui.NewModel(env.Catalog, env.JarOptions(), cfg.PublicDir)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Note Jar exiting", logger.F("command", cmd.Name()), logger.F("session", sessionID))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	// Storage and content flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the notes database")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (default: built-in notes)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep opened notes in memory only")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(serveCmd)
}
