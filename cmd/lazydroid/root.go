package lazydroid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/icarus-itcs/lazydroid/internal/logging"
	"github.com/icarus-itcs/lazydroid/internal/project"
	"github.com/icarus-itcs/lazydroid/internal/session"
	"github.com/icarus-itcs/lazydroid/internal/settings"
	"github.com/icarus-itcs/lazydroid/internal/ui"
)

var (
	appVersion string
	appCommit  string
	appDate    string

	configPath string
	verbose    bool
	projectDir string
	noColor    bool

	logCloser io.Closer
	sess      *session.Session
)

var rootCmd = &cobra.Command{
	Use:   "lazydroid",
	Short: "A terminal UI for Android SDK projects",
	Long: `lazydroid is a terminal UI for Android development with the SDK command line tools.
Create projects, build them with ant, and install them on devices and emulators
from one interface.

Run 'lazydroid' inside a project directory, or pass --project to open one.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// no settings or logging needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lazydroid %s\n", appVersion)
		fmt.Printf("  commit: %s\n", appCommit)
		fmt.Printf("  built:  %s\n", appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (default: user config dir/lazydroid/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to "+logging.DefaultPath())
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", "", "Android project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the command line
func Execute(version, commit, date string) error {
	appVersion = version
	appCommit = commit
	appDate = date
	defer func() {
		if logCloser != nil {
			logCloser.Close()
		}
	}()
	return rootCmd.Execute()
}

// setup installs logging, loads settings and creates the session
func setup(cmd *cobra.Command, args []string) error {
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	logger, closer := logging.Setup(logging.DefaultPath(), verbose)
	logCloser = closer

	var (
		st  *settings.Settings
		err error
	)
	if configPath != "" {
		st, err = settings.LoadFrom(configPath)
	} else {
		st, err = settings.Load()
	}
	if err != nil {
		return err
	}
	logger.Debug("settings loaded", "path", st.Path())

	sess = session.New(st, nil, logger)
	return nil
}

// signalContext is cancelled on interrupt so running tools are stopped
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openProject opens --project, or the current directory
func openProject() (*project.Project, error) {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	return sess.OpenProject(dir)
}

func runApp() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("the interface needs a terminal; see 'lazydroid --help' for commands")
	}

	// --project must open; the current directory only when it looks like a project
	if projectDir != "" {
		if _, err := openProject(); err != nil {
			return err
		}
	} else if wd, err := os.Getwd(); err == nil {
		if _, err := os.Stat(filepath.Join(wd, project.ManifestFile)); err == nil {
			if _, err := sess.OpenProject(wd); err != nil {
				return err
			}
		}
	}

	model := ui.NewModel(sess)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
