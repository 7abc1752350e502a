package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TimelordUK/least/internal/config"
	"github.com/TimelordUK/least/internal/event"
	"github.com/TimelordUK/least/internal/ingest"
	"github.com/TimelordUK/least/internal/logging"
	"github.com/TimelordUK/least/internal/source"
	"github.com/TimelordUK/least/internal/ui"
)

var errStdinTerminal = errors.New("missing filename (stdin is a terminal)")

// Options holds the command line flags
type Options struct {
	ConfigPath  string
	LogFile     string
	LogLevel    string
	LineNumbers bool
}

func main() {
	var opts Options
	if err := newRootCmd(&opts).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "least: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(opts *Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "least [flags] [file...]",
		Short: "A small terminal pager",
		Long: fmt.Sprintf(`least pages through a file or standard input, rendering
backspace overstrike sequences as bold and underline.

Settings are read from %s when it exists.`, config.GetConfigPath()),
		Example: `  # Page through a file
  least notes.txt

  # Page through a manual page
  man ls | least`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, *opts, args)
		},
	}

	rootCmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to config file")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	rootCmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&opts.LineNumbers, "line-numbers", "N", false, "Show line numbers")
	return rootCmd
}

func loadConfig(cmd *cobra.Command, opts Options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("line-numbers") {
		cfg.Display.ShowLineNumbers = opts.LineNumbers
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts Options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	closeLog, err := logging.Setup(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closeLog()

	src := source.FromArgs(args)
	if src.IsStdin() && isatty.IsTerminal(os.Stdin.Fd()) {
		return errStdinTerminal
	}

	queue := event.NewQueue()
	defer queue.Close()

	logger := slog.Default()
	model := ui.NewModel(ui.ModelOptions{
		Name:   src.Name(),
		Config: cfg,
		Events: queue,
		Logger: logger,
	})

	task := ingest.Spawn(src, queue, ingest.Options{
		TabWidth: cfg.Display.TabWidth,
		Logger:   logger,
	})
	model.Attach(task)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if src.IsStdin() {
		// Keys come from the controlling terminal while stdin carries the input.
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	logger.Info("starting", "source", src.Name(), "tab_width", cfg.Display.TabWidth)
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return err
	}
	return model.Err()
}
