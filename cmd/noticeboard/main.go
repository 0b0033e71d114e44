package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evanschultz/noticeboard/internal/app"
	"github.com/evanschultz/noticeboard/internal/config"
	"github.com/evanschultz/noticeboard/internal/domain"
	"github.com/evanschultz/noticeboard/internal/platform"
	"github.com/evanschultz/noticeboard/internal/tui"
)

// version is set at build time.
var version = "dev"

// program is the part of *tea.Program the CLI drives.
type program interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

// programFactory builds the TUI program; tests replace it.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// cliOptions holds the resolved persistent flags.
type cliOptions struct {
	configPath string
	appName    string
	devMode    bool
}

// run executes the CLI with args.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version), fang.WithNotifySignal(os.Interrupt))
}

func newRootCommand(stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("NOTICEBOARD_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultAppName := "noticeboard"
	if envApp := strings.TrimSpace(os.Getenv("NOTICEBOARD_APP_NAME")); envApp != "" {
		defaultAppName = envApp
	}

	root := &cobra.Command{
		Use:   "noticeboard",
		Short: "A terminal notice board of draggable sticky notes",
		Long: `noticeboard shows a board of sticky notes you can add, edit, pin, delete,
and drag around with the mouse. Notes live for the session only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), opts, stderr)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&opts.appName, "app", defaultAppName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		&cobra.Command{
			Use:   "paths",
			Short: "Print resolved config and data paths",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				paths, configPath, err := resolvePaths(opts)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
				_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
				_, _ = fmt.Fprintf(out, "config: %s\n", configPath)
				_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
				_, _ = fmt.Fprintf(out, "log_dir: %s\n", paths.LogDir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration as TOML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, configPath, err := resolvePaths(opts)
				if err != nil {
					return err
				}
				cfg, err := config.Load(configPath, config.Default())
				if err != nil {
					return fmt.Errorf("load config %q: %w", configPath, err)
				}
				encoded, err := config.Encode(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(encoded)
				return err
			},
		},
	)
	return root
}

// resolvePaths resolves platform paths and the config path from flags, env, and defaults.
func resolvePaths(opts *cliOptions) (platform.Paths, string, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return platform.Paths{}, "", err
	}
	configPath := strings.TrimSpace(opts.configPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("NOTICEBOARD_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	return paths, configPath, nil
}

// runBoard loads config, builds the board, and runs the TUI until it exits.
func runBoard(ctx context.Context, opts *cliOptions, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	paths, configPath, err := resolvePaths(opts)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, paths.LogDir, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	// The TUI owns the terminal; only the dev-file sink records events while it runs.
	logger.SetConsoleEnabled(false)
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode)
	logger.Info("configuration loaded", "config_path", configPath, "drag_mode", cfg.Drag.Mode, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	boardCfg := toBoardConfig(cfg)
	boardCfg.SessionIDs = uuid.NewString
	boardCfg.Logger = logger
	board, err := app.NewNoticeBoard(boardCfg)
	if err != nil {
		logger.Error("notice board setup failed", "err", err)
		return fmt.Errorf("build notice board: %w", err)
	}

	m := tui.NewModel(
		board,
		tui.WithTitle(opts.appName),
		tui.WithRuntimeConfig(toTUIRuntimeConfig(cfg)),
		tui.WithReloadConfigCallback(func() (tui.RuntimeConfig, error) {
			logger.Info("runtime config reload requested", "config_path", configPath)
			reloaded, err := loadRuntimeConfig(configPath)
			if err != nil {
				logger.Error("runtime config reload failed", "config_path", configPath, "err", err)
				return tui.RuntimeConfig{}, err
			}
			logger.Info("runtime config reload complete", "config_path", configPath)
			return reloaded, nil
		}),
	)
	p := programFactory(m)

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if err := config.EnsureConfigDir(configPath); err != nil {
		logger.Warn("config directory unavailable", "config_path", configPath, "err", err)
	}
	if err := config.Watch(watchCtx, configPath, func() {
		logger.Debug("config file changed", "config_path", configPath)
		p.Send(tui.ConfigChangedMsg{})
	}, func(err error) {
		logger.Warn("config watcher error", "err", err)
	}); err != nil {
		logger.Warn("config hot reload disabled", "config_path", configPath, "err", err)
	}

	logger.Info("starting tui program loop")
	if _, err := p.Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("tui program exited", "notes", len(board.Notes()))
	return nil
}

// toBoardConfig maps file config onto the notice board's construction config.
func toBoardConfig(cfg config.Config) app.Config {
	seed := make([]domain.NoteInput, 0, len(cfg.Notes.Initial))
	for _, note := range cfg.Notes.Initial {
		seed = append(seed, domain.NoteInput{
			Text:   note.Text,
			X:      note.X,
			Y:      note.Y,
			Pinned: note.Pinned,
		})
	}
	return app.Config{
		Board: app.BoardConfig{
			Size:        domain.Size{Width: cfg.Board.Width, Height: cfg.Board.Height},
			NoteSize:    domain.Size{Width: cfg.Notes.Width, Height: cfg.Notes.Height},
			DefaultText: cfg.Notes.DefaultText,
			PinAnchor:   domain.Point{X: cfg.Notes.PinAnchorX, Y: cfg.Notes.PinAnchorY},
		},
		Seed: seed,
	}
}

// toTUIRuntimeConfig maps file config onto the settings the TUI can reload.
func toTUIRuntimeConfig(cfg config.Config) tui.RuntimeConfig {
	return tui.RuntimeConfig{
		DragMode:      tui.DragMode(cfg.Drag.Mode),
		FrameInterval: cfg.FrameIntervalDuration(),
		CellSize:      domain.Size{Width: cfg.Board.CellWidth, Height: cfg.Board.CellHeight},
		BoardSize:     domain.Size{Width: cfg.Board.Width, Height: cfg.Board.Height},
		Keys: tui.KeyConfig{
			AddNote:    cfg.Keys.AddNote,
			DeleteNote: cfg.Keys.DeleteNote,
			TogglePin:  cfg.Keys.TogglePin,
			EditNote:   cfg.Keys.EditNote,
			CopyNote:   cfg.Keys.CopyNote,
			NoteInfo:   cfg.Keys.NoteInfo,
		},
	}
}

// loadRuntimeConfig reloads the config file for a running TUI.
func loadRuntimeConfig(configPath string) (tui.RuntimeConfig, error) {
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return tui.RuntimeConfig{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	return toTUIRuntimeConfig(cfg), nil
}

// parseBoolEnv parses a boolean env var, reporting whether it was set and valid.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
