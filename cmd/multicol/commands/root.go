package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/multicol/internal/board"
	"github.com/jask/multicol/internal/config"
	"github.com/jask/multicol/internal/database"
	"github.com/jask/multicol/internal/database/repository"
	"github.com/jask/multicol/internal/logging"
	"github.com/jask/multicol/internal/seed"
	"github.com/jask/multicol/internal/tui"
)

var (
	cfgFile  string
	dbPath   string
	logFile  string
	logLevel string

	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		items     int
		strategy  string
		columns   int
		trashable bool
		minimal   bool
		vertical  bool
		handle    bool
		seedFile  string
		boardName string
	)

	root := &cobra.Command{
		Use:          "multicol",
		Short:        "Drag items between columns in the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				if err := os.Setenv("MULTICOL_CONFIG", cfgFile); err != nil {
					return err
				}
			}
			c, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("db") {
				c.Store.Path = dbPath
			}
			if flags.Changed("log-file") {
				c.Log.File = logFile
			}
			if flags.Changed("log-level") {
				c.Log.Level = logLevel
			}
			l, closer, err := logging.New(c.Log)
			if err != nil {
				return fmt.Errorf("logging: %w", err)
			}
			cfg, logger, logCloser = c, l, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("items") {
				cfg.Board.ItemCount = items
			}
			if flags.Changed("strategy") {
				cfg.Board.Strategy = strategy
			}
			if flags.Changed("columns") {
				cfg.Board.Columns = columns
			}
			if flags.Changed("trashable") {
				cfg.Board.Trashable = trashable
			}
			if flags.Changed("minimal") {
				cfg.Board.Minimal = minimal
			}
			if flags.Changed("vertical") {
				cfg.Board.Vertical = vertical
			}
			if flags.Changed("handle") {
				cfg.Board.Handle = handle
			}
			if flags.Changed("seed") {
				cfg.Board.SeedFile = seedFile
			}
			if flags.Changed("board") {
				cfg.Store.Board = boardName
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runBoard(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/multicol/config.toml)")
	pf.StringVar(&dbPath, "db", "", "saved-board database path")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	f := root.Flags()
	f.IntVarP(&items, "items", "n", 3, "items per generated column")
	f.StringVar(&strategy, "strategy", config.StrategyVertical, "item layout: vertical, horizontal or grid")
	f.IntVar(&columns, "columns", 1, "items per row for the grid strategy")
	f.BoolVar(&trashable, "trashable", true, "show a drop zone that deletes items")
	f.BoolVar(&minimal, "minimal", false, "hide labels and column controls")
	f.BoolVar(&vertical, "vertical", false, "stack columns top to bottom")
	f.BoolVar(&handle, "handle", false, "drag items only by their handle glyph")
	f.StringVar(&seedFile, "seed", "", "load the starting board from a toml, yaml or json file")
	f.StringVar(&boardName, "board", "", "saved board to open and save to")

	root.AddCommand(boardsCmd(), configCmd())
	return root
}

func runBoard(ctx context.Context) error {
	db, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	var saver tui.Saver
	var repo *repository.BoardRepo
	if db != nil {
		defer db.Close()
		repo = repository.NewBoardRepo(db)
		saver = repo
	}

	b, err := startingBoard(ctx, repo)
	if err != nil {
		return err
	}
	logger.Info("board opened", "containers", len(b.Containers()), "store", cfg.Store.Path, "board", cfg.Store.Board)

	app := tui.New(ctx, b, tui.OptionsFromConfig(cfg.Board), saver, cfg.Store.Board, logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// startingBoard picks the seed file, then the saved board, then a generated board.
func startingBoard(ctx context.Context, repo *repository.BoardRepo) (*board.Board, error) {
	if cfg.Board.SeedFile != "" {
		return seed.Load(cfg.Board.SeedFile)
	}
	if repo != nil {
		layout, err := repo.Get(ctx, cfg.Store.Board)
		switch {
		case err == nil:
			return board.New(layout.Columns)
		case !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("load board %q: %w", cfg.Store.Board, err)
		}
	}
	return board.Generate(cfg.Board.ItemCount), nil
}

// openStore returns nil when no store path is configured.
func openStore(s config.StoreConfig) (*sql.DB, error) {
	if s.Path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.OpenMigrated(s.Path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// requireStore opens the configured store or fails when there is none.
func requireStore() (*repository.BoardRepo, func(), error) {
	db, err := openStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	if db == nil {
		return nil, nil, fmt.Errorf("no board store configured: set store.path or pass --db")
	}
	return repository.NewBoardRepo(db), func() { _ = db.Close() }, nil
}
