package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomz197/driftroids/internal/app"
	"github.com/tomz197/driftroids/internal/draw"
)

// Smallest terminal that still leaves room for the canvas.
const (
	minCols = 40
	minRows = 16
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Click / drag   - aim, thrust and fire
  Space          - touch at the pointer
  p / Esc        - pause
  d              - change difficulty
  h              - high scores
  ?              - help
  q / Ctrl+C     - quit

The game owns the terminal, so logs are only written when --log is set.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, cfg, "driftroids")
	if err != nil {
		return err
	}

	cols, rows := draw.TerminalSizeOr(draw.DefaultTermSizeFunc, minCols, minRows)
	if cols < minCols || rows < minRows {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, at least %dx%d is recommended\n",
			cols, rows, minCols, minRows)
	}

	var scores app.ScoreStore
	if store := openStore(cfg, logger); store != nil {
		defer store.Close()
		scores = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := app.NewSession(cfg, scores, logger, playerName())
	logger.Info("starting game", "difficulty", sess.World.Difficulty().Name)
	if err := sess.Run(ctx); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// playerName is the default name for saved scores.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
