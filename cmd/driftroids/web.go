package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tomz197/driftroids/internal/config"
	"github.com/tomz197/driftroids/internal/storage"
)

//go:embed index.html
var indexHTML string

var pageTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(indexHTML))

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the high-score page",
	Long: `Start an HTTP server with a landing page that shows how to connect over
SSH and the current high-score table. The table is also available as CSV
at /scores.csv.

The address comes from the config file and may be overridden with
WEB_HOST and WEB_PORT; SSH_DISPLAY_HOST sets the host shown on the page.`,
	RunE: runWeb,
}

// scoreBoard is the read side of the score store used by the web page.
type scoreBoard interface {
	TopScores(limit int) ([]storage.Entry, error)
	Stats() (storage.Stats, error)
	ExportCSV(w io.Writer, limit int) error
}

type pageData struct {
	SSHHost     string
	SSHPort     string
	Unavailable bool
	Scores      []storage.Entry
	Stats       storage.Stats
}

func runWeb(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg, "driftroids-web")
	if err != nil {
		return err
	}

	var board scoreBoard
	if store := openStore(cfg, logger); store != nil {
		defer store.Close()
		board = store
	}

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newWebHandler(cfg, board, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting web server", "address", "http://"+addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newWebHandler serves the landing page and the CSV export. board may be nil.
func newWebHandler(cfg config.Config, board scoreBoard, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		data := pageData{
			SSHHost:     cfg.Web.DisplayHost,
			SSHPort:     cfg.SSH.Port,
			Unavailable: board == nil,
		}
		if board != nil {
			scores, err := board.TopScores(cfg.Storage.TableSize)
			if err == nil {
				data.Stats, err = board.Stats()
			}
			if err != nil {
				logger.Error("cannot load scores", "error", err)
				data.Unavailable = true
			}
			data.Scores = scores
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("cannot render page", "error", err)
		}
	})

	mux.HandleFunc("GET /scores.csv", func(w http.ResponseWriter, _ *http.Request) {
		if board == nil {
			http.Error(w, "high scores are unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="scores.csv"`)
		if err := board.ExportCSV(w, cfg.Storage.TableSize); err != nil {
			logger.Error("cannot export scores", "error", err)
			http.Error(w, "cannot export scores", http.StatusInternalServerError)
		}
	})

	return mux
}
