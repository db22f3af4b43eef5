package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomz197/driftroids/internal/storage"
)

var (
	flagCSV   bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the high-score table",
	Long: `Display the top high scores and a summary of every recorded round.

Examples:
  driftroids scores
  driftroids scores --limit 25
  driftroids scores --csv > scores.csv`,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write the table as CSV")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 0, "Number of entries (default: table size from config)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	limit := cfg.Storage.TableSize
	if flagLimit > 0 {
		limit = flagLimit
	}

	if flagCSV {
		return store.ExportCSV(cmd.OutOrStdout(), limit)
	}
	return printScores(cmd.OutOrStdout(), store, limit)
}

func printScores(w io.Writer, board scoreBoard, limit int) error {
	scores, err := board.TopScores(limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(w, "High Scores")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'driftroids play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-8s  %-10s  %s\n", "Rank", "Name", "Score", "Difficulty", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-8s  %-10s  %s\n", "----", "----", "-----", "----------", "----")
	for i, e := range scores {
		fmt.Fprintf(w, "  %-4d  %-16s  %-8d  %-10s  %s\n",
			i+1, e.Name, e.Score, e.Difficulty, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := board.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot compute stats: %v\n", err)
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Rounds: %d  Best: %d  Mean: %.1f  StdDev: %.1f\n", st.Count, st.Max, st.Mean, st.StdDev)
	return nil
}
