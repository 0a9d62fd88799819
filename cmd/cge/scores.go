package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cge/internal/platform/tui"
	"github.com/vovakirdan/cge/internal/registry"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show the best records of a game",
	Long: `Display the best records stored for the specified game: pong keeps the
longest rallies, retrocar the fastest laps.

Examples:
  cge scores pong
  cge scores retrocar --limit 5
  cge scores retrocar --recent
  cge scores pong --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of records to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest records instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all records of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		return unknownGame(gameID)
	}
	if info.Records == nil {
		return fmt.Errorf("%s does not keep records", info.Title)
	}
	kind := *info.Records
	order := tui.RecordOrder(kind)

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := s.store.ClearRecords(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared records for %s.\n", info.Title)
		return nil
	}

	heading := "Best"
	records, err := s.store.TopRecords(gameID, order, flagLimit)
	if flagRecent {
		heading = "Recent"
		records, err = s.store.RecentRecords(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Records - %s\n", heading, info.Title)
	fmt.Fprintln(out)

	if len(records) == 0 {
		fmt.Fprintln(out, "No records yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'cge play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", kind.Label, "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, r := range records {
		fmt.Fprintf(out, "  %-4d  %-10s  %s\n", i+1, tui.FormatRecord(kind, r.Value), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := s.store.Stats(gameID, order)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d records, best %s, average %s, last played %s\n",
		stats.Count,
		tui.FormatRecord(kind, stats.Best),
		tui.FormatRecord(kind, stats.Average),
		stats.LastPlayed.Format("2006-01-02 15:04"))
	return nil
}
