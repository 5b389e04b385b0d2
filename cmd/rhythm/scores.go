package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagLimit  int
	flagPlain  bool
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [meter]",
	Short: "Show recorded results",
	Long: `Display recorded session results.

On a terminal this opens the interactive scoreboard. With --plain, or when
output is redirected, the best results are printed as a table, optionally
limited to one meter.

Examples:
  rhythm scores
  rhythm scores 3/4 --plain
  rhythm scores --recent --limit 5
  rhythm scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the scoreboard")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Order by date instead of score")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded results")
}

func runScores(cmd *cobra.Command, args []string) {
	meter := ""
	if len(args) == 1 {
		m := rhythm.ParseMeter(args[0])
		if !m.Supported() {
			fmt.Fprintf(os.Stderr, "Error: unsupported meter %q (use 3/4, 4/4 or 6/8)\n", args[0])
			os.Exit(1)
		}
		meter = m.String()
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All results deleted.")
		return
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if !flagPlain && interactive && meter == "" && !flagRecent {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var results []storage.ResultEntry
	if flagRecent {
		results, err = store.RecentResults(flagLimit)
	} else {
		results, err = store.TopResults(meter, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
	if flagRecent && meter != "" {
		results = filterMeter(results, meter)
	}

	printResults(results, meter)
	printStats(store, meter)
}

func printResults(results []storage.ResultEntry, meter string) {
	title := "all meters"
	if meter != "" {
		title = meter
	}
	if flagRecent {
		fmt.Printf("Recent Results - %s\n", title)
	} else {
		fmt.Printf("Best Results - %s\n", title)
	}
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rhythm play' to set the first score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %-5s  %-5s  %-9s  %s\n",
		"Rank", "Score", "Acc", "Combo", "Meter", "Tempo", "Mode", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %-5s  %-5s  %-9s  %s\n",
		"----", "-----", "---", "-----", "-----", "-----", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-6d  %4.0f%%  %-5d  %-5s  %-5d  %-9s  %s\n",
			i+1, r.Score, r.Accuracy()*100, r.MaxCombo, r.Meter, r.BPM, r.Mode,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStats(store *storage.Store, meter string) {
	stats, err := store.Stats()
	if err != nil || len(stats) == 0 {
		return
	}

	meters := make([]string, 0, len(stats))
	for m := range stats {
		if meter == "" || m == meter {
			meters = append(meters, m)
		}
	}
	sort.Strings(meters)

	fmt.Println()
	for _, m := range meters {
		s := stats[m]
		fmt.Printf("%s: %d sessions, best %d, average %.0f, %s practised\n",
			m, s.Sessions, s.BestScore, s.AvgScore, formatSecs(s.TotalSecs))
	}
}

func filterMeter(results []storage.ResultEntry, meter string) []storage.ResultEntry {
	out := results[:0]
	for _, r := range results {
		if r.Meter == meter {
			out = append(out, r)
		}
	}
	return out
}

func formatSecs(secs int64) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
