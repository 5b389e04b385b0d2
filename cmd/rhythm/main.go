// rhythm is a terminal rhythm-reading trainer: notes are generated measure by
// measure, scheduled on the audio clock and judged against your taps.
//
// Usage:
//
//	rhythm play              - Practise with the setup screen
//	rhythm scores [meter]    - Show recorded results
//	rhythm export            - Write generated measures to a MIDI file
//	rhythm generators        - List pattern generators
//	rhythm serve             - Start SSH server for remote practice
//
// Global flags:
//
//	--fps <rate>        - Set render tick rate (default: 60)
//	--seed <value>      - Set pattern seed for reproducible sessions
//	--db <path>         - Set database path (default: ~/.rhythm/results.db)
//	--config <path>     - Use a custom trainer config YAML
//	--log-level <level> - debug, info, warn or error (default: warn)
//	--log-file <path>   - Append logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import pattern generators to register them
	_ "github.com/vovakirdan/tui-rhythm/internal/patterns"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "Rhythm trainer - read and tap rhythms in your terminal",
	Long: `Rhythm is a terminal trainer for reading rhythms. Measures of notes and
rests are generated on the fly and scroll past a hit line or appear page by
page; tap on every note, stay silent on every rest.

Available commands:
  play        - Start a practice session
  scores      - View recorded results
  export      - Write generated measures to a MIDI file
  generators  - List pattern generators
  serve       - Start SSH server for remote practice

Examples:
  rhythm play
  rhythm play --bpm 90 --meter 3/4 --rests
  rhythm play --preset hard --mode scrolling
  rhythm scores 4/4
  rhythm export --out drill.mid --measures 16
  rhythm serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Pattern seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rhythm/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom trainer config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generatorsCmd)
	rootCmd.AddCommand(serveCmd)
}
