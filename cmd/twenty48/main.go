// twenty48 is a terminal take on the sliding-tile merge game.
//
// Usage:
//
//	twenty48 play [variant]   - Play a variant (interactive picker when omitted)
//	twenty48 list             - List available variants
//	twenty48 scores [variant] - Show recorded results
//	twenty48 serve            - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible games
//	--db <path>     - Set database path (default: ~/.twenty48/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "twenty48",
	Short: "2048 in your terminal",
	Long: `twenty48 is a terminal take on the sliding-tile merge game.

Slide tiles with the arrow keys; equal neighbors merge into one. Build
the win tile, then keep going or stop. Every finished game lands on the
local scoreboard, or on a shared one when played over SSH.

Available commands:
  play     - Play a variant (interactive picker when omitted)
  list     - Show all registered variants
  scores   - View recorded results and statistics
  serve    - Start SSH server for remote play

Examples:
  twenty48 play
  twenty48 play classic
  twenty48 play mini --difficulty easy
  twenty48 scores classic
  twenty48 serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.twenty48/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
