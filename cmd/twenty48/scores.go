package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twenty48/internal/config"
	"github.com/vovakirdan/twenty48/internal/storage"
	"github.com/vovakirdan/twenty48/internal/variant"
)

var (
	flagScoresAll    bool
	flagScoresClear  bool
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show recorded results",
	Long: `Display the top 10 results for a variant, or a per-variant
summary when no variant is given.

Examples:
  twenty48 scores
  twenty48 scores classic
  twenty48 scores --all
  twenty48 scores --recent
  twenty48 scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show the summary for every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded results for the variant")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest games across all variants")
}

func runScores(cmd *cobra.Command, args []string) {
	// Pick up user-defined variants from the config file
	if cfg, err := config.Load(""); err == nil {
		cfg.RegisterVariants()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a variant, e.g. 'twenty48 scores classic --clear'")
			os.Exit(1)
		}
		if clearErr := store.ClearScores(args[0]); clearErr != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", clearErr)
			os.Exit(1)
		}
		fmt.Printf("Cleared all results for %q.\n", args[0])
		return
	}

	if flagScoresRecent {
		printRecentScores(store)
		return
	}

	if len(args) == 0 || flagScoresAll {
		printAllStats(store)
		return
	}

	printVariantScores(store, args[0])
}

// printAllStats shows one summary row per played variant.
func printAllStats(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'twenty48 play' to set the first high score!")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("Results by variant:")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-8s  %-8s  %-5s  %-9s  %s\n", "Variant", "Plays", "Best", "Avg", "Wins", "Best Tile", "Last Played")
	fmt.Printf("  %-10s  %-6s  %-8s  %-8s  %-5s  %-9s  %s\n", "-------", "-----", "----", "---", "----", "---------", "-----------")

	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-10s  %-6d  %-8d  %-8.0f  %-5d  %-9d  %s\n",
			id, s.Plays, s.HighScore, s.AvgScore, s.Wins, s.BestTile,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'twenty48 scores <variant>' for the full list.")
}

// printRecentScores shows the latest finished games regardless of variant.
func printRecentScores(store *storage.Store) {
	scores, err := store.RecentScores(15)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Println("Recently played:")
	fmt.Println()
	fmt.Printf("  %-10s  %-8s  %-6s  %-6s  %-4s  %s\n", "Variant", "Score", "Moves", "Tile", "Won", "Date")
	fmt.Printf("  %-10s  %-8s  %-6s  %-6s  %-4s  %s\n", "-------", "-----", "-----", "----", "---", "----")

	for _, entry := range scores {
		won := ""
		if entry.Won {
			won = "yes"
		}
		fmt.Printf("  %-10s  %-8d  %-6d  %-6d  %-4s  %s\n",
			entry.VariantID, entry.Score, entry.Moves, entry.MaxTile, won,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// printVariantScores shows the top results for one variant.
func printVariantScores(store *storage.Store, variantID string) {
	if !variant.Exists(variantID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variantID)
		fmt.Fprintln(os.Stderr, "Run 'twenty48 list' to see available variants.")
		os.Exit(1)
	}

	def, err := variant.Get(variantID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(variantID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", def.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'twenty48 play %s' to set the first high score!\n", variantID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-4s  %s\n", "Rank", "Score", "Moves", "Tile", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-4s  %s\n", "----", "-----", "-----", "----", "---", "----")

	// Print scores
	for i, entry := range scores {
		won := ""
		if entry.Won {
			won = "yes"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-4s  %s\n",
			i+1, entry.Score, entry.Moves, entry.MaxTile, won, dateStr)
	}

	// Aggregate footer
	if stats, statsErr := store.Stats(variantID); statsErr == nil && stats.Plays > 0 {
		fmt.Println()
		fmt.Printf("Plays: %d | Wins: %d | Average score: %.0f\n", stats.Plays, stats.Wins, stats.AvgScore)
	}
}
