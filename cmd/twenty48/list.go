package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twenty48/internal/config"
	"github.com/vovakirdan/twenty48/internal/variant"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered variant, including ones added in the config file.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	// Pick up user-defined variants from the config file
	if cfg, err := config.Load(""); err == nil {
		cfg.RegisterVariants()
	}

	defs := variant.List()

	if len(defs) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, v := range defs {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
		if len(v.Title) > maxTitleLen {
			maxTitleLen = len(v.Title)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %-6s  %-6s  %-5s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Board", "Goal", "Undo", "4s")
	fmt.Printf("  %-*s  %-*s  %-6s  %-6s  %-5s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----", "----", "----", "--")

	// Print variants
	for _, v := range defs {
		undo := strconv.Itoa(v.UndoDepth)
		if v.UndoDepth == 0 {
			undo = "off"
		}
		board := fmt.Sprintf("%dx%d", v.Size, v.Size)
		fmt.Printf("  %-*s  %-*s  %-6s  %-6d  %-5s  %.0f%%\n",
			maxIDLen, v.ID, maxTitleLen, v.Title, board, v.WinTile, undo, v.FourProb*100)
	}

	fmt.Println()
	fmt.Println("Run 'twenty48 play <id>' to play a variant.")
}
