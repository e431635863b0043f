package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/twenty48/internal/config"
	"github.com/vovakirdan/twenty48/internal/platform/tui"
	"github.com/vovakirdan/twenty48/internal/storage"
	"github.com/vovakirdan/twenty48/internal/variant"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSize       int
	flagUndoDepth  int
	flagWinTile    int
	flagFourProb   float64
	flagSettleMS   int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start a game of the given variant. Without an argument an
interactive picker opens, and finished games return to it.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U                - Undo last move
  R                - Restart
  Ctrl+S           - Save screenshot
  B/Esc            - Back to picker
  Q/Ctrl+C         - Quit

Difficulty presets:
  easy   - More undo slots, fewer 4-spawns
  normal - Classic odds
  hard   - Fewer undo slots, more 4-spawns
  fixed  - Play the variant exactly as configured

Examples:
  twenty48 play
  twenty48 play classic
  twenty48 play large --difficulty hard
  twenty48 play classic --size 5 --win-tile 4096
  twenty48 play classic --undo-depth 0
  twenty48 play classic --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Override board side length")
	playCmd.Flags().IntVar(&flagUndoDepth, "undo-depth", 0, "Override undo history depth (0 disables undo)")
	playCmd.Flags().IntVar(&flagWinTile, "win-tile", 0, "Override the winning tile value")
	playCmd.Flags().Float64Var(&flagFourProb, "four-prob", 0, "Override the probability of spawning a 4")
	playCmd.Flags().IntVar(&flagSettleMS, "settle-ms", 0, "Override the settle pause before a spawn, in milliseconds")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterVariants()

	difficulty := flagDifficulty
	if difficulty == "" {
		difficulty = cfg.Game.Difficulty
	}
	if difficulty != "" && !config.ValidPreset(difficulty) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (easy, normal, hard, fixed)\n", difficulty)
		os.Exit(1)
	}

	// buildVariant resolves an ID and layers the preset and flag
	// overrides on top of it.
	buildVariant := func(id string) (variant.Variant, error) {
		def, defErr := variant.Get(id)
		if defErr != nil {
			return def, defErr
		}

		config.ApplyDifficulty(&def, config.DifficultyPreset(difficulty))

		if cmd.Flags().Changed("size") {
			def.Size = flagSize
		}
		if cmd.Flags().Changed("undo-depth") {
			def.UndoDepth = flagUndoDepth
		}
		if cmd.Flags().Changed("win-tile") {
			def.WinTile = flagWinTile
		}
		if cmd.Flags().Changed("four-prob") {
			def.FourProb = flagFourProb
		}
		return def, nil
	}

	// Get terminal size early; the UI handles live resizes itself
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	settleMS := cfg.UI.SettleDelayMS
	if cmd.Flags().Changed("settle-ms") {
		settleMS = flagSettleMS
	}

	opts := tui.GameOptions{
		Width:       width,
		Height:      height,
		Seed:        flagSeed,
		SettleDelay: time.Duration(settleMS) * time.Millisecond,
		ShowHints:   cfg.UI.ShowHints,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	// Direct mode: play one variant and exit
	if len(args) == 1 {
		def, buildErr := buildVariant(args[0])
		if buildErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", buildErr)
			fmt.Fprintln(os.Stderr, "Run 'twenty48 list' to see available variants.")
			os.Exit(1)
		}

		if _, runErr := tui.RunGame(def, store, opts); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	// Picker mode: pick, play, return to the picker
	for {
		result, pickErr := tui.RunPicker(store, width, height, cfg.Game.Variant)
		if pickErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", pickErr)
			break
		}

		if result.Quit {
			break
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, width, height)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to picker
			}
			break // User quit from scoreboard
		}

		if result.VariantID == "" {
			break
		}

		def, buildErr := buildVariant(result.VariantID)
		if buildErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", buildErr)
			continue
		}

		goBack, runErr := tui.RunGame(def, store, opts)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			break
		}
		if !goBack {
			break // Q quits entirely; Esc returns to the picker
		}
	}
}
