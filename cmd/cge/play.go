package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cge/internal/registry"
)

var playFlags playOptions

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game in the terminal.

Controls:
  Arrows     - Move (pong: Up/Down, retrocar: Up to accelerate, Left/Right to steer)
  Space      - Move the pixel (pixel)
  Esc        - Quit

Terminals report key presses but not releases, so a key counts as held
while it auto-repeats; tune hold_window in the config if movement stutters.

Examples:
  cge play pong
  cge play pong --difficulty hard
  cge play retrocar --backend tcell
  cge play pixel --width 80 --height 40
  cge play pong --headless --frames 300 --log ./pong.log`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playFlags.Width, "width", 0, "Surface width in cells (0 = game default)")
	playCmd.Flags().IntVar(&playFlags.Height, "height", 0, "Surface height in cells (0 = game default)")
	playCmd.Flags().BoolVar(&playFlags.Headless, "headless", false, "Run on the in-memory device without a terminal")
	playCmd.Flags().IntVar(&playFlags.Frames, "frames", 600, "Frames to run before quitting when headless (0 = until the game ends)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return unknownGame(gameID)
	}

	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.play(gameID, playFlags)
}
