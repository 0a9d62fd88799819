package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cge/internal/platform/tui"
)

var flagMono bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start cge with a game picker menu",
	Long: `Start cge in interactive menu mode.

The menu shows a live preview of the game under the cursor and its best
record. After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play game
  Tab          - Records board
  Q/Esc        - Quit

Examples:
  cge menu
  cge menu --mono
  cge menu --backend tcell --db ./records.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMono, "mono", false, "Use the monochrome menu theme")
}

func runMenu(_ *cobra.Command, _ []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	theme := tui.DefaultTheme()
	if flagMono {
		theme = tui.MonochromeTheme()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return s.menuLoop(&teaScreens{records: s.records(), theme: theme, width: width, height: height})
}

// menuScreens shows the two Bubble Tea screens of the menu loop.
type menuScreens interface {
	Menu() (tui.MenuResult, error)
	Scoreboard() (goBack bool, err error)
}

// teaScreens runs the real screens, carrying the terminal size between them.
type teaScreens struct {
	records       tui.RecordSource
	theme         tui.Theme
	width, height int
}

func (t *teaScreens) Menu() (tui.MenuResult, error) {
	result, err := tui.RunMenu(t.records, t.theme, t.width, t.height)
	if err == nil {
		t.width, t.height = result.Width, result.Height
	}
	return result, err
}

func (t *teaScreens) Scoreboard() (bool, error) {
	return tui.RunScoreboard(t.records, t.theme, t.width, t.height)
}

// menuLoop alternates between the menu and the chosen game until the user
// quits. A game that fails ends the loop with its error.
func (s *session) menuLoop(screens menuScreens) error {
	for {
		result, err := screens.Menu()
		if err != nil {
			return err
		}

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := screens.Scoreboard()
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil
		}

		if result.GameID == "" {
			return nil
		}

		if err := s.play(result.GameID, playOptions{}); err != nil {
			s.logger.Error("game failed", "game", result.GameID, "error", err)
			return fmt.Errorf("%s: %w", result.GameID, err)
		}
	}
}
