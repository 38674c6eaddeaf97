package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/menu"
	"github.com/tomz197/invaders/internal/object"
)

// screen identifies what is shown; a change clears the terminal.
type screen int

const (
	screenNone screen = iota
	screenMenu
	screenPlaying
	screenPaused
	screenGameOver
	screenInactive
	screenShutdown
)

var titleArt = []string{
	` ___ _  ___   ___   ___  ___ ___  ___ `,
	`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
	` | || .' |\ V / _ \| |) | _||   /\__ \`,
	`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
}

var gameOverArt = []string{
	`  ___   _   __  __ ___    _____   _____ ___ `,
	` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \`,
	`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   /`,
	` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\`,
}

func (s *Session) currentScreen() screen {
	switch {
	case s.shuttingDown:
		return screenShutdown
	case s.inactive:
		return screenInactive
	}
	switch s.game.Phase() {
	case game.PhasePlaying:
		return screenPlaying
	case game.PhasePaused:
		return screenPaused
	case game.PhaseGameOver:
		return screenGameOver
	default:
		return screenMenu
	}
}

// drawFrame draws the playfield and the overlay for the current screen.
func (s *Session) drawFrame(now time.Time) error {
	current := s.currentScreen()
	if current != s.prevScreen {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevScreen = current
	}

	s.canvas.Clear()
	if s.game.Phase() != game.PhaseMenu {
		ctx := object.DrawContext{Canvas: s.canvas}
		for _, obj := range s.game.Objects() {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
		for _, p := range s.particles {
			if err := p.Draw(ctx); err != nil {
				return err
			}
		}
	}

	if err := s.canvas.Render(s.cw); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(s.cw); err != nil {
		return err
	}

	s.drawUI(current, now)
	return s.cw.Flush()
}

func (s *Session) drawUI(current screen, now time.Time) {
	switch current {
	case screenShutdown:
		s.drawShutdownScreen()
	case screenInactive:
		s.drawInactivityScreen(now)
	case screenMenu:
		s.drawMenuScreen(now)
	case screenPlaying:
		s.drawHUD()
	case screenPaused:
		s.drawHUD()
		s.drawPausedPanel()
	case screenGameOver:
		s.drawGameOverScreen(now)
	}
}

// text writes str at a 1-based canvas position and marks the cells so the
// canvas repaints them once the text is gone.
func (s *Session) text(col, row int, str string) {
	s.cw.WriteAt(col, row, str)
	s.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(str))
}

func (s *Session) colored(col, row int, color, str string) {
	s.cw.WriteAt(col, row, color+str+draw.ColorReset)
	s.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(str))
}

func (s *Session) centerCol(str string) int {
	return (s.canvas.TerminalWidth()-utf8.RuneCountInString(str))/2 + 1
}

func (s *Session) centered(row int, str string) {
	s.text(s.centerCol(str), row, str)
}

func (s *Session) centeredColor(row int, color, str string) {
	s.colored(s.centerCol(str), row, color, str)
}

func (s *Session) drawArt(top int, color string, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	col := (s.canvas.TerminalWidth()-width)/2 + 1
	for i, line := range art {
		s.colored(col, top+i, color, line)
	}
}

func blink(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// padField pads or clips r to n cells.
func padField(r []rune, n int) string {
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + strings.Repeat(" ", n-len(r))
}

func (s *Session) drawMenuScreen(now time.Time) {
	centerY := s.canvas.TerminalHeight() / 2
	top := centerY - 8

	s.drawArt(top, draw.ColorSalmon, titleArt)
	s.centeredColor(top+len(titleArt)+1, draw.ColorBold, "~ Hold the line until the clock runs out ~")

	fieldsY := top + len(titleArt) + 3
	fields := []struct {
		label string
		value []rune
		limit int
		field menu.Field
	}{
		{"Name ", s.menu.Name(), config.MaxNameLength, menu.FieldName},
		{"Level", s.menu.Level(), config.MaxLevelLength, menu.FieldLevel},
	}
	for i, f := range fields {
		marker, cursor := "  ", " "
		if s.menu.Focus() == f.field {
			marker = "> "
			if blink(now) {
				cursor = "_"
			}
		}
		value := []rune(padField(f.value, f.limit))
		if len(f.value) < f.limit {
			value[len(f.value)] = []rune(cursor)[0]
		}
		line := fmt.Sprintf("%s%s [%s]", marker, f.label, string(value))
		s.centered(fieldsY+i*2, line)
	}

	errY := fieldsY + 4
	blank := strings.Repeat(" ", 30)
	s.centered(errY, blank)
	if msg := s.menu.Err(); msg != "" {
		s.centeredColor(errY, draw.ColorRed, msg)
	}

	controls := []string{
		"TAB / Up / Down .  Switch field",
		"ENTER  . . . . . . . . . Start",
		"A D / < >  . . . . . . . . Move",
		"SPACE  . . . . . . . . . . Fire",
		"ESC / P  . . . . . . . .  Pause",
		"Q / Ctrl+C . . . . . . . . Quit",
	}
	for i, line := range controls {
		s.centered(errY+2+i, line)
	}
}

// drawHUD draws the score and clock. Fields are fixed width so shrinking
// values leave no residue.
func (s *Session) drawHUD() {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()

	s.colored(2, 1, draw.ColorBrightCyan, fmt.Sprintf("Score: %-6d", s.game.Score()))

	clock := "Time: " + s.game.Clock()
	s.text(termWidth-len(clock), 1, clock)

	pilot := fmt.Sprintf("Pilot: %s", s.game.Player())
	if level := s.game.Level(); level != "" {
		pilot += "  Level: " + level
	}
	s.text(2, termHeight, pilot)

	hint := "ESC pause  Q quit"
	s.text(termWidth-len(hint), termHeight, hint)
}

func (s *Session) drawPausedPanel() {
	centerY := s.canvas.TerminalHeight() / 2
	lines := []string{
		"+------------------------+",
		"|         PAUSED         |",
		"|                        |",
		"|   ESC or P to resume   |",
		"|       Q to quit        |",
		"+------------------------+",
	}
	for i, line := range lines {
		s.centered(centerY-3+i, line)
	}
}

func (s *Session) drawGameOverScreen(now time.Time) {
	centerY := s.canvas.TerminalHeight() / 2
	top := centerY - 6

	s.drawArt(top, draw.ColorRed, gameOverArt)

	reason := "Time is up!"
	if s.game.Reason() == game.ReasonCollision {
		reason = "An invader crashed into your ship"
	}
	y := top + len(gameOverArt) + 1
	s.centered(y, reason)
	s.centeredColor(y+2, draw.ColorYellow, fmt.Sprintf("Final score: %d", s.game.Score()))
	s.centered(y+3, "Time: "+s.game.Clock())

	prompt := ">>  Press ENTER or SPACE to play again  <<"
	if blink(now) && now.Sub(s.overAt) >= restartDelay {
		s.centered(y+5, prompt)
	} else {
		s.centered(y+5, strings.Repeat(" ", len(prompt)))
	}
	s.centered(y+6, "Q to quit")
}

func (s *Session) drawInactivityScreen(now time.Time) {
	centerY := s.canvas.TerminalHeight() / 2
	s.centeredColor(centerY-2, draw.ColorYellow, "INACTIVITY WARNING")

	left := int(config.InactivityDisconnectUser - now.Sub(s.lastInput).Seconds())
	s.centered(centerY, fmt.Sprintf("You will be disconnected in %3d seconds.", max(left, 0)))
	s.centered(centerY+2, "Press any key to continue")
}

func (s *Session) drawShutdownScreen() {
	centerY := s.canvas.TerminalHeight() / 2
	s.centeredColor(centerY-3, draw.ColorRed, "SERVER SHUTTING DOWN")
	s.centered(centerY-1, "The server is restarting for maintenance.")
	s.centered(centerY, "Please reconnect in a moment.")
	s.centered(centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", int(s.shutdownLeft)+1))
	s.centered(centerY+4, "Press Q to disconnect now")
}
