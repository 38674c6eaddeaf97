package desktop

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/menu"
	"github.com/tomz197/invaders/internal/physics"
)

var face text.Face = text.NewGoXFace(basicfont.Face7x13)

const lineHeight = 16

// Draw renders the playfield, then the HUD or the screen for the phase.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	snap := g.game.Snapshot()
	if snap.Phase != game.PhaseMenu {
		g.drawEntities(screen, snap)
	}

	switch snap.Phase {
	case game.PhaseMenu:
		g.drawMenu(screen)
	case game.PhasePlaying:
		g.drawHUD(screen, snap)
	case game.PhasePaused:
		g.drawHUD(screen, snap)
		g.drawPanel(screen, []string{"PAUSED", "", "ESC or P to resume"})
	case game.PhaseGameOver:
		g.drawGameOver(screen, snap)
	}
}

func fillRect(screen *ebiten.Image, r physics.Rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (g *Game) drawEntities(screen *ebiten.Image, snap game.Snapshot) {
	for _, e := range snap.Enemies {
		fillRect(screen, e, colornames.Red)
		// Eyes
		vector.DrawFilledRect(screen, float32(e.X+12), float32(e.Y+15), 6, 6, colornames.White, false)
		vector.DrawFilledRect(screen, float32(e.X+32), float32(e.Y+15), 6, 6, colornames.White, false)
	}

	ship := snap.Ship
	fillRect(screen, physics.Rect{X: ship.X, Y: ship.Y + ship.H/2, W: ship.W, H: ship.H / 2}, colornames.Salmon)
	fillRect(screen, physics.Rect{X: ship.X + ship.W/2 - 5, Y: ship.Y, W: 10, H: ship.H / 2}, colornames.Salmon)

	for _, b := range snap.Bullets {
		fillRect(screen, b, colornames.Yellow)
	}

	for _, p := range g.particles {
		c := fade(colornames.Orange, p.Intensity())
		vector.DrawFilledRect(screen, float32(p.X-2), float32(p.Y-2), 4, 4, c, false)
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, y float64, c color.Color) {
	w, _ := text.Measure(s, face, lineHeight)
	sw, _ := g.WindowSize()
	drawText(screen, s, (float64(sw)-w)/2, y, c)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	sw, sh := g.WindowSize()
	drawText(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 8, colornames.White)

	clock := "Time: " + snap.Clock
	w, _ := text.Measure(clock, face, lineHeight)
	drawText(screen, clock, float64(sw)-w-10, 8, colornames.White)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Pilot: %s  Level: %s", snap.Player, snap.Level), 10, sh-20)
}

func (g *Game) drawPanel(screen *ebiten.Image, lines []string) {
	sw, sh := g.WindowSize()
	h := float64(len(lines)*lineHeight + 30)
	w := 260.0
	x := (float64(sw) - w) / 2
	y := (float64(sh) - h) / 2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), color.RGBA{A: 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, colornames.White, false)
	for i, line := range lines {
		g.drawCentered(screen, line, y+15+float64(i*lineHeight), colornames.White)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	_, sh := g.WindowSize()
	y := float64(sh)/2 - 110

	g.drawCentered(screen, "I N V A D E R S", y, colornames.Salmon)
	g.drawCentered(screen, "Hold the line until the clock runs out", y+24, colornames.Lightgray)

	fields := []struct {
		label string
		value []rune
		field menu.Field
	}{
		{"Name ", g.form.Name(), menu.FieldName},
		{"Level", g.form.Level(), menu.FieldLevel},
	}
	for i, f := range fields {
		marker, cursor := "  ", ""
		c := colornames.Gray
		if g.form.Focus() == f.field {
			marker, c = "> ", colornames.White
			if time.Now().UnixMilli()/500%2 == 0 {
				cursor = "_"
			}
		}
		line := fmt.Sprintf("%s%s: %-18s", marker, f.label, string(f.value)+cursor)
		g.drawCentered(screen, line, y+70+float64(i*24), c)
	}

	if msg := g.form.Err(); msg != "" {
		g.drawCentered(screen, msg, y+130, colornames.Red)
	}

	help := []string{
		"TAB switch field   ENTER start",
		"A D / arrows move   SPACE fire",
		"ESC / P pause   Q quit",
	}
	g.drawCentered(screen, strings.Repeat("-", 30), y+160, colornames.Gray)
	for i, line := range help {
		g.drawCentered(screen, line, y+180+float64(i*lineHeight), colornames.Lightgray)
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image, snap game.Snapshot) {
	reason := "Time is up!"
	if snap.Reason == game.ReasonCollision {
		reason = "An invader crashed into your ship"
	}
	lines := []string{
		"GAME OVER",
		"",
		reason,
		fmt.Sprintf("Final score: %d", snap.Score),
		"Time: " + snap.Clock,
		"",
	}
	if time.Since(g.overAt) >= restartDelay {
		lines = append(lines, "ENTER or SPACE to play again")
	} else {
		lines = append(lines, "")
	}
	g.drawPanel(screen, lines)
}
