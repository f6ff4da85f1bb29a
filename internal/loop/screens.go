package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/game"
	"github.com/tomz197/skyraid/internal/object"
)

// entityColors maps each kind to its draw color.
var entityColors = map[object.Kind]draw.Color{
	object.KindPlayer:        draw.ColorCyan,
	object.KindPlayerBullet:  draw.ColorYellow,
	object.KindStraightEnemy: draw.ColorBlue,
	object.KindPathEnemy:     draw.ColorGreen,
	object.KindEnemyBullet:   draw.ColorRed,
	object.KindHealthPip:     draw.ColorRed,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	c.state.frames++

	// On screen or inactivity transitions, do a full terminal clear so text
	// from the previous screen doesn't persist.
	screen := screenFor(c.game.Phase())
	if screen != c.state.prevScreen || c.state.isInactive != c.state.wasInactive {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
		c.state.prevScreen = screen
		c.state.wasInactive = c.state.isInactive
		c.state.borderDirty = true
	}

	c.canvas.Clear()
	if screen == ScreenPlaying && !c.state.isInactive {
		c.drawWorld()
	}
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	if c.state.borderDirty {
		if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
			return err
		}
		c.state.borderDirty = false
	}

	c.drawUI(screen)
	return c.chunkWriter.Flush()
}

// drawWorld draws every live entity and the player ship.
func (c *Client) drawWorld() {
	reg := c.game.Registry()

	for _, kind := range []object.Kind{object.KindHealthPip, object.KindEnemyBullet, object.KindPlayerBullet} {
		c.canvas.SetColor(entityColors[kind])
		for e := range reg.All(kind) {
			c.canvas.FillRect(e.X, e.Y, e.Width, e.Height)
		}
	}
	for _, kind := range []object.Kind{object.KindStraightEnemy, object.KindPathEnemy} {
		c.canvas.SetColor(entityColors[kind])
		for e := range reg.All(kind) {
			c.canvas.DrawShip(e.X, e.Y, e.Width, e.Heading)
		}
	}

	p := c.game.Player()
	c.canvas.SetColor(entityColors[object.KindPlayer])
	c.canvas.DrawShip(p.X, p.Y, p.Width, p.Heading)
}

// writeText writes an overlay and marks its cells so the canvas repaints
// them next frame.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// writeCentered writes s centered on col.
func (c *Client) writeCentered(col, row int, s string) {
	c.writeText(col-len([]rune(s))/2, row, s)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(screen Screen) {
	centerX := c.canvas.TerminalWidth()/2 + 1
	centerY := c.canvas.TerminalHeight()/2 + 1

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch screen {
	case ScreenTitle:
		c.drawTitleScreen(centerX, centerY)
	case ScreenPlaying:
		c.drawPlayingHUD(centerX, centerY)
	case ScreenOver:
		c.drawEndScreen(centerX, centerY)
	}
}

// drawTitleScreen draws the title screen.
func (c *Client) drawTitleScreen(centerX, centerY int) {
	titleArt := []string{
		` ___ _  ___   _____ ___   _   ___ ___  `,
		`/ __| |/ / \ / / _ \ _ \ /_\ |_ _|   \ `,
		`\__ \ ' < \ V /|   /   // _ \ | || |) |`,
		`|___/_|\_\ |_| |_|_\_|_/_/ \_\___|___/ `,
	}
	titleWidth := len(titleArt[0])
	titleStartY := centerY - 7
	for i, line := range titleArt {
		c.writeText(centerX-titleWidth/2, titleStartY+i, line)
	}

	controlsY := titleStartY + len(titleArt) + 2
	controlLines := []string{
		"A D / < >  . . . . Move",
		"SPACE  . . . . . . Fire",
		"R  . . . . . . .  Retry",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+i, line)
	}

	prompt := ">>  Press SPACE to Start  <<"
	if c.state.blinkOn() {
		c.writeCentered(centerX, controlsY+len(controlLines)+2, prompt)
	} else {
		c.writeCentered(centerX, controlsY+len(controlLines)+2, blank(prompt))
	}
}

// drawPlayingHUD draws the in-game HUD. Fields are fixed width so shrinking
// values don't leave residual characters.
func (c *Client) drawPlayingHUD(centerX, centerY int) {
	s := c.game.Session()
	termWidth := c.canvas.TerminalWidth()

	hud := fmt.Sprintf("Wave %d/%d   Score: %-6d", s.Wave, game.MaxWaves, s.Score)
	c.writeText(termWidth-len(hud), 1, hud)

	if c.game.Phase() == game.PhaseWaveClear {
		c.writeCentered(centerX, centerY, fmt.Sprintf("WAVE %d CLEARED", s.Wave))
	}
}

// drawEndScreen draws the victory or defeat screen.
func (c *Client) drawEndScreen(centerX, centerY int) {
	s := c.game.Session()

	title := "GAME OVER"
	if s.Outcome == game.OutcomeWon {
		title = "YOU WIN!"
	}
	c.writeCentered(centerX, centerY-3, title)
	c.writeCentered(centerX, centerY-1, fmt.Sprintf("Final score: %d", s.Score))
	c.writeCentered(centerX, centerY, fmt.Sprintf("Waves reached: %d/%d", s.Wave, game.MaxWaves))

	prompt := ">>  Press R to Retry  <<"
	if c.state.blinkOn() {
		c.writeCentered(centerX, centerY+2, prompt)
	} else {
		c.writeCentered(centerX, centerY+2, blank(prompt))
	}
	c.writeCentered(centerX, centerY+4, "Q to quit")
}

// drawInactivityScreen draws the idle disconnect warning.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	remaining := c.idleTimeout - time.Since(c.lastInput)
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	c.writeCentered(centerX, centerY, fmt.Sprintf("Disconnecting in %2d seconds", int(remaining.Seconds())))
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

func blank(s string) string {
	return fmt.Sprintf("%*s", len([]rune(s)), "")
}
