// Package loop runs one game session in a terminal: it reads key presses,
// advances the game one tick per frame and renders the result.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/game"
	"github.com/tomz197/skyraid/internal/input"
)

// Options configures a Client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Sound        game.Sound        // Defaults to silence
	Logger       *log.Logger       // Defaults to a discarding logger
	Seed         int64             // Spawn seed; 0 seeds from the clock
	SessionID    string            // Tags log lines; generated when empty
	IdleTimeout  time.Duration     // Disconnect after this long without input; 0 disables
}

// Client handles input, simulation and rendering for a single terminal.
type Client struct {
	game         *game.Game
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	idleTimeout  time.Duration
	lastInput    time.Time
	log          *log.Logger
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	logger = logger.With("session", id)

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitTerm(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, game.PlayAreaWidth, game.PlayAreaHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		game: game.New(game.Options{
			Sound:  opts.Sound,
			Logger: logger,
			Seed:   opts.Seed,
		}),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		idleTimeout:  opts.IdleTimeout,
		lastInput:    time.Now(),
		log:          logger,
	}
}

// Run starts the frame loop. It blocks until the player quits, the input
// ends, the client idles out or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewClient(r, w, opts).Run(ctx)
}

// Run starts the client loop.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	c.log.Info("client started")

	for c.state.Running && ctx.Err() == nil {
		frameStart := time.Now()

		if err := c.step(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	s := c.game.Session()
	c.log.Info("client stopped", "score", s.Score, "wave", s.Wave, "phase", c.game.Phase().String())
	return nil
}

// step runs one frame.
func (c *Client) step() error {
	c.processInput()
	c.updateScreen()
	c.update()
	return c.drawFrame()
}

// processInput reads the frame's keys and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput)
	switch {
	case c.state.Input.Any():
		c.lastInput = time.Now()
		c.state.isInactive = false
	case c.idleTimeout > 0 && idle > c.idleTimeout:
		c.log.Info("disconnecting idle client")
		c.state.Running = false
	case c.idleTimeout > 0 && idle > c.idleTimeout-c.idleTimeout/inactivityWarnFraction:
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize. On size changes the terminal is
// cleared to remove residue outside the new render area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitTerm(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
		c.state.borderDirty = true
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitTerm keeps the play area's aspect ratio inside the terminal.
func fitTerm(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	return draw.FitArea(termWidth, termHeight, game.PlayAreaWidth, game.PlayAreaHeight, MaxTermWidth, MaxTermHeight)
}

// update advances the game for the current screen.
func (c *Client) update() {
	in := c.state.Input

	switch screenFor(c.game.Phase()) {
	case ScreenTitle:
		if in.Start {
			input.ResetKeyInput(c.inputStream)
			c.game.Start()
		}
	case ScreenOver:
		if in.Retry {
			input.ResetKeyInput(c.inputStream)
		}
		c.game.Update(game.Controls{Retry: in.Retry})
	case ScreenPlaying:
		c.game.Update(game.Controls{
			Left:  in.Left,
			Right: in.Right,
			Fire:  in.Fire,
		})
	}
}
