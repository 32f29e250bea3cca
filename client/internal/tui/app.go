// Package tui is the terminal frontend: the same radar session drawn into
// terminal cells, with mouse taps and keyboard commands.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"airspace/client/internal/log"
	"airspace/client/internal/radar"
	"airspace/shared/protocol"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
)

const (
	frameRate    = 30
	panelCols    = 32
	pulseFrames  = 15
	statusFrames = 60
)

var (
	styleBase     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHeader   = styleBase.Foreground(tcell.ColorAqua).Bold(true)
	styleDim      = styleBase.Foreground(tcell.ColorGray)
	stylePulse    = styleBase.Foreground(tcell.ColorGold).Bold(true)
	styleButton   = styleBase.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite).Bold(true)
	styleOK       = styleBase.Foreground(tcell.ColorGreen)
	styleWarn     = styleBase.Foreground(tcell.ColorRed)
	styleOverlay  = styleBase.Background(tcell.ColorDarkSlateGray)
	styleGameOver = styleOverlay.Foreground(tcell.ColorRed).Bold(true)
)

// button is a clickable label on a single row.
type button struct {
	x, y  int
	label string
}

func (b button) hit(x, y int) bool {
	return y == b.y && x >= b.x && x < b.x+len(b.label)
}

type App struct {
	screen tcell.Screen
	loop   *radar.Loop
	lg     *log.Logger
	canvas *cellCanvas

	w, h       int
	view       radar.Viewport // radar area, in cells
	clearBtn   button
	restartBtn button
	copyBtn    button
	mouseDown  bool

	scorePulse  radar.Pulse
	levelPulse  radar.Pulse
	summary     string
	status      string
	statusTicks int
	quit        bool
}

// New wires a session and reconciliation loop against remote. The screen
// must already be initialized.
func New(ctx context.Context, screen tcell.Screen, remote radar.Remote, period time.Duration, lg *log.Logger) *App {
	a := &App{
		screen: screen,
		lg:     lg,
		loop:   radar.NewLoop(ctx, remote, radar.NewSession(), period, lg),
		canvas: newCellCanvas(protocol.ScreenW, protocol.ScreenH, 1, 1),
	}
	a.resize()
	return a
}

func (a *App) Loop() *radar.Loop { return a.loop }

// Run drives input and frames until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.HideCursor()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	a.frame(time.Now())
	for !a.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			a.handleEvent(ev)
		case now := <-ticker.C:
			a.frame(now)
		}
	}
	return nil
}

func (a *App) resize() {
	a.w, a.h = a.screen.Size()
	rw, rh := max(a.w-panelCols, 1), max(a.h-1, 1)
	a.view = radar.Viewport{Left: 0, Top: 1, Width: float64(rw), Height: float64(rh)}
	a.canvas.resize(rw, rh)

	a.clearBtn = button{x: rw + 2, y: 6, label: "[ Clear (c) ]"}
	cy := 1 + rh/2
	a.restartBtn = button{x: max(rw/2-16, 0), y: cy + 2, label: "[ Restart (r) ]"}
	a.copyBtn = button{x: a.restartBtn.x + len(a.restartBtn.label) + 2, y: cy + 2, label: "[ Copy (y) ]"}
}

func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.mouseDown {
			x, y := ev.Position()
			a.handleClick(x, y)
		}
		a.mouseDown = down
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	over := a.loop.Session().GameOver
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		a.quit = true
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch ev.Rune() {
	case 'q':
		a.quit = true
	case 'c':
		if !over {
			a.loop.Clear()
		}
	case 'n':
		if !over {
			a.loop.CreateAircraft(radar.Point{X: protocol.DefaultSpawnX, Y: protocol.DefaultSpawnY})
		}
	case 'r':
		if over {
			a.loop.Reset()
		}
	case 'y':
		if over {
			a.copySummary()
		}
	}
}

// handleClick routes a press on cell (x, y). The game-over overlay blocks
// the radar and the panel.
func (a *App) handleClick(x, y int) {
	if a.loop.Session().GameOver {
		switch {
		case a.restartBtn.hit(x, y):
			a.loop.Reset()
		case a.copyBtn.hit(x, y):
			a.copySummary()
		}
		return
	}
	if a.clearBtn.hit(x, y) {
		a.loop.Clear()
		return
	}
	// Aim at the cell center.
	ev := radar.PointerEvent{ClientX: float64(x) + 0.5, ClientY: float64(y) + 0.5}
	if a.view.Contains(ev.ClientX, ev.ClientY) {
		a.loop.Tap(radar.MapPointer(ev, a.view, protocol.ScreenW, protocol.ScreenH))
	}
}

func (a *App) copySummary() {
	if a.summary == "" {
		return
	}
	if err := clipboard.WriteAll(protocol.GameName + ": " + a.summary); err != nil {
		a.lg.Warn("Clipboard copy failed", slog.Any("error", err))
		a.setStatus("Copy failed")
		return
	}
	a.setStatus("Copied to clipboard")
}

func (a *App) setStatus(s string) {
	a.status, a.statusTicks = s, statusFrames
}

func (a *App) frame(now time.Time) {
	a.loop.Update(now)
	for _, ev := range a.loop.Events() {
		switch ev.Kind {
		case radar.EventScorePulse:
			a.scorePulse.Trigger(pulseFrames)
		case radar.EventLevelUp:
			a.levelPulse.Trigger(pulseFrames)
			a.setStatus(fmt.Sprintf("Level %d!", ev.Level))
		case radar.EventGameOver:
			a.summary = a.loop.Session().GameOverSummary()
		case radar.EventReset:
			a.summary = ""
			a.setStatus("New game")
		case radar.EventCleared:
			a.setStatus("Airspace cleared")
		}
	}
	a.draw()
	a.scorePulse.Step()
	a.levelPulse.Step()
	if a.statusTicks > 0 {
		a.statusTicks--
	}
	a.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func (a *App) fillRow(y, x0, x1 int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		a.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (a *App) draw() {
	s := a.loop.Session()

	a.fillRow(0, 0, a.w, styleBase)
	drawText(a.screen, 1, 0, protocol.GameName, styleHeader)
	if a.statusTicks > 0 {
		drawText(a.screen, len(protocol.GameName)+3, 0, a.status, styleDim)
	}

	radar.Render(a.canvas, s)
	a.canvas.blit(a.screen, 0, 1)

	a.drawPanel(s)
	if s.GameOver {
		a.drawGameOver()
	}
}

func (a *App) drawPanel(s *radar.Session) {
	px := int(a.view.Width)
	for y := 1; y < a.h; y++ {
		a.fillRow(y, px, a.w, styleBase)
		a.screen.SetContent(px, y, tcell.RuneVLine, nil, styleDim)
	}

	x, y := px+2, 1
	for _, line := range s.Counters() {
		st := styleBase
		switch {
		case line == s.ScoreText() && a.scorePulse.Active():
			st = stylePulse
		case line == s.LevelText() && a.levelPulse.Active():
			st = stylePulse
		}
		drawText(a.screen, x, y, line, st)
		y++
	}
	drawText(a.screen, a.clearBtn.x, a.clearBtn.y, a.clearBtn.label, styleButton)

	y = a.clearBtn.y + 2
	drawText(a.screen, x, y, "Conflicts", styleDim)
	y++
	for _, e := range s.ConflictList {
		lines := e.Lines()
		if y+len(lines) > a.h {
			drawText(a.screen, x, y, "...", styleDim)
			return
		}
		for i, line := range lines {
			st := styleBase
			switch {
			case len(lines) == 1:
				st = styleDim
			case i == len(lines)-1 && e.Resolved:
				st = styleOK
			case i == len(lines)-1:
				st = styleWarn
			}
			drawText(a.screen, x, y, line, st)
			y++
		}
	}
}

func (a *App) drawGameOver() {
	rw := int(a.view.Width)
	top := a.restartBtn.y - 5
	for y := top; y <= a.restartBtn.y+1; y++ {
		a.fillRow(y, 1, rw-1, styleOverlay)
	}
	title := "GAME OVER"
	drawText(a.screen, (rw-len(title))/2, top+1, title, styleGameOver)
	drawText(a.screen, max((rw-len(a.summary))/2, 1), top+3, a.summary, styleOverlay)
	drawText(a.screen, a.restartBtn.x, a.restartBtn.y, a.restartBtn.label, styleButton)
	drawText(a.screen, a.copyBtn.x, a.copyBtn.y, a.copyBtn.label, styleButton)
}
