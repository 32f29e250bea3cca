package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"airspace/client/internal/api"
	"airspace/client/internal/game/layout"
	"airspace/client/internal/log"
	"airspace/client/internal/netcfg"
	"airspace/client/internal/radar"
	"airspace/shared/protocol"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

type Game struct {
	lg     *log.Logger
	loop   *radar.Loop
	cancel context.CancelFunc

	simW, simH int
	canvas     *imageCanvas
	lay        layout.Layout

	scorePulse radar.Pulse
	levelPulse radar.Pulse
	summary    string // frozen when the game ends

	status      string
	statusTicks int
	showDebug   bool

	touchIDs []ebiten.TouchID
}

// New builds the game against the server in cfg. Polling starts on the
// first Update.
func New(cfg netcfg.Config, lg *log.Logger) *Game {
	cfg = cfg.Normalize()
	lg.Info("Starting client", slog.String("api", cfg.APIBase), slog.Duration("poll", cfg.PollInterval))
	return newGame(api.New(cfg.APIBase, cfg.RequestTimeout), cfg.PollInterval, lg)
}

func newGame(remote radar.Remote, period time.Duration, lg *log.Logger) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		lg:     lg,
		cancel: cancel,
		simW:   protocol.ScreenW,
		simH:   protocol.ScreenH,
	}
	g.loop = radar.NewLoop(ctx, remote, radar.NewSession(), period, lg)
	g.canvas = newImageCanvas(g.simW, g.simH)
	g.lay = layout.Compute(protocol.ScreenW+layout.PanelW, protocol.ScreenH)
	return g
}

// Close cancels outstanding requests.
func (g *Game) Close() {
	g.cancel()
}

func (g *Game) Update() error {
	for _, ev := range g.pointerEvents() {
		g.handlePointer(ev)
	}
	g.handleKeys()

	g.loop.Update(time.Now())
	for _, ev := range g.loop.Events() {
		g.present(ev)
	}

	g.scorePulse.Step()
	g.levelPulse.Step()
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

func (g *Game) present(ev radar.Event) {
	switch ev.Kind {
	case radar.EventScorePulse:
		g.scorePulse.Trigger(pulseFrames)
	case radar.EventLevelUp:
		g.levelPulse.Trigger(pulseFrames)
		g.setStatus(fmt.Sprintf("Level %d!", ev.Level))
	case radar.EventGameOver:
		g.summary = g.loop.Session().GameOverSummary()
	case radar.EventReset:
		g.summary = ""
		g.setStatus("New game")
	case radar.EventCleared:
		g.setStatus("Airspace cleared")
	}
}

func (g *Game) setStatus(s string) {
	g.status, g.statusTicks = s, statusFrames
}

func (g *Game) clear() {
	g.loop.Clear()
}

func (g *Game) restart() {
	g.loop.Reset()
}

func (g *Game) copySummary() {
	if g.summary == "" {
		return
	}
	if err := clipboard.WriteAll(protocol.GameName + ": " + g.summary); err != nil {
		g.lg.Warn("Clipboard copy failed", slog.Any("error", err))
		g.setStatus("Copy failed")
		return
	}
	g.setStatus("Copied to clipboard")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colPanelBG)

	radar.Render(g.canvas, g.loop.Session())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.lay.View.Width/float64(g.simW), g.lay.View.Height/float64(g.simH))
	op.GeoM.Translate(g.lay.View.Left, g.lay.View.Top)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.canvas.img, op)

	g.drawPanel(screen)
	if g.loop.Session().GameOver {
		g.drawGameOver(screen)
	}
	if g.showDebug {
		g.drawDebug(screen)
	}
}

// Layout uses the outside size as is; the radar is stretched into whatever
// space the panel leaves.
func (g *Game) Layout(w, h int) (int, int) {
	if w != g.lay.W || h != g.lay.H {
		g.lay = layout.Compute(w, h)
	}
	return w, h
}

var plainReplacer = strings.NewReplacer("↔", "<->", "✓", "+", "⚠", "!")

// plain maps the few symbols basicfont lacks to ASCII.
func plain(s string) string { return plainReplacer.Replace(s) }
