package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/outpost/common"
	"github.com/milk9111/outpost/ecs/component"
	"github.com/milk9111/outpost/ecs/entity"
	"github.com/milk9111/outpost/ecs/system"
	"github.com/milk9111/outpost/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	hudHeight  = 48
)

// Game is a top-down debug view of a running outpost.
type Game struct {
	outpost *entity.Outpost
	watcher *prefabs.Watcher
	logger  *log.Logger

	debug   bool
	paused  bool
	pauseUI *ebitenui.UI

	scale   float64
	originX float64
	originY float64
}

func NewGame(opts entity.Options, debug, watch bool) (*Game, error) {
	o, err := entity.LoadOutpost(opts)
	if err != nil {
		return nil, err
	}
	g := &Game{outpost: o, logger: opts.Logger, debug: debug}
	g.fitView()
	g.pauseUI = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			g.logger.Warn("prefab watcher unavailable", "err", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) fitView() {
	b := g.outpost.Grid.Bounds()
	w := b.MaxX - b.MinX
	h := b.MaxZ - b.MinZ
	g.scale = min(baseWidth/w, (baseHeight-hudHeight)/h)
	g.originX = (baseWidth - w*g.scale) / 2
	g.originY = hudHeight
}

// toScreen maps the ground plane to the screen with +Z pointing up.
func (g *Game) toScreen(p common.Vec3) (float32, float32) {
	b := g.outpost.Grid.Bounds()
	x := g.originX + (p.X-b.MinX)*g.scale
	y := g.originY + (b.MaxZ-p.Z)*g.scale
	return float32(x), float32(y)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.watcher != nil {
		for _, c := range g.watcher.Pending() {
			g.outpost.Reload(c.Path)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.outpost.RespawnDead()
	}
	if g.outpost.Player.Stats.Died() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.outpost.RespawnPlayer()
	}

	g.outpost.Player.SetInput(readInput())
	g.outpost.Step(1 / float64(ebiten.TPS()))

	for _, evt := range g.outpost.World.Events().Drain() {
		g.logger.Debug("event", "type", evt.Type, "data", fmt.Sprintf("%+v", evt.Data))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x14, 0x16, 0x1a, 0xff})

	for _, wall := range g.outpost.Physics.Walls() {
		x0, y0 := g.toScreen(common.V3(wall.MinX, 0, wall.MaxZ))
		x1, y1 := g.toScreen(common.V3(wall.MaxX, 0, wall.MinZ))
		vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, colornames.Slategray, false)
	}

	for _, p := range g.outpost.Pickups.Pickups() {
		if p.Collected {
			continue
		}
		c := colornames.Mediumseagreen
		if p.Kind == component.PickupAmmo {
			c = colornames.Goldenrod
		}
		x, y := g.toScreen(p.Position)
		vector.DrawFilledCircle(screen, x, y, float32(0.35*g.scale), c, true)
		vector.StrokeCircle(screen, x, y, float32(p.Radius*g.scale), 1, c, true)
	}

	if g.debug {
		for _, gz := range g.outpost.Gizmos() {
			g.drawGizmo(screen, gz)
		}
	} else {
		for _, ai := range g.outpost.Enemies() {
			x, y := g.toScreen(ai.Enemy.Position)
			vector.DrawFilledCircle(screen, x, y, float32(0.4*g.scale), colornames.Indianred, true)
		}
	}

	g.drawPlayer(screen)
	g.drawLabels(screen)
	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawGizmo(screen *ebiten.Image, gz system.Gizmo) {
	x0, y0 := g.toScreen(gz.From)
	switch gz.Kind {
	case system.GizmoLine:
		x1, y1 := g.toScreen(gz.To)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, gz.Color, true)
	case system.GizmoCircle:
		vector.StrokeCircle(screen, x0, y0, float32(gz.Radius*g.scale), 1.5, gz.Color, true)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.outpost.Player
	pos := p.Stats.Position()
	x, y := g.toScreen(pos)
	c := colornames.Dodgerblue
	if p.Stats.Died() {
		c = colornames.Dimgray
	}
	vector.DrawFilledCircle(screen, x, y, float32(0.4*g.scale), c, true)
	fx, fy := g.toScreen(pos.Add(p.Controller.Forward().Scale(1.2)))
	vector.StrokeLine(screen, x, y, fx, fy, 2, colornames.White, true)
}

func (g *Game) drawLabels(screen *ebiten.Image) {
	names := make([]string, 0, len(g.outpost.Labels))
	for name := range g.outpost.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ai, ok := g.outpost.Enemy(name)
		if !ok {
			continue
		}
		x, y := g.toScreen(ai.Enemy.Position)
		ebitenutil.DebugPrintAt(screen, g.outpost.Labels[name].Text(), int(x)+8, int(y)-20)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.outpost.Player
	line := fmt.Sprintf("HP %.0f  Stamina %.0f  Ammo %d/%d  Drains %d   FPS %.0f",
		p.Stats.Health(), p.Stats.Stamina(), p.Gun.Ammo(), p.Gun.Reserve(), p.Stats.Draining(), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, line, 8, 4)

	msg := g.outpost.HUD.Text()
	if p.Stats.Died() {
		msg = "You died. Press Enter to respawn."
	} else if g.outpost.HUD.Age() > 2 {
		msg = ""
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, 22)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
