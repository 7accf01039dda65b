package main

import (
	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/flipbook/ecs"
	"github.com/milk9111/flipbook/ecs/entity"
	"github.com/milk9111/flipbook/ecs/system"
	"github.com/milk9111/flipbook/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tps        = 60
)

// Config holds the command line switches of the game.
type Config struct {
	Debug bool
	Watch bool
}

// Game runs two schedulers per Update. The frame scheduler reads input and
// selects animations; the fixed scheduler then moves bodies and advances
// animations by one 1/tps step, so selection always precedes playback.
type Game struct {
	world   *ecs.World
	frame   *ecs.Scheduler
	fixed   *ecs.Scheduler
	render  *system.RenderSystem
	overlay *system.DebugOverlay
	watcher *prefabs.Watcher
	logger  *log.Logger

	width, height int
	debug         bool
	paused        bool
	pauseUI       *ebitenui.UI
}

func NewGame(cfg Config, logger *log.Logger) (*Game, error) {
	stage, err := prefabs.LoadStageSpec()
	if err != nil {
		return nil, err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	width, height := stage.Width, stage.Height
	if width <= 0 || height <= 0 {
		width, height = baseWidth, baseHeight
	}

	w := ecs.NewWorld()
	if _, err := entity.NewStage(w, stage); err != nil {
		return nil, err
	}
	if _, err := entity.NewPlayerFromSpec(w, player, stage.Spawn.X, stage.Spawn.Y); err != nil {
		return nil, err
	}

	dt := 1.0 / tps
	events := system.NewEventLogSystem(logger)
	g := &Game{
		world: w,
		frame: ecs.NewScheduler(
			system.NewReloadSystem(logger),
			system.NewInputSystem(),
			system.NewTriggerSystem(logger),
		),
		fixed: ecs.NewScheduler(
			system.NewPlayerControllerSystem(),
			system.NewPhysicsSystem(stage.Gravity, dt, float64(width), float64(height)),
			system.NewAnimationSystem(dt, logger),
			events,
		),
		render:  system.NewRenderSystem(stage.Background.Or(colornames.Midnightblue), stage.PlatformColor.Or(colornames.Dimgray)),
		overlay: system.NewDebugOverlay(events),
		logger:  logger,
		width:   width,
		height:  height,
		debug:   cfg.Debug,
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			logger.Warn("prefab watcher disabled", "dir", prefabs.Dir, "error", err)
		} else {
			g.watcher = watcher
			logger.Info("watching prefabs", "dir", prefabs.Dir)
		}
	}

	logger.Info("stage loaded", "name", stage.Name, "platforms", len(stage.Platforms), "animations", len(player.Animation.Defs))
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	g.pollWatcher()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frame.Update(g.world)
	g.fixed.Update(g.world)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.requestReload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", "error", err)
			}
		default:
			return
		}
	}
}

func (g *Game) requestReload(path string) {
	g.logger.Debug("reload requested", "path", path)
	if err := system.RequestReload(g.world, path); err != nil {
		g.logger.Error("reload request failed", "error", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.debug {
		g.overlay.Draw(g.world, screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
