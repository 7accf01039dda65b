// preview plays one animation of a prefab in a window, looping it through
// anim.Player so timing matches the game.
//
// Usage:
//
//	preview [animation] [--file player.yaml] [--scale 4]
//
// Space restarts the animation, Left/Right step through the set.
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/milk9111/flipbook/anim"
	"github.com/milk9111/flipbook/assets"
	"github.com/milk9111/flipbook/prefabs"
)

const (
	windowSize = 512
	tps        = 60
)

var (
	flagFile  string
	flagScale float64
	logger    = log.NewWithOptions(os.Stderr, log.Options{Prefix: "preview"})
)

type previewGame struct {
	sheet  *ebiten.Image
	player *anim.Player
	id     anim.ID
	scale  float64
	starts int
	ends   int
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.show((g.id + 1) % anim.ID(g.player.Set().Len()))
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		n := anim.ID(g.player.Set().Len())
		g.show((g.id + n - 1) % n)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.show(g.id)
	}

	_, err := g.player.Advance(g.id, 1.0/tps)
	return err
}

// show switches to id. Passing the current id rewinds it through a detour
// so Advance sees a change.
func (g *previewGame) show(id anim.ID) {
	if id == g.id && g.player.Set().Len() > 1 {
		other := (id + 1) % anim.ID(g.player.Set().Len())
		_, _ = g.player.Advance(other, 0)
	}
	g.id = id
	g.starts, g.ends = 0, 0
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x10, 0x18, 0xff})

	src, ok := g.player.Sprite(g.id)
	if ok && !src.Empty() {
		frame := g.sheet.SubImage(src).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(g.scale, g.scale)
		op.GeoM.Translate((windowSize-float64(src.Dx())*g.scale)/2, (windowSize-float64(src.Dy())*g.scale)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(frame, op)
	}

	def, _ := g.player.Set().Def(g.id)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d/%d  loop %t\nstart hooks %d  finish hooks %d",
		def.Name, g.player.FrameIndex(g.id), len(def.Frames), def.Loop, g.starts, g.ends))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowSize, windowSize
}

var rootCmd = &cobra.Command{
	Use:   "preview [animation]",
	Short: "Play one animation of a prefab",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.Flags().StringVar(&flagFile, "file", "player.yaml", "Prefab to load")
	rootCmd.Flags().Float64Var(&flagScale, "scale", 4, "Pixel scale")
}

func runPreview(cmd *cobra.Command, args []string) error {
	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](flagFile)
	if err != nil {
		return err
	}

	g := &previewGame{scale: flagScale}
	counters := countingHooks{game: g}
	set, err := prefabs.BuildAnimationSet(spec.Animation, counters)
	if err != nil {
		return err
	}
	g.player, err = anim.NewPlayer(set)
	if err != nil {
		return err
	}
	g.sheet, err = assets.LoadImage(spec.Animation.Sheet)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		id, ok := set.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown animation %q", args[0])
		}
		g.id = id
	}

	logger.Info("previewing", "file", flagFile, "animations", set.Len())
	ebiten.SetWindowSize(windowSize, windowSize)
	ebiten.SetWindowTitle("flipbook preview")
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

// countingHooks counts lifecycle callbacks for the overlay and logs authored
// hooks without running them.
type countingHooks struct {
	game *previewGame
}

func (h countingHooks) Hook(animation string, phase prefabs.Phase, spec prefabs.HookSpec) (anim.Callback, error) {
	return func(def *anim.Def) {
		if phase == prefabs.PhaseStart {
			h.game.starts++
		} else {
			h.game.ends++
		}
		logger.Debug("hook", "animation", def.Name, "phase", phase, "emit", spec.Emit, "script", spec.Script)
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
