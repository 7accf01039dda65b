package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/milk9111/flipbook/anim"
	"github.com/milk9111/flipbook/prefabs"
)

var (
	flagFile    string
	flagTPS     int
	flagCatchUp bool

	errBadTimeline = errors.New("bad timeline")
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <timeline>",
	Short: "Replay a trigger timeline and print the active animation per tick",
	Long: `Replay a trigger timeline through the animation controller of a prefab.

Each segment is "triggers:ticks" where triggers is "idle" or a "+" joined
list of moving, airborne and attacking.

Examples:
  animcheck simulate "idle:3,moving:5,moving+airborne:4"
  animcheck simulate "attacking:1,idle:30" --tps 30`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagFile, "file", "player.yaml", "Prefab to load")
	simulateCmd.Flags().IntVar(&flagTPS, "tps", 60, "Fixed ticks per second")
	simulateCmd.Flags().BoolVar(&flagCatchUp, "catch-up", false, "Advance several frames when a tick spans more than one")
}

// segment holds the trigger state for a run of ticks.
type segment struct {
	triggers anim.TriggerState
	ticks    int
}

func parseTimeline(s string) ([]segment, error) {
	var out []segment
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q has no tick count", errBadTimeline, part)
		}
		ticks, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || ticks <= 0 {
			return nil, fmt.Errorf("%w: %q needs a positive tick count", errBadTimeline, part)
		}

		var ts anim.TriggerState
		for _, name := range strings.Split(names, "+") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" || name == "idle" || name == "none" {
				continue
			}
			t, err := anim.ParseTrigger(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", errBadTimeline, err)
			}
			ts.Set(t, true)
		}
		out = append(out, segment{triggers: ts, ticks: ticks})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty", errBadTimeline)
	}
	return out, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	timeline, err := parseTimeline(args[0])
	if err != nil {
		return err
	}
	if flagTPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", flagTPS)
	}

	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](flagFile)
	if err != nil {
		return err
	}
	hooks := &printHooks{}
	set, err := prefabs.BuildAnimationSet(spec.Animation, hooks)
	if err != nil {
		return err
	}

	opts := prefabs.ControllerOptions(spec.Animation)
	if flagCatchUp {
		opts = append(opts, anim.WithPlayerOptions(anim.WithCatchUp()))
	}
	controller, err := anim.NewController(set, opts...)
	if err != nil {
		return err
	}

	return simulate(cmd.OutOrStdout(), controller, hooks, timeline, 1/float64(flagTPS))
}

// simulate runs the timeline one tick at a time and writes a table row per
// tick. Hook calls made during a tick are listed in the last column.
func simulate(out io.Writer, c *anim.Controller, hooks *printHooks, timeline []segment, dt float64) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tTRIGGERS\tANIMATION\tFRAME\tHOOKS")

	tick := 0
	for _, seg := range timeline {
		for i := 0; i < seg.ticks; i++ {
			tick++
			if _, err := c.SelectWith(seg.triggers); err != nil {
				return err
			}
			if _, err := c.Step(dt); err != nil {
				return err
			}
			def, _ := c.Active()
			frame := c.Player().FrameIndex(c.Selected())
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", tick, c.Triggers(), def.Name, frame, strings.Join(hooks.drain(), " "))
		}
	}
	return tw.Flush()
}

// printHooks records hook calls instead of running them.
type printHooks struct {
	calls []string
}

func (h *printHooks) Hook(animation string, phase prefabs.Phase, spec prefabs.HookSpec) (anim.Callback, error) {
	var label string
	switch {
	case spec.Emit != "" && spec.Script != "":
		label = spec.Emit + "+" + spec.Script
	case spec.Emit != "":
		label = spec.Emit
	default:
		label = spec.Script
	}
	return func(def *anim.Def) {
		h.calls = append(h.calls, fmt.Sprintf("%s/%s:%s", def.Name, phase, label))
	}, nil
}

func (h *printHooks) drain() []string {
	out := h.calls
	h.calls = nil
	return out
}
