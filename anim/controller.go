package anim

import "image"

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMustFinish defers switching away from a non-looping MustFinish
// animation until it has finished.
func WithMustFinish() ControllerOption {
	return func(c *Controller) { c.mustFinish = true }
}

// WithFinishTriggers applies an animation's FinishTriggers on top of the
// observed triggers for the selection that follows its finish.
func WithFinishTriggers() ControllerOption {
	return func(c *Controller) { c.applyFinish = true }
}

// WithPlayerOptions forwards options to the underlying Player.
func WithPlayerOptions(opts ...PlayerOption) ControllerOption {
	return func(c *Controller) { c.playerOpts = append(c.playerOpts, opts...) }
}

// Controller runs the trigger, selection and playback pipeline for one
// character. Observe belongs to the variable-rate tick and Step to the
// fixed-rate tick; Step always plays the most recent selection.
type Controller struct {
	player     *Player
	playerOpts []PlayerOption

	triggers TriggerState
	selected ID
	pending  []TriggerEffect

	mustFinish  bool
	applyFinish bool
}

// NewController builds a controller with a fresh Player for set.
func NewController(set *Set, opts ...ControllerOption) (*Controller, error) {
	c := &Controller{selected: NoID}
	for _, opt := range opts {
		opt(c)
	}
	player, err := NewPlayer(set, c.playerOpts...)
	if err != nil {
		return nil, err
	}
	c.player = player
	return c, nil
}

// Observe derives this tick's triggers from obs and selects the active animation.
func (c *Controller) Observe(obs Observation) (ID, error) {
	return c.SelectWith(UpdateTriggers(obs))
}

// SelectWith selects the active animation for an explicit trigger state.
// When nothing matches the previous selection is kept.
func (c *Controller) SelectWith(ts TriggerState) (ID, error) {
	if len(c.pending) > 0 {
		ts.Apply(c.pending)
		c.pending = nil
	}
	c.triggers = ts

	id, err := c.player.Set().Select(ts)
	if err != nil {
		return NoID, err
	}
	if c.mustFinish && c.holding(id) {
		c.selected = c.player.Current()
		return c.selected, nil
	}
	if id != NoID {
		c.selected = id
	}
	return c.selected, nil
}

func (c *Controller) holding(next ID) bool {
	cur := c.player.Current()
	if cur == NoID || cur == next {
		return false
	}
	def, ok := c.player.Set().Def(cur)
	if !ok {
		return false
	}
	// Single-frame animations never finish, so they are never held.
	return def.MustFinish && !def.Loop && len(def.Frames) > 1 && !c.player.Finished(cur)
}

// Step advances the selected animation by the fixed tick delta.
func (c *Controller) Step(delta float64) (image.Rectangle, error) {
	id := c.selected
	wasFinished := c.player.Finished(id)
	sprite, err := c.player.Advance(id, delta)
	if err != nil {
		return image.Rectangle{}, err
	}
	if c.applyFinish && !wasFinished && c.player.Finished(id) {
		def, _ := c.player.Set().Def(id)
		c.pending = append(c.pending[:0], def.FinishTriggers...)
	}
	return sprite, nil
}

// Triggers returns the trigger state used by the last selection.
func (c *Controller) Triggers() TriggerState {
	return c.triggers
}

// Selected returns the current selection.
func (c *Controller) Selected() ID {
	return c.selected
}

// Active returns the definition of the current selection.
func (c *Controller) Active() (*Def, bool) {
	return c.player.Set().Def(c.selected)
}

// Player exposes the playback state.
func (c *Controller) Player() *Player {
	return c.player
}
