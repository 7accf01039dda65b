package anim

import "errors"

var (
	ErrEmptyFrames       = errors.New("anim: animation has no frames")
	ErrUnknownTrigger    = errors.New("anim: unknown trigger")
	ErrNoAnimations      = errors.New("anim: no animations configured")
	ErrNoActiveAnimation = errors.New("anim: no active animation")
	ErrInvalidSpeed      = errors.New("anim: speed must be positive")
	ErrInvalidDelta      = errors.New("anim: delta must be a non-negative number")
)
