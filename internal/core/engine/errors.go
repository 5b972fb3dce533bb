package engine

import "errors"

var (
	ErrStepPending  = errors.New("a step is already in flight")
	ErrNotPlaced    = errors.New("engine has not been placed")
	ErrEngineClosed = errors.New("engine is closed")
	ErrEngineFailed = errors.New("engine failed in an earlier step")
	ErrStepPanicked = errors.New("step panicked")
)
