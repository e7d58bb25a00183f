package wizard

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoSteps         = errors.New("wizard requires at least one step")
	ErrUnknownStep     = errors.New("unknown wizard step")
	ErrStepNotVisited  = errors.New("cannot jump to a step that has not been reached")
	ErrFlowNotFinished = errors.New("wizard flow has not reached its final step")
)

// Flow is a forward-fenced step sequence for multi-step registration forms.
// Movement past either end is a no-op, and jumping is only allowed to steps
// the flow has already reached, so skipping required steps is unrepresentable.
type Flow struct {
	steps   []string
	cursor  int
	visited int
}

// New starts a flow at the first of the given steps.
func New(steps ...string) (*Flow, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	return &Flow{steps: slices.Clone(steps)}, nil
}

// Resume restores a flow whose progress was persisted as the current step
// name. Every step before the persisted one counts as visited.
func Resume(steps []string, current string) (*Flow, error) {
	flow, err := New(steps...)
	if err != nil {
		return nil, err
	}

	idx := slices.Index(flow.steps, current)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, current)
	}

	flow.cursor = idx
	flow.visited = idx

	return flow, nil
}

// Current returns the active step name.
func (f *Flow) Current() string {
	return f.steps[f.cursor]
}

// Position returns the 1-based cursor and the total step count.
func (f *Flow) Position() (current, total int) {
	return f.cursor + 1, len(f.steps)
}

// IsFirst reports whether the flow is on its first step.
func (f *Flow) IsFirst() bool {
	return f.cursor == 0
}

// IsLast reports whether the flow is on its final step.
func (f *Flow) IsLast() bool {
	return f.cursor == len(f.steps)-1
}

// Next advances the cursor. Calling it on the final step leaves the flow
// unchanged.
func (f *Flow) Next() {
	if f.IsLast() {
		return
	}

	f.cursor++
	if f.cursor > f.visited {
		f.visited = f.cursor
	}
}

// Previous moves the cursor back. Calling it on the first step leaves the
// flow unchanged.
func (f *Flow) Previous() {
	if f.IsFirst() {
		return
	}

	f.cursor--
}

// GoTo jumps to a step that has already been reached.
func (f *Flow) GoTo(step string) error {
	idx := slices.Index(f.steps, step)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}

	if idx > f.visited {
		return fmt.Errorf("%w: %s", ErrStepNotVisited, step)
	}

	f.cursor = idx

	return nil
}

// Finished reports whether the flow has ever reached its final step.
func (f *Flow) Finished() bool {
	return f.visited == len(f.steps)-1
}
