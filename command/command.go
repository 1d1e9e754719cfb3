package command

import "github.com/teru1991/craftcad/reason"

// Phase enumerates the four states of the command lifecycle.
type Phase int

const (
	Idle Phase = iota
	Ready
	Previewing
	Committed
)

// Validate checks a candidate input before it is accepted as a preview.
type Validate[Input any] func(Input) *reason.Reason

// Build turns a committed input into the Delta that will carry out its
// effect. Build should capture intent and identifiers only; heavy
// computation belongs in the Delta's own Apply.
type Build[Input any] func(Input) (Delta, *reason.Reason)

// Command is the generic begin/update/commit/cancel state machine.
// Every concrete command family is a Command[SomeInput] value
// constructed with that family's validate/build pair.
type Command[Input any] struct {
	phase      Phase
	preview    Input
	hasPreview bool
	validate   Validate[Input]
	build      Build[Input]
}

// New constructs an idle command for the given validate/build pair.
func New[Input any](validate Validate[Input], build Build[Input]) *Command[Input] {
	return &Command[Input]{validate: validate, build: build}
}

// Begin clears any preview and moves the command to Ready, regardless of
// its current phase.
func (c *Command[Input]) Begin() {
	var zero Input
	c.phase = Ready
	c.preview = zero
	c.hasPreview = false
}

// Update validates input and, on success, stores it as the current
// preview and moves to Previewing. On failure the previous preview (if
// any) is left unchanged and the phase does not advance.
func (c *Command[Input]) Update(input Input) *reason.Reason {
	if c.phase == Idle {
		c.Begin()
	}
	if r := c.validate(input); r != nil {
		return r
	}
	c.preview = input
	c.hasPreview = true
	c.phase = Previewing
	return nil
}

// Commit requires a valid preview and builds the Delta for it. On
// success the command moves to Committed; the caller is expected to hand
// the Delta to a history.History (directly, or inside a group).
func (c *Command[Input]) Commit() (Delta, *reason.Reason) {
	if c.phase != Previewing || !c.hasPreview {
		return nil, reason.New(reason.EditNoSelection).WithDebug("reason", "commit_without_preview")
	}
	d, r := c.build(c.preview)
	if r != nil {
		return nil, r
	}
	c.phase = Committed
	return d, nil
}

// Cancel clears the current preview and returns the command to Idle.
func (c *Command[Input]) Cancel() {
	var zero Input
	c.phase = Idle
	c.preview = zero
	c.hasPreview = false
}

// Phase reports the command's current lifecycle phase.
func (c *Command[Input]) Phase() Phase { return c.phase }
