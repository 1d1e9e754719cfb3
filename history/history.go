package history

import (
	"github.com/teru1991/craftcad/command"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

// History holds the undo and redo stacks plus the optional active group.
// The zero value is a ready-to-use, empty history.
type History struct {
	undo  []command.Delta
	redo  []command.Delta
	group *activeGroup
}

type activeGroup struct {
	name    string
	members []command.Delta
}

// New returns an empty History.
func New() *History {
	return &History{}
}

// Push records a freshly committed delta. If a group is currently open,
// the delta joins the group instead of going straight onto the undo
// stack. Either way, the redo stack is cleared: a new edit invalidates
// any previously undone work.
func (h *History) Push(d command.Delta) {
	if h.group != nil {
		h.group.members = append(h.group.members, d)
	} else {
		h.undo = append(h.undo, d)
	}
	h.redo = h.redo[:0]
}

// BeginGroup opens a named delta group. It is a no-op if a group is
// already open.
func (h *History) BeginGroup(name string) {
	if h.group != nil {
		return
	}
	h.group = &activeGroup{name: name}
}

// EndGroup closes the currently open group. A non-empty group is pushed
// onto the undo stack as a single composite delta (applying forward,
// reverting in reverse); an empty group is discarded. It is a no-op if no
// group is open.
func (h *History) EndGroup() {
	if h.group == nil {
		return
	}
	g := h.group
	h.group = nil
	if len(g.members) == 0 {
		return
	}
	h.undo = append(h.undo, command.NewGroup(g.name, g.members))
	h.redo = h.redo[:0]
}

// InGroup reports whether a group is currently open.
func (h *History) InGroup() bool { return h.group != nil }

// CanUndo reports whether Undo has anything to do.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo pops the top of the undo stack, reverts it against doc, and
// pushes it onto the redo stack. It is a no-op returning nil
// if the undo stack is empty.
func (h *History) Undo(doc *model.Document) *reason.Reason {
	if len(h.undo) == 0 {
		return nil
	}
	n := len(h.undo) - 1
	d := h.undo[n]
	if r := d.Revert(doc); r != nil {
		return r
	}
	h.undo = h.undo[:n]
	h.redo = append(h.redo, d)
	return nil
}

// Redo pops the top of the redo stack, re-applies it against doc, and
// pushes it back onto the undo stack. It is a no-op
// returning nil if the redo stack is empty.
func (h *History) Redo(doc *model.Document) *reason.Reason {
	if len(h.redo) == 0 {
		return nil
	}
	n := len(h.redo) - 1
	d := h.redo[n]
	if r := d.Apply(doc); r != nil {
		return r
	}
	h.redo = h.redo[:n]
	h.undo = append(h.undo, d)
	return nil
}
