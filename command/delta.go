package command

import "github.com/teru1991/craftcad/model"
import "github.com/teru1991/craftcad/reason"

// Delta is a reversible state change over a Document. Apply
// and Revert must be total functions of (delta, document) — any
// memoization a concrete Delta needs lives behind its own mutex-guarded
// cache, not in package-level state.
//
// Delta is a sealed interface: every implementation lives in this
// package, so the variant set is closed and dispatch via Apply/Revert is
// total.
type Delta interface {
	Apply(doc *model.Document) *reason.Reason
	Revert(doc *model.Document) *reason.Reason
	sealed()
}

// groupDelta is the composite Delta history.EndGroup produces:
// applying it runs its members forward in order, reverting runs them in
// reverse order, preserving the round-trip property for the whole group.
type groupDelta struct {
	Name    string
	Members []Delta
}

// NewGroup wraps members (already-committed deltas) as a single composite
// Delta with the documented apply-forward / revert-reverse order.
func NewGroup(name string, members []Delta) Delta {
	return &groupDelta{Name: name, Members: append([]Delta(nil), members...)}
}

func (g *groupDelta) Apply(doc *model.Document) *reason.Reason {
	for i, m := range g.Members {
		if r := m.Apply(doc); r != nil {
			// Roll back any member already applied this pass so a partial
			// group never leaves the document half-mutated.
			for j := i - 1; j >= 0; j-- {
				g.Members[j].Revert(doc)
			}
			return r
		}
	}
	return nil
}

func (g *groupDelta) Revert(doc *model.Document) *reason.Reason {
	for i := len(g.Members) - 1; i >= 0; i-- {
		if r := g.Members[i].Revert(doc); r != nil {
			return r
		}
	}
	return nil
}

func (g *groupDelta) sealed() {}
