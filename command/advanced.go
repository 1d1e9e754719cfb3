package command

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

// FilletInput is the preview payload for Fillet: two line
// entities sharing an endpoint and the corner radius.
type FilletInput struct {
	EntityA, EntityB uuid.UUID
	Radius           float64
}

func makeValidateFillet(eps epsilon.Policy) Validate[FilletInput] {
	return func(in FilletInput) *reason.Reason {
		if !epsilon.IsFinite(in.Radius) || in.Radius <= 0 {
			return reason.New(reason.DrawInvalidNumeric)
		}
		return nil
	}
}

func makeBuildFillet(eps epsilon.Policy) Build[FilletInput] {
	return func(in FilletInput) (Delta, *reason.Reason) {
		return &filletDelta{a: in.EntityA, b: in.EntityB, radius: in.Radius, eps: eps}, nil
	}
}

// NewFilletCommand replaces the corner where two line entities meet with
// a tangent arc.
func NewFilletCommand(eps epsilon.Policy) *Command[FilletInput] {
	return New(makeValidateFillet(eps), makeBuildFillet(eps))
}

type filletDelta struct {
	a, b   uuid.UUID
	radius float64
	eps    epsilon.Policy

	mu        sync.Mutex
	cached    bool
	before    []model.Entity // [a, b] in that order, for revert
	beforeIdx []int          // original positions of a, b in doc.Entities
	after     []model.Entity // [trimmedA, arc, trimmedB], new ids assigned once
	layerID   uuid.UUID
}

func (d *filletDelta) sealed() {}

func (d *filletDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.cached {
		ea, idxA, r := resolveEditableEntity(doc, d.a)
		if r != nil {
			return r
		}
		eb, idxB, r := resolveEditableEntity(doc, d.b)
		if r != nil {
			return r
		}
		trimmedA, arc, trimmedB, ferr := geom.FilletLines(ea.Geom, eb.Geom, d.radius, d.eps)
		if ferr != nil {
			return ferr
		}
		d.before = []model.Entity{ea, eb}
		d.beforeIdx = []int{idxA, idxB}
		d.layerID = ea.LayerID
		d.after = []model.Entity{
			{ID: uuid.New(), LayerID: d.layerID, Geom: trimmedA},
			{ID: uuid.New(), LayerID: d.layerID, Geom: arc},
			{ID: uuid.New(), LayerID: d.layerID, Geom: trimmedB},
		}
		d.cached = true
	}
	removeEntities(doc, d.a, d.b)
	doc.Entities = append(doc.Entities, d.after...)
	return nil
}

func (d *filletDelta) Revert(doc *model.Document) *reason.Reason {
	for _, e := range d.after {
		idx := doc.EntityIndex(e.ID.String())
		if idx >= 0 {
			doc.Entities = append(doc.Entities[:idx], doc.Entities[idx+1:]...)
		}
	}
	reinstateEntities(doc, d.before, d.beforeIdx)
	return nil
}

// ChamferInput is the preview payload for Chamfer.
type ChamferInput struct {
	EntityA, EntityB uuid.UUID
	Distance         float64
}

func makeValidateChamfer(eps epsilon.Policy) Validate[ChamferInput] {
	return func(in ChamferInput) *reason.Reason {
		if !epsilon.IsFinite(in.Distance) || in.Distance <= 0 {
			return reason.New(reason.DrawInvalidNumeric)
		}
		return nil
	}
}

func makeBuildChamfer(eps epsilon.Policy) Build[ChamferInput] {
	return func(in ChamferInput) (Delta, *reason.Reason) {
		return &chamferDelta{a: in.EntityA, b: in.EntityB, distance: in.Distance, eps: eps}, nil
	}
}

// NewChamferCommand replaces the corner where two line entities meet with
// a straight cut.
func NewChamferCommand(eps epsilon.Policy) *Command[ChamferInput] {
	return New(makeValidateChamfer(eps), makeBuildChamfer(eps))
}

type chamferDelta struct {
	a, b     uuid.UUID
	distance float64
	eps      epsilon.Policy

	mu        sync.Mutex
	cached    bool
	before    []model.Entity
	beforeIdx []int
	after     []model.Entity
	layerID   uuid.UUID
}

func (d *chamferDelta) sealed() {}

func (d *chamferDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.cached {
		ea, idxA, r := resolveEditableEntity(doc, d.a)
		if r != nil {
			return r
		}
		eb, idxB, r := resolveEditableEntity(doc, d.b)
		if r != nil {
			return r
		}
		trimmedA, chamfer, trimmedB, cerr := geom.ChamferLines(ea.Geom, eb.Geom, d.distance, d.eps)
		if cerr != nil {
			return cerr
		}
		d.before = []model.Entity{ea, eb}
		d.beforeIdx = []int{idxA, idxB}
		d.layerID = ea.LayerID
		d.after = []model.Entity{
			{ID: uuid.New(), LayerID: d.layerID, Geom: trimmedA},
			{ID: uuid.New(), LayerID: d.layerID, Geom: chamfer},
			{ID: uuid.New(), LayerID: d.layerID, Geom: trimmedB},
		}
		d.cached = true
	}
	removeEntities(doc, d.a, d.b)
	doc.Entities = append(doc.Entities, d.after...)
	return nil
}

func (d *chamferDelta) Revert(doc *model.Document) *reason.Reason {
	for _, e := range d.after {
		idx := doc.EntityIndex(e.ID.String())
		if idx >= 0 {
			doc.Entities = append(doc.Entities[:idx], doc.Entities[idx+1:]...)
		}
	}
	reinstateEntities(doc, d.before, d.beforeIdx)
	return nil
}

// MirrorSelectionInput is the preview payload for Mirror:
// reflects every selected entity's geometry in place across an axis.
type MirrorSelectionInput struct {
	EntityIDs    []uuid.UUID
	AxisA, AxisB geom.Vec2
}

func validateMirrorSelection(in MirrorSelectionInput) *reason.Reason {
	if len(in.EntityIDs) == 0 {
		return reason.New(reason.EditNoSelection)
	}
	return nil
}

func makeBuildMirror(eps epsilon.Policy) Build[MirrorSelectionInput] {
	return func(in MirrorSelectionInput) (Delta, *reason.Reason) {
		return &mirrorSelectionDelta{input: in, eps: eps}, nil
	}
}

// NewMirrorSelectionCommand reflects selected entities across an axis.
func NewMirrorSelectionCommand(eps epsilon.Policy) *Command[MirrorSelectionInput] {
	return New(validateMirrorSelection, makeBuildMirror(eps))
}

type mirrorSelectionDelta struct {
	input MirrorSelectionInput
	eps   epsilon.Policy

	mu     sync.Mutex
	cached bool
	before []geom.Geom2D
	after  []geom.Geom2D
}

func (d *mirrorSelectionDelta) sealed() {}

// Apply resolves the current entity positions (preconditions must still
// hold on every call) but mirrors only once: advanced edits
// cache both before and after on the first apply, and later apply/revert
// pairs replay the cached after/before geoms rather than recomputing them.
func (d *mirrorSelectionDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	indices := make([]int, len(d.input.EntityIDs))
	for i, id := range d.input.EntityIDs {
		_, idx, r := resolveEditableEntity(doc, id)
		if r != nil {
			return r
		}
		indices[i] = idx
	}

	if !d.cached {
		d.before = make([]geom.Geom2D, len(indices))
		d.after = make([]geom.Geom2D, len(indices))
		for i, idx := range indices {
			d.before[i] = doc.Entities[idx].Geom
			g, r := geom.MirrorGeom(doc.Entities[idx].Geom, d.input.AxisA, d.input.AxisB, d.eps)
			if r != nil {
				return r
			}
			d.after[i] = g
		}
		d.cached = true
	}

	for i, idx := range indices {
		doc.Entities[idx].Geom = d.after[i]
	}
	return nil
}

func (d *mirrorSelectionDelta) Revert(doc *model.Document) *reason.Reason {
	for i := len(d.input.EntityIDs) - 1; i >= 0; i-- {
		idx := doc.EntityIndex(d.input.EntityIDs[i].String())
		if idx < 0 {
			return reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", d.input.EntityIDs[i].String())
		}
		doc.Entities[idx].Geom = d.before[i]
	}
	return nil
}

// PatternInput is the preview payload for Pattern: a linear
// array of count-1 additional copies of the selected entities, each
// offset by (dx,dy) from the previous.
type PatternInput struct {
	EntityIDs []uuid.UUID
	Count     int
	DX, DY    float64
}

func validatePattern(in PatternInput) *reason.Reason {
	if len(in.EntityIDs) == 0 {
		return reason.New(reason.EditNoSelection)
	}
	if in.Count < 1 {
		return reason.New(reason.EditInvalidNumeric).WithDebug("reason", "count_lt_1")
	}
	if !epsilon.IsFinite(in.DX) || !epsilon.IsFinite(in.DY) {
		return reason.New(reason.EditInvalidNumeric)
	}
	return nil
}

func buildPattern(in PatternInput) (Delta, *reason.Reason) {
	return &patternDelta{input: in}, nil
}

// NewPatternCommand duplicates the selected entities into a linear array.
func NewPatternCommand() *Command[PatternInput] {
	return New(validatePattern, buildPattern)
}

type patternDelta struct {
	input PatternInput

	mu     sync.Mutex
	cached bool
	added  []model.Entity
}

func (d *patternDelta) sealed() {}

// Apply re-checks that the source entities still resolve and are editable
// on every call, but the generated copies — ids
// included — are computed once and replayed from the cache thereafter, per
// the "cache both before and after" rule for advanced edits.
func (d *patternDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	sources := make([]model.Entity, len(d.input.EntityIDs))
	for i, id := range d.input.EntityIDs {
		e, _, r := resolveEditableEntity(doc, id)
		if r != nil {
			return r
		}
		sources[i] = e
	}

	if !d.cached {
		for copyIdx := 1; copyIdx < d.input.Count; copyIdx++ {
			dx := d.input.DX * float64(copyIdx)
			dy := d.input.DY * float64(copyIdx)
			for _, src := range sources {
				g, _ := applyTransform(src.Geom, TransformSelectionInput{Kind: TransformTranslate, DX: dx, DY: dy})
				d.added = append(d.added, model.Entity{ID: uuid.New(), LayerID: src.LayerID, Geom: g})
			}
		}
		d.cached = true
	}

	doc.Entities = append(doc.Entities, d.added...)
	return nil
}

func (d *patternDelta) Revert(doc *model.Document) *reason.Reason {
	for _, e := range d.added {
		idx := doc.EntityIndex(e.ID.String())
		if idx >= 0 {
			doc.Entities = append(doc.Entities[:idx], doc.Entities[idx+1:]...)
		}
	}
	return nil
}

func removeEntities(doc *model.Document, ids ...uuid.UUID) {
	keep := doc.Entities[:0]
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id.String()] = true
	}
	for _, e := range doc.Entities {
		if !drop[e.ID.String()] {
			keep = append(keep, e)
		}
	}
	doc.Entities = keep
}

// reinstateEntities inserts each entity back at its original index,
// lowest index first so later insertions see their final positions.
// Used by reverts that removed entities mid-slice: restoring at the
// recorded positions keeps the document byte-identical to its pre-apply
// encoding, where a plain append would reorder it.
func reinstateEntities(doc *model.Document, ents []model.Entity, idxs []int) {
	type slot struct {
		e   model.Entity
		idx int
	}
	slots := make([]slot, len(ents))
	for i := range ents {
		slots[i] = slot{e: ents[i], idx: idxs[i]}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].idx < slots[j].idx })
	for _, s := range slots {
		idx := s.idx
		if idx > len(doc.Entities) {
			idx = len(doc.Entities)
		}
		doc.Entities = append(doc.Entities, model.Entity{})
		copy(doc.Entities[idx+1:], doc.Entities[idx:])
		doc.Entities[idx] = s.e
	}
}
