package command

import (
	"sync"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

// CreateEntityInput is the shared preview payload for every
// CreateLine/Rect/Circle/Arc/Polyline command: a fully
// formed Geom2D plus the layer and opaque presentation fields it will be
// appended with.
type CreateEntityInput struct {
	LayerID uuid.UUID
	Geom    geom.Geom2D
	Style   map[string]any
	Tags    []string
}

func validateCreateEntity(eps epsilon.Policy) Validate[CreateEntityInput] {
	return func(in CreateEntityInput) *reason.Reason {
		if in.LayerID == uuid.Nil {
			return reason.New(reason.DrawInsufficientInput).WithDebug("reason", "missing_layer_id")
		}
		if r := in.Geom.Validate(eps); r != nil {
			return reason.New(reason.DrawInvalidNumeric).WithDebug("cause", r.Error())
		}
		return nil
	}
}

func buildCreateEntity(in CreateEntityInput) (Delta, *reason.Reason) {
	return &createEntityDelta{
		layerID: in.LayerID,
		geom:    in.Geom,
		style:   in.Style,
		tags:    in.Tags,
	}, nil
}

// NewCreateLineCommand, NewCreateRectCommand, ... wrap the shared
// CreateEntityInput state machine; the per-shape geometry is built by the
// caller (see RectGeom for the rectangle case).
func NewCreateLineCommand(eps epsilon.Policy) *Command[CreateEntityInput] {
	return New(validateCreateEntity(eps), buildCreateEntity)
}

func NewCreateCircleCommand(eps epsilon.Policy) *Command[CreateEntityInput] {
	return New(validateCreateEntity(eps), buildCreateEntity)
}

func NewCreateArcCommand(eps epsilon.Policy) *Command[CreateEntityInput] {
	return New(validateCreateEntity(eps), buildCreateEntity)
}

func NewCreatePolylineCommand(eps epsilon.Policy) *Command[CreateEntityInput] {
	return New(validateCreateEntity(eps), buildCreateEntity)
}

func NewCreateRectCommand(eps epsilon.Policy) *Command[CreateEntityInput] {
	return New(validateCreateEntity(eps), buildCreateEntity)
}

// RectGeom builds the closed-polyline Geom2D for an axis-aligned rectangle
// with corners a and the diagonally opposite corner b, the shape
// CreateRect previews. CreateRect is not its own Geom2D kind; it is a
// 4-point closed Polyline.
func RectGeom(a, b geom.Vec2) geom.Geom2D {
	pts := []geom.Vec2{
		{X: a.X, Y: a.Y},
		{X: b.X, Y: a.Y},
		{X: b.X, Y: b.Y},
		{X: a.X, Y: b.Y},
	}
	return geom.Polyline(pts, true)
}

// createEntityDelta appends a new Entity for the whole CreateLine/Rect/
// Circle/Arc/Polyline family. The entity id is assigned on first Apply and
// memoized so Revert always removes the same entity, even across an
// intervening redo.
type createEntityDelta struct {
	layerID uuid.UUID
	geom    geom.Geom2D
	style   map[string]any
	tags    []string

	mu       sync.Mutex
	cached   bool
	entityID uuid.UUID
	// wasNil records whether doc.Entities was nil before the latest Apply,
	// so Revert can restore nil rather than an empty slice.
	wasNil bool
}

func (d *createEntityDelta) sealed() {}

func (d *createEntityDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	layer, ok := doc.ResolveLayer(d.layerID.String())
	if !ok {
		return reason.New(reason.ModelReferenceNotFound).WithParam("layer_id", d.layerID.String())
	}
	if !layer.EditAllowed() {
		return reason.New(reason.EditTargetLockedOrHidden).WithParam("layer_id", d.layerID.String())
	}

	if !d.cached {
		d.entityID = uuid.New()
		d.cached = true
	}
	d.wasNil = doc.Entities == nil
	doc.Entities = append(doc.Entities, model.Entity{
		ID:      d.entityID,
		LayerID: d.layerID,
		Geom:    d.geom,
		Style:   d.style,
		Tags:    d.tags,
	})
	return nil
}

func (d *createEntityDelta) Revert(doc *model.Document) *reason.Reason {
	idx := doc.EntityIndex(d.entityID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", d.entityID.String())
	}
	doc.Entities = append(doc.Entities[:idx], doc.Entities[idx+1:]...)
	if d.wasNil && len(doc.Entities) == 0 {
		doc.Entities = nil
	}
	return nil
}
