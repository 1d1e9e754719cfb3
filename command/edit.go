package command

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

func resolveEditableEntity(doc *model.Document, id uuid.UUID) (model.Entity, int, *reason.Reason) {
	idx := doc.EntityIndex(id.String())
	if idx < 0 {
		return model.Entity{}, -1, reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", id.String())
	}
	e := doc.Entities[idx]
	layer, ok := doc.ResolveLayer(e.LayerID.String())
	if !ok {
		return model.Entity{}, -1, reason.New(reason.ModelReferenceNotFound).WithParam("layer_id", e.LayerID.String())
	}
	if !layer.EditAllowed() {
		return model.Entity{}, -1, reason.New(reason.EditTargetLockedOrHidden).WithParam("layer_id", e.LayerID.String())
	}
	return e, idx, nil
}

// --- OffsetEntity ---------------------------------------------------------

// OffsetEntityInput is the preview payload for OffsetEntity.
type OffsetEntityInput struct {
	EntityID uuid.UUID
	Distance float64
}

func makeValidateOffset(eps epsilon.Policy) Validate[OffsetEntityInput] {
	return func(in OffsetEntityInput) *reason.Reason {
		if !epsilon.IsFinite(in.Distance) {
			return reason.New(reason.EditInvalidNumeric)
		}
		return nil
	}
}

func makeBuildOffset(eps epsilon.Policy) Build[OffsetEntityInput] {
	return func(in OffsetEntityInput) (Delta, *reason.Reason) {
		return &offsetEntityDelta{entityID: in.EntityID, distance: in.Distance, eps: eps}, nil
	}
}

// NewOffsetEntityCommand offsets an entity's geometry and appends the
// result as a new entity on the same layer.
func NewOffsetEntityCommand(eps epsilon.Policy) *Command[OffsetEntityInput] {
	return New(makeValidateOffset(eps), makeBuildOffset(eps))
}

type offsetEntityDelta struct {
	entityID uuid.UUID
	distance float64
	eps      epsilon.Policy

	mu           sync.Mutex
	cached       bool
	newEntityID  uuid.UUID
	computedGeom geom.Geom2D
	layerID      uuid.UUID
}

func (d *offsetEntityDelta) sealed() {}

func (d *offsetEntityDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.cached {
		src, _, r := resolveEditableEntity(doc, d.entityID)
		if r != nil {
			return r
		}
		g, r2 := geom.Offset(src.Geom, d.distance, d.eps)
		if r2 != nil {
			return r2
		}
		d.computedGeom = g
		d.layerID = src.LayerID
		d.newEntityID = uuid.New()
		d.cached = true
	}
	doc.Entities = append(doc.Entities, model.Entity{
		ID:      d.newEntityID,
		LayerID: d.layerID,
		Geom:    d.computedGeom,
	})
	return nil
}

func (d *offsetEntityDelta) Revert(doc *model.Document) *reason.Reason {
	idx := doc.EntityIndex(d.newEntityID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", d.newEntityID.String())
	}
	doc.Entities = append(doc.Entities[:idx], doc.Entities[idx+1:]...)
	return nil
}

// --- TrimEntity ------------------------------------------------------------

// TrimEntityInput is the preview payload for TrimEntity.
// CandidateIndex disambiguates which ranked intersection candidate to
// trim to when the boundary crosses the target more than once and the
// top two candidates tie (EditTrimAmbiguousCandidate); nil lets the
// engine pick the unambiguous nearest candidate or fail if none exists.
type TrimEntityInput struct {
	EntityID       uuid.UUID
	Boundary       geom.Geom2D
	KeepNear       geom.Vec2
	CandidateIndex *int
}

func makeValidateTrim(eps epsilon.Policy) Validate[TrimEntityInput] {
	return func(in TrimEntityInput) *reason.Reason {
		if r := in.Boundary.Validate(eps); r != nil {
			return reason.New(reason.EditInvalidNumeric).WithDebug("cause", r.Error())
		}
		return nil
	}
}

func makeBuildTrim(eps epsilon.Policy) Build[TrimEntityInput] {
	return func(in TrimEntityInput) (Delta, *reason.Reason) {
		return &trimEntityDelta{
			entityID:       in.EntityID,
			boundary:       in.Boundary,
			keepNear:       in.KeepNear,
			candidateIndex: in.CandidateIndex,
			eps:            eps,
		}, nil
	}
}

// NewTrimEntityCommand trims an entity in place against a boundary
// geometry near a pick point.
func NewTrimEntityCommand(eps epsilon.Policy) *Command[TrimEntityInput] {
	return New(makeValidateTrim(eps), makeBuildTrim(eps))
}

type trimEntityDelta struct {
	entityID       uuid.UUID
	boundary       geom.Geom2D
	keepNear       geom.Vec2
	candidateIndex *int
	eps            epsilon.Policy

	mu     sync.Mutex
	cached bool
	before geom.Geom2D
	after  geom.Geom2D
}

func (d *trimEntityDelta) sealed() {}

func (d *trimEntityDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := doc.EntityIndex(d.entityID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", d.entityID.String())
	}

	if !d.cached {
		src, _, r := resolveEditableEntity(doc, d.entityID)
		if r != nil {
			return r
		}
		var trimmed geom.Geom2D
		var terr *reason.Reason
		if src.Geom.Kind == geom.KindPolyline {
			trimmed, terr = geom.TrimPolylineToIntersection(src.Geom, d.boundary, d.keepNear, d.eps, d.candidateIndex)
		} else {
			trimmed, terr = geom.TrimLineToIntersection(src.Geom, d.boundary, d.keepNear, d.eps, d.candidateIndex)
		}
		if terr != nil {
			return terr
		}
		d.before = src.Geom
		d.after = trimmed
		d.cached = true
	}
	doc.Entities[idx].Geom = d.after
	return nil
}

func (d *trimEntityDelta) Revert(doc *model.Document) *reason.Reason {
	idx := doc.EntityIndex(d.entityID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", d.entityID.String())
	}
	doc.Entities[idx].Geom = d.before
	return nil
}

// --- TransformSelection ----------------------------------------------------

// TransformKind enumerates the TransformSelection variants.
type TransformKind string

const (
	TransformTranslate TransformKind = "Translate"
	TransformRotate    TransformKind = "Rotate"
	TransformScale     TransformKind = "Scale"
)

// TransformSelectionInput is the preview payload for TransformSelection.
// Only the fields relevant to Kind are meaningful.
type TransformSelectionInput struct {
	EntityIDs []uuid.UUID
	Kind      TransformKind
	DX, DY    float64
	Center    geom.Vec2
	Angle     float64
	SX, SY    float64
}

func validateTransformSelection(in TransformSelectionInput) *reason.Reason {
	if len(in.EntityIDs) == 0 {
		return reason.New(reason.EditNoSelection)
	}
	switch in.Kind {
	case TransformTranslate:
		if !epsilon.IsFinite(in.DX) || !epsilon.IsFinite(in.DY) {
			return reason.New(reason.EditInvalidNumeric)
		}
	case TransformRotate:
		if !epsilon.IsFinite(in.Angle) {
			return reason.New(reason.EditInvalidNumeric)
		}
	case TransformScale:
		if !epsilon.IsFinite(in.SX) || !epsilon.IsFinite(in.SY) {
			return reason.New(reason.EditInvalidNumeric)
		}
		if math.Abs(in.SX) < 1e-9 || math.Abs(in.SY) < 1e-9 {
			return reason.New(reason.EditTransformWouldDegenerate)
		}
	default:
		return reason.New(reason.EditInvalidNumeric).WithDebug("reason", "unknown_transform_kind")
	}
	return nil
}

func buildTransformSelection(in TransformSelectionInput) (Delta, *reason.Reason) {
	return &transformSelectionDelta{input: in}, nil
}

// NewTransformSelectionCommand applies a translate/rotate/scale to every
// selected entity.
func NewTransformSelectionCommand() *Command[TransformSelectionInput] {
	return New(validateTransformSelection, buildTransformSelection)
}

type transformSelectionDelta struct {
	input TransformSelectionInput

	mu     sync.Mutex
	cached bool
	before []geom.Geom2D
	after  []geom.Geom2D
}

func (d *transformSelectionDelta) sealed() {}

func (d *transformSelectionDelta) Apply(doc *model.Document) *reason.Reason {
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
		before := make([]geom.Geom2D, len(indices))
		after := make([]geom.Geom2D, len(indices))
		for i, idx := range indices {
			before[i] = doc.Entities[idx].Geom
			g, r := applyTransform(doc.Entities[idx].Geom, d.input)
			if r != nil {
				return r
			}
			after[i] = g
		}
		d.before, d.after = before, after
		d.cached = true
	}

	for i, idx := range indices {
		doc.Entities[idx].Geom = d.after[i]
	}
	return nil
}

func (d *transformSelectionDelta) Revert(doc *model.Document) *reason.Reason {
	for i := len(d.input.EntityIDs) - 1; i >= 0; i-- {
		idx := doc.EntityIndex(d.input.EntityIDs[i].String())
		if idx < 0 {
			return reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", d.input.EntityIDs[i].String())
		}
		doc.Entities[idx].Geom = d.before[i]
	}
	return nil
}

func applyTransform(g geom.Geom2D, in TransformSelectionInput) (geom.Geom2D, *reason.Reason) {
	tp := func(p geom.Vec2) geom.Vec2 {
		switch in.Kind {
		case TransformTranslate:
			return geom.Vec2{X: p.X + in.DX, Y: p.Y + in.DY}
		case TransformRotate:
			cosA, sinA := math.Cos(in.Angle), math.Sin(in.Angle)
			dx, dy := p.X-in.Center.X, p.Y-in.Center.Y
			return geom.Vec2{
				X: in.Center.X + dx*cosA - dy*sinA,
				Y: in.Center.Y + dx*sinA + dy*cosA,
			}
		case TransformScale:
			return geom.Vec2{
				X: in.Center.X + (p.X-in.Center.X)*in.SX,
				Y: in.Center.Y + (p.Y-in.Center.Y)*in.SY,
			}
		}
		return p
	}

	switch g.Kind {
	case geom.KindLine:
		return geom.Line(tp(g.A), tp(g.B)), nil
	case geom.KindCircle:
		if in.Kind == TransformScale && math.Abs(in.SX-in.SY) > 1e-9 {
			return geom.Geom2D{}, reason.New(reason.EditTransformWouldDegenerate).
				WithDebug("reason", "circle_requires_isotropic_scale")
		}
		r := g.R
		if in.Kind == TransformScale {
			r *= math.Abs(in.SX)
		}
		return geom.Circle(tp(g.C), r), nil
	case geom.KindArc:
		if in.Kind == TransformScale && math.Abs(in.SX-in.SY) > 1e-9 {
			return geom.Geom2D{}, reason.New(reason.EditTransformWouldDegenerate).
				WithDebug("reason", "arc_requires_isotropic_scale")
		}
		r := g.R
		if in.Kind == TransformScale {
			r *= math.Abs(in.SX)
		}
		ccw := g.CCW
		start, end := g.StartAngle, g.EndAngle
		switch in.Kind {
		case TransformRotate:
			start, end = start+in.Angle, end+in.Angle
		case TransformScale:
			if (in.SX < 0) != (in.SY < 0) {
				ccw = !ccw
			}
			if in.SX < 0 || in.SY < 0 {
				sx, sy := math.Copysign(1, in.SX), math.Copysign(1, in.SY)
				start = math.Atan2(sy*math.Sin(start), sx*math.Cos(start))
				end = math.Atan2(sy*math.Sin(end), sx*math.Cos(end))
			}
		}
		return geom.NormalizedArc(tp(g.C), r, start, end, ccw), nil
	case geom.KindPolyline:
		pts := make([]geom.Vec2, len(g.Pts))
		for i, p := range g.Pts {
			pts[i] = tp(p)
		}
		return geom.Polyline(pts, g.Closed), nil
	default:
		return geom.Geom2D{}, reason.New(reason.EditInvalidNumeric)
	}
}
