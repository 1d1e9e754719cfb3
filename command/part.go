package command

import (
	"sync"

	"github.com/google/uuid"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/face"
	"github.com/teru1991/craftcad/geom"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

// CreatePartInput is the preview payload for CreatePart: an
// already-known outline plus the part's fabrication metadata.
type CreatePartInput struct {
	Name        string
	Outline     model.Polygon2D
	Thickness   float64
	Quantity    uint32
	MaterialID  uuid.UUID
	GrainDir    *float64
	AllowRotate bool
	Margin      float64
	Kerf        float64
}

func validateCreatePart(in CreatePartInput) *reason.Reason {
	if in.Name == "" {
		return reason.New(reason.PartInvalidField).WithDebug("reason", "empty_name")
	}
	if len(in.Outline.Outer) < 3 {
		return reason.New(reason.PartInvalidOutline)
	}
	if in.Quantity < 1 {
		return reason.New(reason.PartInvalidField).WithDebug("reason", "quantity_lt_1")
	}
	if in.Thickness < 0 || in.Margin < 0 || in.Kerf < 0 {
		return reason.New(reason.PartInvalidField).WithDebug("reason", "negative_numeric")
	}
	return nil
}

func buildCreatePart(in CreatePartInput) (Delta, *reason.Reason) {
	return &createPartDelta{input: in}, nil
}

// NewCreatePartCommand builds a Part directly from an already-known
// outline.
func NewCreatePartCommand() *Command[CreatePartInput] {
	return New(validateCreatePart, buildCreatePart)
}

type createPartDelta struct {
	input CreatePartInput

	mu     sync.Mutex
	cached bool
	partID uuid.UUID
	wasNil bool // doc.Parts was nil before the latest Apply
}

func (d *createPartDelta) sealed() {}

func (d *createPartDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := materialByID(doc, d.input.MaterialID); !ok {
		return reason.New(reason.ModelReferenceNotFound).WithParam("material_id", d.input.MaterialID.String())
	}
	if !d.cached {
		d.partID = uuid.New()
		d.cached = true
	}
	d.wasNil = doc.Parts == nil
	doc.Parts = append(doc.Parts, model.Part{
		ID:          d.partID,
		Name:        d.input.Name,
		Outline:     d.input.Outline,
		Thickness:   d.input.Thickness,
		Quantity:    d.input.Quantity,
		MaterialID:  d.input.MaterialID,
		GrainDir:    d.input.GrainDir,
		AllowRotate: d.input.AllowRotate,
		Margin:      d.input.Margin,
		Kerf:        d.input.Kerf,
	})
	return nil
}

func (d *createPartDelta) Revert(doc *model.Document) *reason.Reason {
	idx := doc.PartIndex(d.partID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("part_id", d.partID.String())
	}
	doc.Parts = append(doc.Parts[:idx], doc.Parts[idx+1:]...)
	if d.wasNil && len(doc.Parts) == 0 {
		doc.Parts = nil
	}
	return nil
}

// CreatePartFromFaceInput is the preview payload for the face-derived
// CreatePart variant: the outline is
// not known yet, only the closed-polyline entities to extract it from.
type CreatePartFromFaceInput struct {
	EntityIDs   []uuid.UUID
	Name        string
	Thickness   float64
	Quantity    uint32
	MaterialID  uuid.UUID
	GrainDir    *float64
	AllowRotate bool
	Margin      float64
	Kerf        float64
}

func validateCreatePartFromFace(in CreatePartFromFaceInput) *reason.Reason {
	if len(in.EntityIDs) == 0 {
		return reason.New(reason.EditNoSelection)
	}
	if in.Name == "" {
		return reason.New(reason.PartInvalidField).WithDebug("reason", "empty_name")
	}
	if in.Quantity < 1 {
		return reason.New(reason.PartInvalidField).WithDebug("reason", "quantity_lt_1")
	}
	return nil
}

func makeBuildCreatePartFromFace(eps epsilon.Policy) Build[CreatePartFromFaceInput] {
	return func(in CreatePartFromFaceInput) (Delta, *reason.Reason) {
		return &createPartFromFaceDelta{input: in, eps: eps}, nil
	}
}

// NewCreatePartFromFaceCommand derives the Part's outline via face.Extract
// at Apply time, from the closed loops of the selected entities.
func NewCreatePartFromFaceCommand(eps epsilon.Policy) *Command[CreatePartFromFaceInput] {
	return New(validateCreatePartFromFace, makeBuildCreatePartFromFace(eps))
}

type createPartFromFaceDelta struct {
	input CreatePartFromFaceInput
	eps   epsilon.Policy

	mu      sync.Mutex
	cached  bool
	partID  uuid.UUID
	outline model.Polygon2D
	wasNil  bool // doc.Parts was nil before the latest Apply
}

func (d *createPartFromFaceDelta) sealed() {}

func (d *createPartFromFaceDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := materialByID(doc, d.input.MaterialID); !ok {
		return reason.New(reason.ModelReferenceNotFound).WithParam("material_id", d.input.MaterialID.String())
	}

	if !d.cached {
		var loops []geom.Geom2D
		for _, id := range d.input.EntityIDs {
			e, ok := doc.ResolveEntity(id.String())
			if !ok {
				return reason.New(reason.ModelReferenceNotFound).WithParam("entity_id", id.String())
			}
			loops = append(loops, e.Geom)
		}
		faces, r := face.Extract(loops, d.eps)
		if r != nil {
			return r
		}
		if len(faces) == 0 {
			return reason.New(reason.FaceNoClosedLoop)
		}
		d.outline = faces[0]
		d.partID = uuid.New()
		d.cached = true
	}

	d.wasNil = doc.Parts == nil
	doc.Parts = append(doc.Parts, model.Part{
		ID:          d.partID,
		Name:        d.input.Name,
		Outline:     d.outline,
		Thickness:   d.input.Thickness,
		Quantity:    d.input.Quantity,
		MaterialID:  d.input.MaterialID,
		GrainDir:    d.input.GrainDir,
		AllowRotate: d.input.AllowRotate,
		Margin:      d.input.Margin,
		Kerf:        d.input.Kerf,
	})
	return nil
}

func (d *createPartFromFaceDelta) Revert(doc *model.Document) *reason.Reason {
	idx := doc.PartIndex(d.partID.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("part_id", d.partID.String())
	}
	doc.Parts = append(doc.Parts[:idx], doc.Parts[idx+1:]...)
	if d.wasNil && len(doc.Parts) == 0 {
		doc.Parts = nil
	}
	return nil
}

// UpdatePartInput is the preview payload for UpdatePart: a
// full replacement payload keyed by the existing part's id.
type UpdatePartInput struct {
	ID      uuid.UUID
	Payload model.Part
}

func validateUpdatePart(in UpdatePartInput) *reason.Reason {
	if in.Payload.Name == "" {
		return reason.New(reason.PartInvalidField).WithDebug("reason", "empty_name")
	}
	if in.Payload.Quantity < 1 {
		return reason.New(reason.PartInvalidField).WithDebug("reason", "quantity_lt_1")
	}
	return nil
}

func buildUpdatePart(in UpdatePartInput) (Delta, *reason.Reason) {
	in.Payload.ID = in.ID
	return &updatePartDelta{id: in.ID, newPart: in.Payload}, nil
}

// NewUpdatePartCommand replaces a part's payload in place, keyed by id.
func NewUpdatePartCommand() *Command[UpdatePartInput] {
	return New(validateUpdatePart, buildUpdatePart)
}

type updatePartDelta struct {
	id      uuid.UUID
	newPart model.Part

	mu     sync.Mutex
	cached bool
	before model.Part
}

func (d *updatePartDelta) sealed() {}

func (d *updatePartDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := doc.PartIndex(d.id.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("part_id", d.id.String())
	}
	if !d.cached {
		d.before = doc.Parts[idx]
		d.cached = true
	}
	doc.Parts[idx] = d.newPart
	return nil
}

func (d *updatePartDelta) Revert(doc *model.Document) *reason.Reason {
	idx := doc.PartIndex(d.id.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("part_id", d.id.String())
	}
	doc.Parts[idx] = d.before
	return nil
}

// DeletePartInput is the preview payload for DeletePart.
type DeletePartInput struct {
	ID uuid.UUID
}

func validateDeletePart(in DeletePartInput) *reason.Reason {
	if in.ID == uuid.Nil {
		return reason.New(reason.EditNoSelection)
	}
	return nil
}

func buildDeletePart(in DeletePartInput) (Delta, *reason.Reason) {
	return &deletePartDelta{id: in.ID}, nil
}

// NewDeletePartCommand removes a part by id.
func NewDeletePartCommand() *Command[DeletePartInput] {
	return New(validateDeletePart, buildDeletePart)
}

type deletePartDelta struct {
	id uuid.UUID

	mu          sync.Mutex
	cached      bool
	before      model.Part
	beforeIndex int
}

func (d *deletePartDelta) sealed() {}

func (d *deletePartDelta) Apply(doc *model.Document) *reason.Reason {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := doc.PartIndex(d.id.String())
	if idx < 0 {
		return reason.New(reason.ModelReferenceNotFound).WithParam("part_id", d.id.String())
	}
	if !d.cached {
		d.before = doc.Parts[idx]
		d.beforeIndex = idx
		d.cached = true
	}
	doc.Parts = append(doc.Parts[:idx], doc.Parts[idx+1:]...)
	return nil
}

func (d *deletePartDelta) Revert(doc *model.Document) *reason.Reason {
	idx := d.beforeIndex
	if idx < 0 || idx > len(doc.Parts) {
		idx = len(doc.Parts)
	}
	doc.Parts = append(doc.Parts, model.Part{})
	copy(doc.Parts[idx+1:], doc.Parts[idx:])
	doc.Parts[idx] = d.before
	return nil
}

func materialByID(doc *model.Document, id uuid.UUID) (model.Material, bool) {
	for _, m := range doc.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return model.Material{}, false
}
