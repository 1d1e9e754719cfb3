package model

import (
	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/reason"
)

// Normalize applies the load-time defaulting pass: inject empty
// Materials/Settings when the decoded document omitted them.
// Call this once right after decoding, before Validate.
func (d *Document) Normalize() {
	if d.Materials == nil {
		d.Materials = []Material{}
	}
	if d.Settings.Units == "" {
		d.Settings.Units = d.Units
	}
}

// Validate checks the cross-reference and schema-version invariants:
// schema_version must be SchemaVersion, units must be a
// recognized token, and every entity.layer_id / part.material_id /
// part_ref.part_id must resolve within the document.
func (d *Document) Validate(eps epsilon.Policy) *reason.Reason {
	if d.SchemaVersion != SchemaVersion {
		return reason.New(reason.SerializeUnsupportedSchemaVersion).
			WithParam("schema_version", d.SchemaVersion)
	}
	if d.Units != UnitsMM && d.Units != UnitsInch {
		return reason.New(reason.SerializeSchemaValidationFailed).
			WithDebug("errors", []string{"units must be \"mm\" or \"inch\""})
	}

	layerIDs := make(map[string]Layer, len(d.Layers))
	for _, l := range d.Layers {
		layerIDs[l.ID.String()] = l
	}
	materialIDs := make(map[string]struct{}, len(d.Materials))
	for _, m := range d.Materials {
		materialIDs[m.ID.String()] = struct{}{}
	}
	partIDs := make(map[string]struct{}, len(d.Parts))
	for _, p := range d.Parts {
		partIDs[p.ID.String()] = struct{}{}
	}

	var errs []string
	for _, e := range d.Entities {
		if _, ok := layerIDs[e.LayerID.String()]; !ok {
			errs = append(errs, "entity "+e.ID.String()+": unresolved layer_id")
		}
		if verr := e.Geom.Validate(eps); verr != nil {
			errs = append(errs, "entity "+e.ID.String()+": "+verr.Error())
		}
	}
	for _, p := range d.Parts {
		if _, ok := materialIDs[p.MaterialID.String()]; !ok {
			errs = append(errs, "part "+p.ID.String()+": unresolved material_id")
		}
		if p.Name == "" {
			errs = append(errs, "part "+p.ID.String()+": name must be non-empty")
		}
		if p.Quantity < 1 {
			errs = append(errs, "part "+p.ID.String()+": quantity must be >= 1")
		}
	}
	for _, j := range d.Jobs {
		for _, ref := range j.PartsRef {
			if _, ok := partIDs[ref.PartID.String()]; !ok {
				errs = append(errs, "job "+j.ID.String()+": unresolved parts_ref "+ref.PartID.String())
			}
		}
		for _, sd := range j.SheetDefs {
			if sd.Width <= 0 || sd.Height <= 0 {
				errs = append(errs, "sheet "+sd.ID.String()+": width and height must be positive")
			}
			if sd.Quantity < 1 {
				errs = append(errs, "sheet "+sd.ID.String()+": quantity must be >= 1")
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	if len(errs) > 20 {
		errs = errs[:20]
	}
	return reason.New(reason.SerializeSchemaValidationFailed).WithDebug("errors", errs)
}

// ResolveLayer returns the layer by id, or false if it does not exist.
func (d *Document) ResolveLayer(id string) (Layer, bool) {
	for _, l := range d.Layers {
		if l.ID.String() == id {
			return l, true
		}
	}
	return Layer{}, false
}

// ResolvePart returns the part by id, or false if it does not exist.
func (d *Document) ResolvePart(id string) (Part, bool) {
	for _, p := range d.Parts {
		if p.ID.String() == id {
			return p, true
		}
	}
	return Part{}, false
}

// ResolveEntity returns the entity by id, or false if it does not exist.
func (d *Document) ResolveEntity(id string) (Entity, bool) {
	for _, e := range d.Entities {
		if e.ID.String() == id {
			return e, true
		}
	}
	return Entity{}, false
}

// ResolveJob returns the nest job by id, or false if it does not exist.
func (d *Document) ResolveJob(id string) (NestJob, bool) {
	for _, j := range d.Jobs {
		if j.ID.String() == id {
			return j, true
		}
	}
	return NestJob{}, false
}

// PartIndex returns the index of the part with the given id in d.Parts,
// or -1 if it is not present.
func (d *Document) PartIndex(id string) int {
	for i, p := range d.Parts {
		if p.ID.String() == id {
			return i
		}
	}
	return -1
}

// EntityIndex returns the index of the entity with the given id in
// d.Entities, or -1 if it is not present.
func (d *Document) EntityIndex(id string) int {
	for i, e := range d.Entities {
		if e.ID.String() == id {
			return i
		}
	}
	return -1
}

// JobIndex returns the index of the nest job with the given id in
// d.Jobs, or -1 if it is not present.
func (d *Document) JobIndex(id string) int {
	for i, j := range d.Jobs {
		if j.ID.String() == id {
			return i
		}
	}
	return -1
}
