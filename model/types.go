package model

import (
	"github.com/google/uuid"

	"github.com/teru1991/craftcad/geom"
)

// SchemaVersion is the only schema_version a Document may declare on load
// of a document. There has never been a version 2.
const SchemaVersion = 1

// Units are the only supported unit tokens.
const (
	UnitsMM   = "mm"
	UnitsInch = "inch"
)

// Layer groups entities under shared visibility/edit permissions.
type Layer struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Visible  bool      `json:"visible"`
	Locked   bool      `json:"locked"`
	Editable bool      `json:"editable"`
}

// EditAllowed reports whether an entity on this layer may be mutated: visible,
// unlocked, and editable.
func (l Layer) EditAllowed() bool {
	return l.Visible && !l.Locked && l.Editable
}

// Entity is a single geometric object placed on a layer.
type Entity struct {
	ID      uuid.UUID      `json:"id"`
	LayerID uuid.UUID      `json:"layer_id"`
	Geom    geom.Geom2D    `json:"geom"`
	Style   map[string]any `json:"style,omitempty"`
	Tags    []string       `json:"tags,omitempty"`
	Meta    []MetaEntry    `json:"meta,omitempty"`
}

// MetaEntry is one ordered key→value pair of Entity.Meta. A plain map would
// lose the insertion order meta is defined to preserve.
type MetaEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Polygon2D is the output shape of face extraction: one
// outer ring (CCW) and zero or more hole rings (CW).
type Polygon2D struct {
	Outer []geom.Vec2   `json:"outer"`
	Holes [][]geom.Vec2 `json:"holes,omitempty"`
}

// MaterialCategory enumerates Material.Category.
type MaterialCategory string

const (
	MaterialWood    MaterialCategory = "Wood"
	MaterialLeather MaterialCategory = "Leather"
	MaterialOther   MaterialCategory = "Other"
)

// Material is a sheet-stock material reference.
type Material struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Category       MaterialCategory `json:"category"`
	ThicknessMM    *float64         `json:"thickness_mm,omitempty"`
	SheetDefaultID *uuid.UUID       `json:"sheet_default,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// Part is a nestable outline cut from a Material.
type Part struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Outline     Polygon2D `json:"outline"`
	Thickness   float64   `json:"thickness"`
	Quantity    uint32    `json:"quantity"`
	MaterialID  uuid.UUID `json:"material_id"`
	GrainDir    *float64  `json:"grain_dir,omitempty"`
	AllowRotate bool      `json:"allow_rotate"`
	Margin      float64   `json:"margin"`
	Kerf        float64   `json:"kerf"`
}

// SheetDef describes a physical stock sheet available for nesting.
type SheetDef struct {
	ID         uuid.UUID `json:"id"`
	MaterialID uuid.UUID `json:"material_id"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Quantity   uint32    `json:"quantity"`
}

// GrainPolicy governs how strictly nesting respects Part.GrainDir.
type GrainPolicy string

const (
	GrainStrict GrainPolicy = "Strict"
	GrainPrefer GrainPolicy = "Prefer"
	GrainIgnore GrainPolicy = "Ignore"
)

// NestConstraints bounds what the nesting engine may do with a job.
type NestConstraints struct {
	GlobalMargin       float64     `json:"global_margin"`
	GlobalKerf         float64     `json:"global_kerf"`
	AllowRotateDefault bool        `json:"allow_rotate_default"`
	NoGoZones          []Polygon2D `json:"no_go_zones,omitempty"`
	GrainPolicy        GrainPolicy `json:"grain_policy"`
}

// NestObjective weights the nesting score function.
type NestObjective struct {
	WUtilization float64 `json:"w_utilization"`
	WSheetCount  float64 `json:"w_sheet_count"`
	WCutCount    float64 `json:"w_cut_count"`
}

// PartRef is one requested instance of a Part within a NestJob, optionally
// overriding its quantity.
type PartRef struct {
	PartID           uuid.UUID `json:"part_id"`
	QuantityOverride *uint32   `json:"quantity_override,omitempty"`
}

// NestJob is a nesting run request plus its most recent result/trace.
type NestJob struct {
	ID          uuid.UUID       `json:"id"`
	SheetDefs   []SheetDef      `json:"sheet_defs"`
	PartsRef    []PartRef       `json:"parts_ref"`
	Constraints NestConstraints `json:"constraints"`
	Objective   NestObjective   `json:"objective"`
	Seed        uint64          `json:"seed"`
	Result      *NestResult     `json:"result,omitempty"`
	Trace       *NestTrace      `json:"trace,omitempty"`
}

// Settings is the document-level configuration bag: a small typed object
// rather than a bare map, so normalization has concrete fields to default.
type Settings struct {
	Units       string   `json:"units,omitempty"`
	RecentFiles []string `json:"recent_files,omitempty"`
}

// Document is the root of the CAD model graph.
type Document struct {
	SchemaVersion int        `json:"schema_version"`
	ID            uuid.UUID  `json:"id"`
	Units         string     `json:"units"`
	Layers        []Layer    `json:"layers"`
	Entities      []Entity   `json:"entities"`
	Parts         []Part     `json:"parts"`
	Jobs          []NestJob  `json:"jobs"`
	Materials     []Material `json:"materials"`
	Settings      Settings   `json:"settings"`
}
