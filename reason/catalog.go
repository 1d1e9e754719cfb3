package reason

// Code is a domain-prefixed reason identifier. Valid codes are exactly the
// keys of catalog; Code is a defined string type (not a raw string) so
// catalog membership can be checked without a separate enum.
type Code string

// Domain prefixes. Every Code's first underscore segment must equal one
// of these.
const (
	domainGeom      = "GEOM"
	domainEdit      = "EDIT"
	domainDraw      = "DRAW"
	domainPart      = "PART"
	domainFace      = "FACE"
	domainNest      = "NEST"
	domainSerialize = "SERIALIZE"
	domainExport    = "EXPORT"
	domainModel     = "MODEL"
	domainCore      = "CORE"
	domainBOM       = "BOM"
	domainMaterial  = "MATERIAL"
)

// Closed catalog of reason codes. Every code the engine may raise is
// declared here and registered with its domain and severity in catalog
// below; catalog_test.go checks that one code from each domain carries a
// registered domain prefix.
const (
	// --- geometry (C2) ---
	GeomInvalidNumeric         Code = "GEOM_INVALID_NUMERIC"
	GeomDegenerate             Code = "GEOM_DEGENERATE"
	GeomCircleRadiusInvalid    Code = "GEOM_CIRCLE_RADIUS_INVALID"
	GeomArcRangeInvalid        Code = "GEOM_ARC_RANGE_INVALID"
	GeomNoIntersection         Code = "GEOM_NO_INTERSECTION"
	GeomIntersectionAmbiguous  Code = "GEOM_INTERSECTION_AMBIGUOUS"
	GeomFallbackLimitReached   Code = "GEOM_FALLBACK_LIMIT_REACHED"
	GeomSplitPointNotOnGeom    Code = "GEOM_SPLIT_POINT_NOT_ON_GEOM"
	GeomOffsetNotSupported     Code = "GEOM_OFFSET_NOT_SUPPORTED"
	GeomOffsetSelfIntersection Code = "GEOM_OFFSET_SELF_INTERSECTION"
	GeomTrimNoIntersection     Code = "GEOM_TRIM_NO_INTERSECTION"

	// --- edit ---
	EditTargetLockedOrHidden     Code = "EDIT_TARGET_LOCKED_OR_HIDDEN"
	EditTrimAmbiguousCandidate   Code = "EDIT_TRIM_AMBIGUOUS_CANDIDATE"
	EditInvalidNumeric           Code = "EDIT_INVALID_NUMERIC"
	EditNoSelection              Code = "EDIT_NO_SELECTION"
	EditTransformWouldDegenerate Code = "EDIT_TRANSFORM_WOULD_DEGENERATE"
	EditMirrorAxisInvalid        Code = "EDIT_MIRROR_AXIS_INVALID"
	EditFilletRadiusTooLarge     Code = "EDIT_FILLET_RADIUS_TOO_LARGE"
	EditChamferDistanceTooLarge  Code = "EDIT_CHAMFER_DISTANCE_TOO_LARGE"

	// --- draw (draw-time input validation) ---
	DrawInvalidNumeric    Code = "DRAW_INVALID_NUMERIC"
	DrawInsufficientInput Code = "DRAW_INSUFFICIENT_INPUT"

	// --- part ---
	PartInvalidOutline Code = "PART_INVALID_OUTLINE"
	PartInvalidField   Code = "PART_INVALID_FIELD"

	// --- face (C3) ---
	FaceNoClosedLoop     Code = "FACE_NO_CLOSED_LOOP"
	FaceSelfIntersection Code = "FACE_SELF_INTERSECTION"
	FaceAmbiguousLoop    Code = "FACE_AMBIGUOUS_LOOP"

	// --- nest (C8) ---
	NestPartTooLargeForAnySheet             Code = "NEST_PART_TOO_LARGE_FOR_ANY_SHEET"
	NestNoFeasiblePositionWithMarginAndKerf Code = "NEST_NO_FEASIBLE_POSITION_WITH_MARGIN_AND_KERF"
	NestInternalInfeasible                  Code = "NEST_INTERNAL_INFEASIBLE"
	NestStoppedByTimeLimit                  Code = "NEST_STOPPED_BY_TIME_LIMIT"
	NestStoppedByIterationLimit             Code = "NEST_STOPPED_BY_ITERATION_LIMIT"

	// --- serialize (C4/C5) ---
	SerializeSchemaValidationFailed   Code = "SERIALIZE_SCHEMA_VALIDATION_FAILED"
	SerializePackageCorrupted         Code = "SERIALIZE_PACKAGE_CORRUPTED"
	SerializeUnsupportedSchemaVersion Code = "SERIALIZE_UNSUPPORTED_SCHEMA_VERSION"

	// --- export (an external collaborator surface; kept so downstream
	// exporters have a stable code to raise without inventing their own
	// prefix) ---
	ExportUnsupportedEntity  Code = "EXPORT_UNSUPPORTED_ENTITY"
	ExportUnsupportedFeature Code = "EXPORT_UNSUPPORTED_FEATURE"

	// --- model (document graph references) ---
	ModelReferenceNotFound Code = "MODEL_REFERENCE_NOT_FOUND"

	// --- core (invariants / concurrency) ---
	CoreInvariantViolation Code = "CORE_INVARIANT_VIOLATION"

	// --- bom (external collaborator surface; stable code reserved) ---
	BOMPartUnresolved Code = "BOM_PART_UNRESOLVED"

	// --- material ---
	MaterialNotFound Code = "MATERIAL_NOT_FOUND"
)

type catalogEntry struct {
	domain   string
	severity Severity
}

// catalog is the authoritative registry: Code → (domain prefix, severity).
// New() rejects any Code absent from this map. Keep it and the exported
// Code constants above in lockstep: New panics on a constant missing here.
var catalog = map[Code]catalogEntry{
	GeomInvalidNumeric:         {domainGeom, Error},
	GeomDegenerate:             {domainGeom, Error},
	GeomCircleRadiusInvalid:    {domainGeom, Error},
	GeomArcRangeInvalid:        {domainGeom, Error},
	GeomNoIntersection:         {domainGeom, Info},
	GeomIntersectionAmbiguous:  {domainGeom, Warn},
	GeomFallbackLimitReached:   {domainGeom, Error},
	GeomSplitPointNotOnGeom:    {domainGeom, Error},
	GeomOffsetNotSupported:     {domainGeom, Error},
	GeomOffsetSelfIntersection: {domainGeom, Error},
	GeomTrimNoIntersection:     {domainGeom, Info},

	EditTargetLockedOrHidden:     {domainEdit, Error},
	EditTrimAmbiguousCandidate:   {domainEdit, Warn},
	EditInvalidNumeric:           {domainEdit, Error},
	EditNoSelection:              {domainEdit, Error},
	EditTransformWouldDegenerate: {domainEdit, Error},
	EditMirrorAxisInvalid:        {domainEdit, Error},
	EditFilletRadiusTooLarge:     {domainEdit, Error},
	EditChamferDistanceTooLarge:  {domainEdit, Error},

	DrawInvalidNumeric:    {domainDraw, Error},
	DrawInsufficientInput: {domainDraw, Error},

	PartInvalidOutline: {domainPart, Error},
	PartInvalidField:   {domainPart, Error},

	FaceNoClosedLoop:     {domainFace, Error},
	FaceSelfIntersection: {domainFace, Error},
	FaceAmbiguousLoop:    {domainFace, Error},

	NestPartTooLargeForAnySheet:             {domainNest, Warn},
	NestNoFeasiblePositionWithMarginAndKerf: {domainNest, Warn},
	NestInternalInfeasible:                  {domainNest, Fatal},
	NestStoppedByTimeLimit:                  {domainNest, Info},
	NestStoppedByIterationLimit:             {domainNest, Info},

	SerializeSchemaValidationFailed:   {domainSerialize, Error},
	SerializePackageCorrupted:         {domainSerialize, Fatal},
	SerializeUnsupportedSchemaVersion: {domainSerialize, Fatal},

	ExportUnsupportedEntity:  {domainExport, Error},
	ExportUnsupportedFeature: {domainExport, Error},

	ModelReferenceNotFound: {domainModel, Error},

	CoreInvariantViolation: {domainCore, Fatal},

	BOMPartUnresolved: {domainBOM, Error},

	MaterialNotFound: {domainMaterial, Error},
}
