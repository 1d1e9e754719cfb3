// Package model defines the document graph: Layer, Entity,
// Part, Material, SheetDef, NestJob, Settings, and the Document that owns
// them. Validate and Normalize implement the load-time contract: inject
// missing optional collections, reject an unsupported schema_version, and
// check every cross-reference (entity→layer, part→material, part_ref→part)
// resolves.
//
// Every identifier in this graph is a uuid.UUID, generated at construction
// time by the command layer, not by this package.
package model
