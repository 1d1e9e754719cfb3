// Package serialize reads and writes the .diycad document archive: a ZIP
// containing manifest.json, data/document.json, and an assets/ directory.
// Validation runs over the already-typed Go structs via
// model.Document.Validate — "schema validation" here means exhaustive
// structural checks over the decoded graph, not a compiled schema engine.
package serialize
