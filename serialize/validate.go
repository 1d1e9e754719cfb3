package serialize

import "github.com/teru1991/craftcad/reason"

// validateManifest checks the manifest's required-field contract: a
// supported schema_version, non-empty app identity, the fixed document and
// assets paths. Validation errors are collected (cap 20, though this small
// struct will never approach that) into reason.debug.errors exactly like
// model.Document.Validate.
func validateManifest(m Manifest) *reason.Reason {
	var errs []string
	if m.SchemaVersion != 1 {
		errs = append(errs, "schema_version must be 1")
	}
	if m.App.Name == "" {
		errs = append(errs, "app.name must be non-empty")
	}
	if m.App.Version == "" {
		errs = append(errs, "app.version must be non-empty")
	}
	if m.CreatedAt == "" {
		errs = append(errs, "created_at must be non-empty")
	}
	if m.DocumentPath != DocPath {
		errs = append(errs, "document_path must equal \""+DocPath+"\"")
	}
	if m.AssetsPath != AssetsDir {
		errs = append(errs, "assets_path must equal \""+AssetsDir+"\"")
	}
	if len(errs) == 0 {
		return nil
	}
	return reason.New(reason.SerializeSchemaValidationFailed).WithDebug("errors", errs)
}
