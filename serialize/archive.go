package serialize

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/model"
	"github.com/teru1991/craftcad/reason"
)

// Save writes doc to path as a .diycad archive: manifest.json,
// data/document.json, and an assets/ directory, in that fixed order so two
// saves of the same document are byte-comparable. appName/
// appVersion stamp Manifest.App; manifest.SettingsDigest is computed from
// doc.Settings before any bytes are written.
func Save(path string, doc *model.Document, appName, appVersion string) *reason.Reason {
	f, err := os.Create(path)
	if err != nil {
		return reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	m := NewManifest(appName, appVersion)
	m.SettingsDigest = DigestSettings(doc.Settings)
	if r := validateManifest(m); r != nil {
		return r
	}

	manifestBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}
	if r := writeZipFile(zw, ManifestPath, manifestBytes); r != nil {
		return r
	}

	if _, err := zw.Create(DocDir); err != nil {
		return reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}

	docBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}
	if r := writeZipFile(zw, DocPath, docBytes); r != nil {
		return r
	}

	if _, err := zw.Create(AssetsDir); err != nil {
		return reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}

	return nil
}

func writeZipFile(zw *zip.Writer, name string, content []byte) *reason.Reason {
	w, err := zw.Create(name)
	if err != nil {
		return reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error()).WithDebug("entry", name)
	}
	if _, err := w.Write(content); err != nil {
		return reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error()).WithDebug("entry", name)
	}
	return nil
}

// Load reads a .diycad archive from path: validates the manifest, checks
// schema_version, decodes and normalizes+validates data/document.json.
// assets/ is not read into memory; callers that need
// individual assets should open the archive themselves.
func Load(path string, eps epsilon.Policy) (*model.Document, *Manifest, *reason.Reason) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}
	defer zr.Close()

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	manifestFile, ok := entries[ManifestPath]
	if !ok {
		return nil, nil, reason.New(reason.SerializePackageCorrupted).WithDebug("cause", "missing "+ManifestPath)
	}
	manifestBytes, err := readZipEntry(manifestFile)
	if err != nil {
		return nil, nil, reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}

	var m Manifest
	if err := json.Unmarshal(manifestBytes, &m); err != nil {
		return nil, nil, reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}
	// Version gate comes first so drift surfaces as the specific
	// unsupported-version reason, not a generic validation failure.
	if m.SchemaVersion != model.SchemaVersion {
		return nil, &m, reason.New(reason.SerializeUnsupportedSchemaVersion).
			WithParam("schema_version", m.SchemaVersion)
	}
	if r := validateManifest(m); r != nil {
		return nil, &m, r
	}

	docFile, ok := entries[m.DocumentPath]
	if !ok {
		return nil, &m, reason.New(reason.SerializePackageCorrupted).WithDebug("cause", "missing "+m.DocumentPath)
	}
	docBytes, err := readZipEntry(docFile)
	if err != nil {
		return nil, &m, reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}

	var doc model.Document
	if err := json.Unmarshal(docBytes, &doc); err != nil {
		return nil, &m, reason.New(reason.SerializePackageCorrupted).WithDebug("cause", err.Error())
	}

	doc.Normalize()
	if r := doc.Validate(eps); r != nil {
		return nil, &m, r
	}

	return &doc, &m, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
