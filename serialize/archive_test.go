package serialize

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/model"
)

func sampleDocument() *model.Document {
	layerID := uuid.New()
	return &model.Document{
		SchemaVersion: model.SchemaVersion,
		ID:            uuid.New(),
		Units:         model.UnitsMM,
		Layers: []model.Layer{
			{ID: layerID, Name: "default", Visible: true, Editable: true},
		},
		Settings: model.Settings{Units: model.UnitsMM},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.diycad")

	doc := sampleDocument()
	r := Save(path, doc, "craftcad-test", "0.0.0")
	require.Nil(t, r)

	loaded, manifest, lr := Load(path, epsilon.Default())
	require.Nil(t, lr)
	require.Equal(t, doc.ID, loaded.ID)
	require.Equal(t, doc.Units, loaded.Units)
	require.Len(t, loaded.Layers, 1)
	require.Equal(t, model.SchemaVersion, manifest.SchemaVersion)
	require.NotEmpty(t, manifest.SettingsDigest)
}

func TestLoadRejectsUnsupportedSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.diycad")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	m := NewManifest("craftcad-test", "0.0.0")
	m.SchemaVersion = 2
	mb, err := json.Marshal(m)
	require.NoError(t, err)
	w, err := zw.Create(ManifestPath)
	require.NoError(t, err)
	_, err = w.Write(mb)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, _, r := Load(path, epsilon.Default())
	require.NotNil(t, r)
	require.Equal(t, "SERIALIZE_UNSUPPORTED_SCHEMA_VERSION", string(r.Code))
}

func TestLoadRejectsCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-zip.diycad")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, _, r := Load(path, epsilon.Default())
	require.NotNil(t, r)
	require.Equal(t, "SERIALIZE_PACKAGE_CORRUPTED", string(r.Code))
}
