package serialize

import (
	"archive/zip"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teru1991/craftcad/epsilon"
	"github.com/teru1991/craftcad/model"
)

func TestDigestSettingsIsStableForEqualSettings(t *testing.T) {
	a := model.Settings{Units: model.UnitsMM, RecentFiles: []string{"x.diycad"}}
	b := model.Settings{Units: model.UnitsMM, RecentFiles: []string{"x.diycad"}}
	require.Equal(t, DigestSettings(a), DigestSettings(b))
	require.Len(t, DigestSettings(a), 64)

	c := model.Settings{Units: model.UnitsInch}
	require.NotEqual(t, DigestSettings(a), DigestSettings(c))
}

func TestSaveWritesEntriesInFixedOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.diycad")
	require.Nil(t, Save(path, sampleDocument(), "craftcad-test", "0.0.0"))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	require.Equal(t, []string{ManifestPath, DocDir, DocPath, AssetsDir}, names)
}

func TestSaveStampsManifestSettingsDigest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.diycad")
	doc := sampleDocument()
	require.Nil(t, Save(path, doc, "craftcad-test", "0.0.0"))

	_, manifest, r := Load(path, epsilon.Default())
	require.Nil(t, r)
	require.Equal(t, DigestSettings(doc.Settings), manifest.SettingsDigest)
}

func TestLoadNormalizesMissingMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.diycad")
	doc := sampleDocument()
	require.Nil(t, Save(path, doc, "craftcad-test", "0.0.0"))

	// A document saved without materials decodes with a nil slice; Load's
	// normalization pass must inject the empty slice.
	loaded, _, r := Load(path, epsilon.Default())
	require.Nil(t, r)
	require.NotNil(t, loaded.Materials)
	require.Empty(t, loaded.Materials)

	// And the normalized form re-encodes with materials present.
	b, err := json.Marshal(loaded)
	require.NoError(t, err)
	require.Contains(t, string(b), "\"materials\":[]")
}
