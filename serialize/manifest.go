package serialize

import "time"

// Archive layout paths, fixed so archives produced from the
// same document are byte-comparable.
const (
	ManifestPath = "manifest.json"
	DocDir       = "data/"
	DocPath      = "data/document.json"
	AssetsDir    = "assets/"
)

// ManifestApp identifies the producing application.
type ManifestApp struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Manifest is the archive's top-level descriptor.
type Manifest struct {
	SchemaVersion  int         `json:"schema_version"`
	App            ManifestApp `json:"app"`
	CreatedAt      string      `json:"created_at"`
	DocumentPath   string      `json:"document_path"`
	AssetsPath     string      `json:"assets_path"`
	SettingsDigest string      `json:"settings_digest,omitempty"`
}

// NewManifest builds a Manifest for the current document layout, stamped
// with the given application identity.
func NewManifest(appName, appVersion string) Manifest {
	return Manifest{
		SchemaVersion: 1,
		App:           ManifestApp{Name: appName, Version: appVersion},
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		DocumentPath:  DocPath,
		AssetsPath:    AssetsDir,
	}
}
