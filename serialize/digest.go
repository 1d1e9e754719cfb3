package serialize

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DigestSettings returns the hex SHA-256 of the canonical JSON encoding of
// settings, matching the original digest_settings_json.
func DigestSettings(settings any) string {
	b, err := json.Marshal(settings)
	if err != nil {
		b = nil
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
