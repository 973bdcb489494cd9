package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Hash returns the hex SHA-256 of data. Document and snapshot hashes are
// built with it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "kind:<sha256>" over parts. Every part is followed by a
// NUL byte so that ("ab", "c") and ("a", "bc") differ.
func hashKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// formatFloat renders a viewport axis for a key. Non-finite values keep
// their own spelling so that they never collide with a real size.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parts returns the key components of o in a fixed order.
func (o SnapshotKeyOpts) parts() []string {
	return []string{
		"w=" + formatFloat(o.Width),
		"h=" + formatFloat(o.Height),
		"place=" + strconv.FormatBool(o.Place),
		"ids=" + o.IDs,
	}
}

// parts returns the key components of o in a fixed order.
func (o ArtifactKeyOpts) parts() []string {
	return []string{
		"format=" + o.Format,
		"detailed=" + strconv.FormatBool(o.Detailed),
	}
}
