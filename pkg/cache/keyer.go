package cache

// Keyer generates cache keys.
type Keyer interface {
	// SnapshotKey returns the key of a solved snapshot for a document.
	SnapshotKey(documentHash string, opts SnapshotKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact for a snapshot.
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
}

// SnapshotKeyOpts holds the inputs that change a solved snapshot.
type SnapshotKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Place  bool    `json:"place"`
	IDs    string  `json:"ids"`
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// DefaultKeyer hashes the key inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SnapshotKey implements Keyer.
func (DefaultKeyer) SnapshotKey(documentHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", append([]string{documentHash}, opts.parts()...)...)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", append([]string{snapshotHash}, opts.parts()...)...)
}
