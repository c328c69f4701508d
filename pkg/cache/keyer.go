package cache

// Keyer derives cache keys for render artifacts.
type Keyer interface {
	// DiagramKey identifies the DOT source of one flow input and variant.
	DiagramKey(inputHash string, opts DiagramKeyOpts) string
	// ArtifactKey identifies one output format of a diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts are the options that change the emitted DOT.
type DiagramKeyOpts struct {
	Previous  bool   `json:"previous"`
	Other     bool   `json:"other"`
	StyleHash string `json:"style"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Interactive bool    `json:"interactive,omitempty"`
	URLsHash    string  `json:"urls,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes the options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DiagramKey returns "diagram:<sha256>".
func (DefaultKeyer) DiagramKey(inputHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", inputHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}
