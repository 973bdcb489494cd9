package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flow/pkg/errors"
)

// Format identifies the encoding of a document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Node kinds.
const (
	KindEmpty = "empty"
	KindBlock = "block"
	KindRow   = "row"
)

// Limits applied while decoding.
const (
	MaxDepth = 64
	MaxNodes = 10000
)

// Node is one table of a tree document.
//
// Width and Height hold the raw sizing value: a string in sizing text form or
// a number.
type Node struct {
	Name     string  `toml:"name,omitempty" json:"name,omitempty"`
	Kind     string  `toml:"kind,omitempty" json:"kind,omitempty"`
	Width    any     `toml:"width,omitempty" json:"width,omitempty"`
	Height   any     `toml:"height,omitempty" json:"height,omitempty"`
	Padding  []int64 `toml:"padding,omitempty" json:"padding,omitempty"`
	Spacing  float64 `toml:"spacing,omitempty" json:"spacing,omitempty"`
	Children []Node  `toml:"children,omitempty" json:"children,omitempty"`
}

// Document is a decoded tree document.
type Document struct {
	Root   Node
	Format Format
}

// FormatFromFilename returns the format implied by a file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported document type: %q", name)
}

// ParseFormat parses a format name. Media types such as "application/toml"
// are accepted.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	switch s {
	case "toml", "application/toml", "text/toml", "text/x-toml":
		return FormatTOML, nil
	case "json", "application/json", "text/json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported document format: %q", s)
}

// Detect guesses the format from content: a leading '{' means JSON.
func Detect(data []byte) Format {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatTOML
}

// Decode parses data in the given format. An empty format is detected from
// the content.
func Decode(data []byte, format Format) (*Document, error) {
	if format == "" {
		format = Detect(data)
	}

	var root Node
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &root)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "decode toml: %v", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown field %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&root); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "decode json: %v", err)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported document format: %q", format)
	}

	return &Document{Root: root, Format: format}, nil
}

// Read decodes a document from r. Read does not close r.
func Read(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Decode(data, format)
}

// Import reads the document file at path, choosing the format from its
// extension.
func Import(path string) (*Document, error) {
	format, err := FormatFromFilename(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, format)
}

// Canonical returns the document re-encoded as compact JSON. Documents that
// differ only in formatting or encoding produce the same bytes.
func (d *Document) Canonical() ([]byte, error) {
	return json.Marshal(canonicalNode(d.Root))
}

// canonicalNode converts numeric sizing values to float64 so that TOML
// integers and JSON numbers encode identically.
func canonicalNode(n Node) Node {
	n.Width = canonicalValue(n.Width)
	n.Height = canonicalValue(n.Height)
	if len(n.Children) > 0 {
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = canonicalNode(c)
		}
		n.Children = children
	}
	return n
}

func canonicalValue(v any) any {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case int:
		return float64(x)
	}
	return v
}
