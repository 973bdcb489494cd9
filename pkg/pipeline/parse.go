package pipeline

import (
	"github.com/matzehuels/flow/pkg/cache"
	"github.com/matzehuels/flow/pkg/document"
)

// Decode parses the document carried by opts.
func Decode(opts Options) (*document.Document, error) {
	return document.Decode(opts.Document, opts.DocumentFormat)
}

// DocumentHash returns the content hash of a decoded document. Documents
// that differ only in encoding or formatting share a hash.
func DocumentHash(doc *document.Document) (string, error) {
	data, err := doc.Canonical()
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
