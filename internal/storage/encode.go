package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DataURIResolver reads a blob and encodes it as a data URI
// (data:<media type>;base64,<payload>).
type DataURIResolver struct {
	store BlobStore
}

// NewDataURIResolver creates a resolver reading from store.
func NewDataURIResolver(store BlobStore) *DataURIResolver {
	return &DataURIResolver{store: store}
}

// Resolve returns the inline form of the image behind ref, or ErrUnavailable.
func (r *DataURIResolver) Resolve(ctx context.Context, ref string) (string, error) {
	data, err := r.store.Get(ctx, ref)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(data)
}

// EncodeDataURI encodes image bytes as a data URI. Payloads that are not
// images are treated as corrupt.
func EncodeDataURI(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: content is %s, not an image", ErrUnavailable, mt.String())
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
