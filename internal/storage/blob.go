// Package storage stores recipe images behind a small blob interface.
//
// A blob is addressed by an opaque reference string returned from Put. Reads and
// deletes of a blob that is missing, unreadable or behind a failing backend return
// ErrUnavailable rather than a backend-specific error, so callers can decide
// whether the image matters for the operation at hand. A missing blob is
// additionally marked with ErrNotExist.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnavailable is returned when a blob cannot be read, written or deleted.
var ErrUnavailable = errors.New("blob unavailable")

// ErrNotExist is returned when the backend answered but holds no usable blob
// under the reference. It wraps ErrUnavailable.
var ErrNotExist = fmt.Errorf("%w: blob does not exist", ErrUnavailable)

// BlobStore stores image bytes under opaque references.
type BlobStore interface {
	Put(ctx context.Context, data []byte, suggestedName string) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
	Delete(ctx context.Context, ref string) error
}

// ImageResolver turns a stored image reference into an inline displayable form.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// newRef builds a collision-free reference that keeps the upload's extension.
func newRef(prefix, suggestedName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(suggestedName)))
	if len(ext) > 8 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return prefix + uuid.New().String() + ext
}
