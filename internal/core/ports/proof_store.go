package ports

import (
	"context"
	"io"
)

// ProofStore stores delivery-proof photos in durable object storage and
// returns an opaque reference the route aggregate keeps on the stop.
type ProofStore interface {
	// Put uploads a photo and returns its storage reference. The key is
	// derived from the route and stop so repeated uploads overwrite.
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}
