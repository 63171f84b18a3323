// Package inference defines the boundary to the external image-processing
// worker. The lifecycle core does not call it; integrations submit a stored
// file path and receive the path of a derivative file written next to the
// original. Derivative files are not tracked by image metadata.
package inference

import "context"

// DerivativePrefix is prepended to the source filename to name the
// derivative file produced by the worker.
const DerivativePrefix = "processed_"

// Worker consumes a stored file path and produces a derivative file path,
// or fails. Implementations are external to this service.
type Worker interface {
	Submit(ctx context.Context, path string) (derivativePath string, err error)
}

// DerivativeName returns the conventional filename for a derivative of the
// given source filename.
func DerivativeName(filename string) string {
	return DerivativePrefix + filename
}
