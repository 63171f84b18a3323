package validator

import (
	"fmt"
	"strings"

	"github.com/infravue/infravue/pkg/common"
)

// MaxFilenameLength is the longest accepted filename in bytes.
const MaxFilenameLength = 255

// ValidateFilename checks that a client-claimed filename is safe to use as
// a single path element. It is a pure function: no filesystem access.
//
// Rejected: empty names, names over MaxFilenameLength bytes, path
// separators ('/' and '\'), NUL bytes, and the "." / ".." segments.
func ValidateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: filename is required", common.ErrValidation)
	}
	if len(name) > MaxFilenameLength {
		return fmt.Errorf("%w: filename exceeds %d bytes", common.ErrValidation, MaxFilenameLength)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: filename must not contain path separators or NUL bytes", common.ErrValidation)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: filename must not be a relative path segment", common.ErrValidation)
	}
	return nil
}
