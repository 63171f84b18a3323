package validator

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/infravue/infravue/pkg/common"
)

// Default upload constraints
const (
	DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB
)

// DefaultAllowedMimeTypes contains the default whitelist of allowed MIME
// types for image uploads.
var DefaultAllowedMimeTypes = map[string]bool{
	"image/jpeg":               true,
	"image/png":                true,
	"image/gif":                true,
	"image/webp":               true,
	"image/svg+xml":            true,
	"image/bmp":                true,
	"image/x-ms-bmp":           true,
	"image/tiff":               true,
	"image/x-icon":             true,
	"image/vnd.microsoft.icon": true,
	"image/heic":               true,
	"image/heif":               true,
}

// UploadConfig defines constraints for file uploads.
type UploadConfig struct {
	MaxFileSize      int64
	AllowedMimeTypes map[string]bool
}

// DefaultUploadConfig returns the default upload configuration.
func DefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize:      DefaultMaxUploadSize,
		AllowedMimeTypes: DefaultAllowedMimeTypes,
	}
}

// NewUploadConfig builds an upload configuration from a size limit and a
// MIME type list, falling back to defaults for missing values.
func NewUploadConfig(maxSize int64, allowedTypes []string) *UploadConfig {
	cfg := DefaultUploadConfig()
	if maxSize > 0 {
		cfg.MaxFileSize = maxSize
	}
	if len(allowedTypes) > 0 {
		allowed := make(map[string]bool, len(allowedTypes))
		for _, t := range allowedTypes {
			allowed[strings.ToLower(strings.TrimSpace(t))] = true
		}
		cfg.AllowedMimeTypes = allowed
	}
	return cfg
}

// ValidateFileSize checks if the file size is within the allowed limit.
func (c *UploadConfig) ValidateFileSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("%w: file is empty", common.ErrValidation)
	}
	if size > c.MaxFileSize {
		return fmt.Errorf("%w: file too large", common.ErrValidation)
	}
	return nil
}

// ValidateMimeType checks if the MIME type is in the allowed whitelist.
func (c *UploadConfig) ValidateMimeType(mimeType string) error {
	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if normalized == "" {
		return fmt.Errorf("%w: missing content type", common.ErrValidation)
	}
	// Handle MIME types with parameters (e.g., "text/plain; charset=utf-8")
	if idx := strings.Index(normalized, ";"); idx > 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	if !c.AllowedMimeTypes[normalized] {
		return fmt.Errorf("%w: unsupported file type %s", common.ErrValidation, normalized)
	}
	return nil
}

// DetectAndValidateMimeType detects the MIME type from file content and
// validates it against the whitelist. The declared type is not trusted.
func (c *UploadConfig) DetectAndValidateMimeType(data []byte, declaredType string) (string, error) {
	detectedType := http.DetectContentType(data)

	if idx := strings.Index(detectedType, ";"); idx > 0 {
		detectedType = strings.TrimSpace(detectedType[:idx])
	}

	// Content sniffing cannot tell SVG from generic XML/text; fall back to
	// the declared type when it is whitelisted.
	if !c.AllowedMimeTypes[detectedType] {
		declared := strings.ToLower(strings.TrimSpace(declaredType))
		if idx := strings.Index(declared, ";"); idx > 0 {
			declared = strings.TrimSpace(declared[:idx])
		}
		if c.AllowedMimeTypes[declared] {
			return declared, nil
		}
	}

	if err := c.ValidateMimeType(detectedType); err != nil {
		return detectedType, err
	}

	return detectedType, nil
}

// Validate performs full validation on an upload.
func (c *UploadConfig) Validate(size int64, mimeType string, data []byte) error {
	if err := c.ValidateFileSize(size); err != nil {
		return err
	}
	if _, err := c.DetectAndValidateMimeType(data, mimeType); err != nil {
		return err
	}
	return nil
}
