package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/infravue/infravue/pkg/common"
)

func TestValidateFilename(t *testing.T) {
	valid := []string{
		"cat.png",
		"photo 2024.jpg",
		"..leading-dots.png",
		"UPPER.CASE.GIF",
		"no-extension",
	}
	for _, name := range valid {
		if err := ValidateFilename(name); err != nil {
			t.Errorf("ValidateFilename(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		".",
		"..",
		"a/b.png",
		"../escape.png",
		"..\\escape.png",
		"nested/../up.png",
		"nul\x00byte.png",
		strings.Repeat("x", MaxFilenameLength+1),
	}
	for _, name := range invalid {
		err := ValidateFilename(name)
		if err == nil {
			t.Errorf("ValidateFilename(%q) = nil, want error", name)
			continue
		}
		if !errors.Is(err, common.ErrValidation) {
			t.Errorf("ValidateFilename(%q) = %v, want ErrValidation", name, err)
		}
	}
}

func TestUploadConfigValidate(t *testing.T) {
	cfg := DefaultUploadConfig()

	pngHeader := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)

	t.Run("AcceptsPNG", func(t *testing.T) {
		if err := cfg.Validate(int64(len(pngHeader)), "image/png", pngHeader); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})

	t.Run("RejectsEmpty", func(t *testing.T) {
		err := cfg.Validate(0, "image/png", nil)
		if !errors.Is(err, common.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("RejectsOversize", func(t *testing.T) {
		err := cfg.ValidateFileSize(cfg.MaxFileSize + 1)
		if !errors.Is(err, common.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("RejectsNonImageContent", func(t *testing.T) {
		data := []byte("#!/bin/sh\necho pwned\n")
		err := cfg.Validate(int64(len(data)), "image/png", data)
		if !errors.Is(err, common.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("CustomWhitelist", func(t *testing.T) {
		custom := NewUploadConfig(1024, []string{"image/png"})
		if err := custom.ValidateMimeType("image/png"); err != nil {
			t.Fatalf("ValidateMimeType: %v", err)
		}
		if err := custom.ValidateMimeType("image/gif"); !errors.Is(err, common.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}
