package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/infravue/infravue/pkg/common"
)

func TestNormalizeRenameTarget(t *testing.T) {
	cases := []struct {
		current, requested, want string
	}{
		{"cat.png", "dog", "dog.png"},
		{"cat.png", "dog.jpg", "dog.jpg"},
		{"cat.png", " dog ", "dog.png"},
		{"noext", "newname", "newname"},
		{"cat.png", "", ""},
	}
	for _, tc := range cases {
		if got := normalizeRenameTarget(tc.current, tc.requested); got != tc.want {
			t.Errorf("normalizeRenameTarget(%q, %q) = %q, want %q", tc.current, tc.requested, got, tc.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Fatalf("parseID(42) = %d, %v", id, err)
	}
	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, err := parseID(raw); !errors.Is(err, common.ErrValidation) {
			t.Errorf("parseID(%q): expected ErrValidation, got %v", raw, err)
		}
	}
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad name", common.ErrValidation), consts.StatusBadRequest},
		{fmt.Errorf("%w: not yours", common.ErrUnauthorized), consts.StatusForbidden},
		{fmt.Errorf("%w: image x", common.ErrNotFound), consts.StatusNotFound},
		{fmt.Errorf("%w: taken", common.ErrConflict), consts.StatusConflict},
		{fmt.Errorf("%w: disk full", common.ErrStorage), consts.StatusInternalServerError},
		{&common.ConsistencyError{Op: "delete", Cause: errors.New("db down")}, consts.StatusInternalServerError},
		{errors.New("anything else"), consts.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForError(tc.err); got != tc.want {
			t.Errorf("statusForError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
