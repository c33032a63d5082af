package faults_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"perch/internal/faults"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	underlying := os.ErrPermission
	err := faults.Wrap(faults.ErrTransient, "organize", "copy file", "failed to copy media", underlying)
	if !errors.Is(err, faults.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected wrapped permission error, got %v", err)
	}
	for _, fragment := range []string{"organize", "copy file", "failed to copy media"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := faults.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, faults.ErrTransient) {
		t.Fatalf("expected transient fallback, got %v", err)
	}
}

func TestFatalClassification(t *testing.T) {
	cases := []struct {
		marker error
		fatal  bool
	}{
		{faults.ErrCatalogUnavailable, true},
		{faults.ErrPathNotFound, true},
		{faults.ErrValidation, true},
		{faults.ErrConfiguration, true},
		{faults.ErrConflictUnresolved, false},
		{faults.ErrTransient, false},
	}
	for _, tc := range cases {
		err := faults.Wrap(tc.marker, "stage", "op", "msg", nil)
		if got := faults.Fatal(err); got != tc.fatal {
			t.Fatalf("Fatal(%v) = %v, want %v", tc.marker, got, tc.fatal)
		}
	}
}
