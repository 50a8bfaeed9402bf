package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestWrapRetainsMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrValidation, "organizing", "parse filename", "bad name", base)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "validation error: organizing: parse filename: bad name: boom"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "organizing", "copy", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrTransient, "", "", "", nil)
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("wrapped: %w", ErrValidation), 2},
		{ErrConfiguration, 3},
		{ErrNotFound, 4},
		{ErrTransient, 1},
		{errors.New("unclassified"), 1},
	}
	for _, tc := range tests {
		if got := ExitCode(tc.err); got != tc.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestRunIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := RunIDFromContext(ctx); ok {
		t.Fatal("unexpected run ID on fresh context")
	}
	ctx = WithRunID(ctx, "run-1")
	id, ok := RunIDFromContext(ctx)
	if !ok || id != "run-1" {
		t.Fatalf("RunIDFromContext = %q, %v", id, ok)
	}
}
