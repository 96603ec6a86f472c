package faults_test

import (
	"errors"
	"strings"
	"testing"

	"cascii/internal/faults"
)

func TestWrapPreservesKindAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := faults.Wrap(faults.ErrIO, "ingest", "copy source", "copying a.png", cause)

	if !errors.Is(err, faults.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
	if !strings.Contains(err.Error(), "copying a.png") {
		t.Fatalf("expected message in error text, got %q", err.Error())
	}
}

func TestWrapNilKindDefaultsToTaskFailed(t *testing.T) {
	err := faults.Wrap(nil, "convert", "worker", "", nil)
	if !errors.Is(err, faults.ErrTaskFailed) {
		t.Fatalf("expected ErrTaskFailed, got %v", err)
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not found", faults.Wrap(faults.ErrNotFound, "store", "get project", "", nil), faults.ErrNotFound},
		{"invalid", faults.Wrap(faults.ErrInvalidInput, "cut", "range", "start >= end", nil), faults.ErrInvalidInput},
		{"unclassified", errors.New("plain"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := faults.Kind(tc.err); got != tc.want {
				t.Fatalf("Kind(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
