package main

import (
	"reflect"
	"testing"
)

func TestWorkspaceID_LowercasesAndReplacesSpaces(t *testing.T) {
	cases := map[string]string{
		"My Project":      "my_project",
		"already_lower":   "already_lower",
		"Dots.and-Dashes": "dots.and-dashes",
		"Two  Spaces":     "two__spaces",
	}
	for name, want := range cases {
		if got := workspaceID(name); got != want {
			t.Fatalf("workspaceID(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	if got := splitTags(""); got != nil {
		t.Fatalf("empty input means no tags, got %v", got)
	}
	want := []string{"work", "go"}
	if got := splitTags(" work, go ,"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
