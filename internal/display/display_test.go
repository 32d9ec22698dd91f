package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rafaeltab/rafaeltab/internal/config"
	"github.com/rafaeltab/rafaeltab/internal/session"
)

func TestWorkspaces_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	err := Workspaces(&buf, []config.Workspace{
		{ID: "alpha", Name: "Alpha", Root: "/tmp/alpha", Tags: []string{"work"}},
	}, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out[0]["id"] != "alpha" || out[0]["root"] != "/tmp/alpha" {
		t.Fatalf("unexpected object %v", out[0])
	}
}

func TestDescriptions_JSONUsesRootKey(t *testing.T) {
	descs := session.BuildDescriptions(&config.Document{
		Workspaces: []config.Workspace{{ID: "alpha", Name: "Alpha", Root: "/tmp/alpha"}},
		Tmux:       config.Tmux{DefaultWindows: []config.Window{{Name: "shell"}}},
	})

	var buf bytes.Buffer
	if err := Descriptions(&buf, descs, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := out[0]["root"]; !ok {
		t.Fatalf("description JSON must use the root key, got %v", out[0])
	}
	if out[0]["running"] != false {
		t.Fatalf("expected running=false, got %v", out[0])
	}
}

func TestDescriptions_JSONPrettyIndented(t *testing.T) {
	descs := session.BuildDescriptions(&config.Document{
		Workspaces: []config.Workspace{{ID: "alpha", Name: "Alpha", Root: "/tmp/alpha"}},
	})
	var buf bytes.Buffer
	if err := Descriptions(&buf, descs, FormatJSONPretty); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}

func TestFromFlags(t *testing.T) {
	if FromFlags(false, false) != FormatPretty {
		t.Fatalf("no flags means pretty")
	}
	if FromFlags(true, false) != FormatJSON {
		t.Fatalf("--json means compact")
	}
	// --json-pretty wins over --json.
	if FromFlags(true, true) != FormatJSONPretty {
		t.Fatalf("--json-pretty takes precedence")
	}
}
