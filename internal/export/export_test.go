package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/cursor-threads/internal"
)

func TestNewExporter(t *testing.T) {
	for format, wantExt := range map[string]string{
		"md":       "md",
		"markdown": "md",
		"json":     "json",
		"jsonl":    "jsonl",
		"yaml":     "yaml",
	} {
		exporter, err := NewExporter(format)
		if err != nil {
			t.Errorf("NewExporter(%q) error = %v", format, err)
			continue
		}
		if exporter.Extension() != wantExt {
			t.Errorf("NewExporter(%q).Extension() = %q, want %q", format, exporter.Extension(), wantExt)
		}
	}

	if _, err := NewExporter("xml"); err == nil {
		t.Error("NewExporter(xml) should fail")
	}
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleConversation(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.Conversation
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != "conv-1" || len(decoded.Turns) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestJSONLExportOneTurnPerLine(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(sampleConversation(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if first["role"] != "user" || first["text"] != "please fix it" {
		t.Errorf("first line = %v", first)
	}
	if _, ok := first["timestamp"]; !ok {
		t.Error("timestamp missing from turn line")
	}
}

func TestJSONLExportOmitsZeroTimestamp(t *testing.T) {
	conv := &internal.Conversation{
		ID:    "c",
		Turns: []internal.Turn{{Role: "user", Text: "hi"}},
	}

	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(conv, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatal(err)
	}
	if _, ok := line["timestamp"]; ok {
		t.Error("zero timestamp should be omitted")
	}
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleConversation(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["id"] != "conv-1" {
		t.Errorf("decoded id = %v", decoded["id"])
	}
}
