package dispatch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const specDoc = `
name: filetool
version: 1.2.0
description: a small file utility
rootFlags:
  - name: version
    type: bool
    description: print version
commands:
  - name: copy
    description: copy a file
    flags:
      - name: mode
        type: enum(fast|safe)
        default: safe
        description: copy strategy
      - name: retries
        short: r
        type: int
        default: "0"
      - name: verbose
        short: v
        type: bool
    args:
      - name: source
        type: string
        required: true
      - name: dest
        type: string
        default: "."
    commands:
      - name: verify
        description: verify a previous copy
  - name: deploy
    args:
      - name: targets
        type: list(string)
        required: true
`

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec(strings.NewReader(specDoc))
	if err != nil {
		t.Fatal(err)
	}

	if spec.Name != "filetool" || spec.Version != "1.2.0" {
		t.Errorf("program = %q %q", spec.Name, spec.Version)
	}

	copyCmd := spec.findCommand("copy")
	if copyCmd == nil {
		t.Fatal("copy command missing")
	}
	mode := copyCmd.findFlag("mode")
	if mode == nil {
		t.Fatal("mode flag missing")
	}
	if diff := cmp.Diff([]string{"fast", "safe"}, mode.Type.Enum); diff != "" {
		t.Errorf("enum values mismatch:\n%s", diff)
	}
	if mode.Default == nil || mode.Default.Str != "safe" {
		t.Errorf("mode default = %+v", mode.Default)
	}
	if r := copyCmd.findFlag("retries"); r == nil || r.Short != "r" || r.Default == nil || r.Default.Int != 0 {
		t.Errorf("retries = %+v", r)
	}
	if copyCmd.findSubcommand("verify") == nil {
		t.Error("nested command missing")
	}
	// The loader finalizes, so the implicit help flag is present.
	if copyCmd.findFlag("help") == nil {
		t.Error("loaded spec is not finalized")
	}

	deploy := spec.findCommand("deploy")
	if deploy == nil || len(deploy.Args) != 1 {
		t.Fatalf("deploy = %+v", deploy)
	}
	if got := deploy.Args[0].Type.String(); got != "list(string)" {
		t.Errorf("targets type = %q", got)
	}
}

func TestLoadSpecParseEquivalence(t *testing.T) {
	spec, err := LoadSpec(strings.NewReader(specDoc))
	if err != nil {
		t.Fatal(err)
	}
	res, err := spec.ParseLine("copy --mode=fast a.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := res.GetString("mode"); got != "fast" {
		t.Errorf("mode = %q", got)
	}
	if got, _ := res.GetArgString("dest"); got != "." {
		t.Errorf("dest = %q", got)
	}
}

func TestLoadSpecRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"missing name", "description: x", "program name"},
		{"unknown type", "name: t\ncommands:\n  - name: a\n    flags:\n      - name: f\n        type: duration\n        default: x", "unknown type"},
		{"bad default", "name: t\ncommands:\n  - name: a\n    flags:\n      - name: f\n        type: int\n        default: abc", "Invalid integer"},
		{"unknown field", "name: t\nbogus: 1", "bogus"},
		{"nested list", "name: t\ncommands:\n  - name: a\n    args:\n      - name: x\n        type: list(list(string))\n        required: true", "nested list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpec(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("LoadSpec succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParseTypeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"string", "string"},
		{"", "string"},
		{"bool", "boolean"},
		{"int", "integer"},
		{"float", "float"},
		{"enum(a|b|c)", "enum(a|b|c)"},
		{"enum(a | b)", "enum(a|b)"},
		{"list(int)", "list(integer)"},
		{" int ", "integer"},
	}
	for _, tt := range tests {
		got, err := ParseTypeString(tt.in)
		if err != nil {
			t.Fatalf("ParseTypeString(%q) error: %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Errorf("ParseTypeString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"duration", "enum", "list", "list()", "enum()"} {
		if _, err := ParseTypeString(in); err == nil {
			t.Errorf("ParseTypeString(%q) succeeded, want error", in)
		}
	}
}
