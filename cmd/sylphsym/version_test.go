package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"sylph/internal/mangle"
)

func runVersion(t *testing.T, args ...string) string {
	t.Helper()
	root := &cobra.Command{Use: "sylphsym"}
	root.AddCommand(versionCmd)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	return out.String()
}

func TestVersionCommandReportsScheme(t *testing.T) {
	out := runVersion(t, "version")
	if !strings.Contains(out, "scheme: "+mangle.SchemePrefix) {
		t.Errorf("pretty output %q missing the mangling scheme", out)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	defer func() { versionFormat = "pretty" }()

	out := runVersion(t, "version", "--format", "json")
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("json output %q: %v", out, err)
	}
	if payload.Tool != "sylphsym" {
		t.Errorf("tool = %q, want %q", payload.Tool, "sylphsym")
	}
	if payload.Scheme != mangle.SchemePrefix {
		t.Errorf("scheme = %q, want %q", payload.Scheme, mangle.SchemePrefix)
	}
}
