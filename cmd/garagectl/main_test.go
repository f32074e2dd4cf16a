package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRules(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := `codes:
  - {id: sales-labour, code: "4000", name: Labour}
  - {id: sales-tyres, code: "4010", name: Tyres}
rules:
  - name: Labour
    priority: 1
    item_type: Labor
    nominal_code_id: sales-labour
  - name: Tyres
    priority: 10
    item_type: Part
    keywords: tyre, tire
    exclude_keywords: repair
    nominal_code_id: sales-tyres
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestRulesMatch(t *testing.T) {
	path := writeRules(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"part keyword", []string{"--description", "Front TYRE 205/55", "--labor=false"}, "Part\tsales-tyres"},
		{"excluded", []string{"--description", "Tyre repair", "--labor=false"}, "Part\tUnassigned"},
		{"labour", []string{"--description", "Fit tyres", "--labor=true"}, "Labor\tsales-labour"},
		{"purchase", []string{"--description", "Fuel"}, "Purchase\tUnassigned"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"rules", "match", path}, tc.args...)
			out, err := run(t, newRootCmd(&bytes.Buffer{}), args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if strings.TrimSpace(out) != tc.want {
				t.Fatalf("output = %q, want %q", out, tc.want)
			}
		})
	}
}

func TestRulesImportDryRun(t *testing.T) {
	out, err := run(t, newRootCmd(&bytes.Buffer{}), "rules", "import", writeRules(t), "--dry-run")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "2 codes, 2 rules valid") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSegmentsPreview(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC) }
	out, err := run(t, newSegmentsPreviewCmd(clock), "--hours", "10")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "1\t2024-01-06\t8\n2\t2024-01-08\t2\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}

	if _, err := run(t, newSegmentsPreviewCmd(clock), "--hours", "0"); err == nil {
		t.Fatal("expected error for zero hours")
	}
}

func TestRefsNextRejectsUnknownKind(t *testing.T) {
	_, err := run(t, newRootCmd(&bytes.Buffer{}), "refs", "next", "--entity", "ent-1", "--kind", "receipt")
	if err == nil || !strings.Contains(err.Error(), "unknown reference kind") {
		t.Fatalf("err = %v, want unknown reference kind", err)
	}
}
