package sqllint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGo(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("package q\n\n"+body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLintFlagsMissingAndDuplicateMarkers(t *testing.T) {
	dir := t.TempDir()
	writeGo(t, dir, "a.go", "const QGood = `--sql 11111111-2222-4333-8444-555555555555\nselect 1;`\n"+
		"const QBare = `select 2;`\n"+
		"const Label = \"not sql\"\n")
	writeGo(t, dir, "b.go", "const QCopy = `--sql 11111111-2222-4333-8444-555555555555\nupdate t set x = 1;`\n")
	writeGo(t, dir, "b_test.go", "const QIgnored = `select 3;`\n")

	res, err := Lint(dir)
	if err != nil {
		t.Fatalf("Lint returned error: %v", err)
	}
	if res.Checked != 3 {
		t.Fatalf("checked = %d, want 3", res.Checked)
	}
	if len(res.Violations) != 2 {
		t.Fatalf("violations = %v, want 2", res.Violations)
	}
	got := res.Violations[0].String() + "\n" + res.Violations[1].String()
	for _, want := range []string{"(QBare)", "marker already used by QGood (QCopy)"} {
		if !strings.Contains(got, want) {
			t.Fatalf("violations %q missing %q", got, want)
		}
	}
}

func TestLintMissingTarget(t *testing.T) {
	if _, err := Lint(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing path")
	}
}
