// Package sqllint checks that SQL string constants carry a unique
// "--sql <uuid>" audit marker on their first line.
package sqllint

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	statementPattern = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with)\b`)
	markerPattern    = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// Violation is one offending constant.
type Violation struct {
	File    string
	Line    int
	Name    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d %s (%s)", v.File, v.Line, v.Message, v.Name)
}

// Result summarises a lint run.
type Result struct {
	Checked    int
	Violations []Violation
}

// Lint walks the given files and directories. Test files, hidden
// directories and vendor trees are skipped. Markers must be unique across
// everything linted in one call.
func Lint(targets ...string) (Result, error) {
	l := &linter{seen: map[string]string{}}
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return l.res, err
		}
		if !info.IsDir() {
			if err := l.file(target); err != nil {
				return l.res, err
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != target && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor") {
					return filepath.SkipDir
				}
				return nil
			}
			return l.file(path)
		})
		if err != nil {
			return l.res, err
		}
	}
	return l.res, nil
}

type linter struct {
	res  Result
	seen map[string]string
}

func (l *linter) file(path string) error {
	if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
		return nil
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return err
	}
	ast.Inspect(file, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for i, value := range vs.Values {
			bl, ok := value.(*ast.BasicLit)
			if !ok || bl.Kind != token.STRING || i >= len(vs.Names) {
				continue
			}
			raw, err := unquote(bl.Value)
			if err != nil || !statementPattern.MatchString(raw) {
				continue
			}
			name := vs.Names[i].Name
			pos := fset.Position(bl.Pos())
			marker := firstLine(raw)
			switch prev, dup := l.seen[marker]; {
			case !markerPattern.MatchString(marker):
				l.report(path, pos.Line, name, "missing or invalid --sql <uuid> marker")
			case dup:
				l.report(path, pos.Line, name, "marker already used by "+prev)
			default:
				l.seen[marker] = name
			}
			l.res.Checked++
		}
		return true
	})
	return nil
}

func (l *linter) report(path string, line int, name, msg string) {
	l.res.Violations = append(l.res.Violations, Violation{File: path, Line: line, Name: name, Message: msg})
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) >= 2 && v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}
