package infra

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const testQuery = `--sql 0b7f7e52-7a43-4c39-a8a8-3f5b8f2a61c4
select 1;
`

type recordingQuerier struct {
	sql    []string
	row    pgx.Row
	execFn func() (pgconn.CommandTag, error)
}

func (q *recordingQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	if q.execFn != nil {
		return q.execFn()
	}
	return pgconn.NewCommandTag("UPDATE 2"), nil
}

func (q *recordingQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	return q.row
}

func (q *recordingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.sql = append(q.sql, sql)
	return nil, errors.New("not supported")
}

type scanErrRow struct{ err error }

func (r scanErrRow) Scan(dest ...any) error { return r.err }

func TestExtractMarker(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		marker  string
		body    string
		wantErr bool
	}{
		{name: "valid", query: testQuery, marker: "0b7f7e52-7a43-4c39-a8a8-3f5b8f2a61c4", body: "select 1;"},
		{name: "leading whitespace", query: "\n  " + testQuery, marker: "0b7f7e52-7a43-4c39-a8a8-3f5b8f2a61c4", body: "select 1;"},
		{name: "missing marker", query: "select 1;", wantErr: true},
		{name: "uppercase uuid", query: "--sql 0B7F7E52-7A43-4C39-A8A8-3F5B8F2A61C4\nselect 1;", wantErr: true},
		{name: "empty", query: "   ", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			marker, body, err := extractMarker(tc.query)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractMarker returned error: %v", err)
			}
			if marker != tc.marker {
				t.Fatalf("marker = %q, want %q", marker, tc.marker)
			}
			if strings.TrimSpace(body) != tc.body {
				t.Fatalf("body = %q, want %q", body, tc.body)
			}
		})
	}
}

func TestSQLRunnerStripsMarkerAndLogs(t *testing.T) {
	var buf bytes.Buffer
	q := &recordingQuerier{}
	r := &SQLRunner{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel), q: q}

	tag, err := r.Exec(context.Background(), testQuery)
	if err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if tag.RowsAffected() != 2 {
		t.Fatalf("rows affected = %d, want 2", tag.RowsAffected())
	}
	if len(q.sql) != 1 || strings.Contains(q.sql[0], "--sql") {
		t.Fatalf("marker not stripped: %q", q.sql)
	}
	if !strings.Contains(buf.String(), `"sql":"0b7f7e52-7a43-4c39-a8a8-3f5b8f2a61c4"`) {
		t.Fatalf("marker not logged: %s", buf.String())
	}
}

func TestSQLRunnerRejectsUnmarkedQueries(t *testing.T) {
	q := &recordingQuerier{}
	r := &SQLRunner{Logger: zerolog.Nop(), q: q}

	if _, err := r.Exec(context.Background(), "delete from jobs"); err == nil {
		t.Fatal("Exec accepted an unmarked query")
	}
	if err := r.QueryRow(context.Background(), "select 1").Scan(); err == nil {
		t.Fatal("QueryRow accepted an unmarked query")
	}
	if _, err := r.Query(context.Background(), "select 1"); err == nil {
		t.Fatal("Query accepted an unmarked query")
	}
	if len(q.sql) != 0 {
		t.Fatalf("unmarked queries reached the database: %q", q.sql)
	}
}

func TestSQLRunnerNoRowsIsNotLoggedAsError(t *testing.T) {
	var buf bytes.Buffer
	q := &recordingQuerier{row: scanErrRow{err: pgx.ErrNoRows}}
	r := &SQLRunner{Logger: zerolog.New(&buf), q: q}

	err := r.QueryRow(context.Background(), testQuery).Scan()
	if !IsNoRows(err) {
		t.Fatalf("err = %v, want no rows", err)
	}
	if strings.Contains(buf.String(), "scan failed") {
		t.Fatalf("no rows logged as failure: %s", buf.String())
	}
}

func TestSQLRunnerInTxRequiresPool(t *testing.T) {
	r := &SQLRunner{Logger: zerolog.Nop(), q: &recordingQuerier{}, inTx: true}
	err := r.InTx(context.Background(), func(SQLExecutor) error { return nil })
	if !errors.Is(err, ErrNestedTx) {
		t.Fatalf("err = %v, want ErrNestedTx", err)
	}
}
