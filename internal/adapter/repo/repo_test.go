package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/domain"
	"garage/internal/sqlinline"
)

var stamp = time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

func jobRow(id, status string) []any {
	return []any{id, "ent-1", "BPP99200001", "Clutch replacement", "AB12CDE", 12.0, status, stamp, stamp}
}

func TestSequenceReserveRecordsNextReference(t *testing.T) {
	sql := newStubSQL()
	sql.row[sqlinline.QLockEntity] = []any{"bpp"}
	sql.rows[sqlinline.QListIssuedReferences] = [][]any{{"BPP99200001"}, {"BPP99200003"}}

	ref, err := NewSequenceRepository(sql).Reserve(context.Background(), "ent-1", "992")
	require.NoError(t, err)
	assert.Equal(t, "BPP99200004", ref)
	assert.Equal(t, 1, sql.txs)

	require.Len(t, sql.execs, 1)
	assert.Equal(t, sqlinline.QInsertIssuedReference, sql.execs[0].query)
	assert.Equal(t, []any{"BPP99200004", "ent-1"}, sql.execs[0].args)

	// the prefix scan uses the upper-cased short code
	var scanned []any
	for _, q := range sql.queries {
		if q.query == sqlinline.QListIssuedReferences {
			scanned = q.args
		}
	}
	assert.Equal(t, []any{"BPP992"}, scanned)
}

func TestSequenceReserveMissingShortCode(t *testing.T) {
	sql := newStubSQL()
	sql.row[sqlinline.QLockEntity] = []any{""}

	_, err := NewSequenceRepository(sql).Reserve(context.Background(), "ent-1", "992")
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Empty(t, sql.execs)
}

func TestSequenceReserveUnknownEntity(t *testing.T) {
	sql := newStubSQL()
	_, err := NewSequenceRepository(sql).Reserve(context.Background(), "missing", "992")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobGetByIDLoadsSegments(t *testing.T) {
	sql := newStubSQL()
	sql.row[sqlinline.QSelectJob] = jobRow("job-1", "Allocated")
	sql.rows[sqlinline.QListJobSegments] = [][]any{
		{"seg-1", "job-1", 8.0, "2024-01-06", 1, "lift-2", "Allocated", "eng-7"},
		{"seg-2", "job-1", 4.0, "2024-01-08", nil, nil, "Unallocated", nil},
	}

	job, err := NewJobRepository(sql).GetByID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobAllocated, job.Status)
	require.Len(t, job.Segments, 2)

	first := job.Segments[0]
	assert.Equal(t, "2024-01-06", *first.Date)
	assert.Equal(t, 1, *first.ScheduledStartSegment)
	assert.Equal(t, "lift-2", *first.AllocatedLift)
	assert.Equal(t, domain.SegmentAllocated, first.Status)

	second := job.Segments[1]
	assert.Nil(t, second.AllocatedLift)
	assert.Nil(t, second.EngineerID)
	assert.Equal(t, 4.0, second.Duration)
}

func TestJobGetByIDNotFound(t *testing.T) {
	_, err := NewJobRepository(newStubSQL()).GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobUpdateRewritesSegments(t *testing.T) {
	sql := newStubSQL()
	sql.row[sqlinline.QSelectJobForUpdate] = jobRow("job-1", "Unallocated")
	sql.row[sqlinline.QUpdateJob] = []any{stamp.Add(time.Hour)}
	sql.rows[sqlinline.QListJobSegments] = [][]any{
		{"seg-1", "job-1", 8.0, "2024-01-06", nil, nil, "Unallocated", nil},
	}

	job, err := NewJobRepository(sql).Update(context.Background(), "job-1", func(j *domain.Job) error {
		j.Segments[0].Status = domain.SegmentAllocated
		j.Status = domain.JobAllocated
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, stamp.Add(time.Hour), job.UpdatedAt)

	require.Len(t, sql.execs, 2)
	assert.Equal(t, sqlinline.QDeleteJobSegments, sql.execs[0].query)
	insert := sql.execs[1]
	assert.Equal(t, sqlinline.QInsertJobSegment, insert.query)
	assert.Equal(t, "seg-1", insert.args[0])
	assert.Equal(t, 0, insert.args[2])
	assert.Equal(t, "2024-01-06", insert.args[4])
	assert.Equal(t, domain.SegmentAllocated, insert.args[7])
}

func TestJobUpdateSkipsWritesWhenMutatorFails(t *testing.T) {
	sql := newStubSQL()
	sql.row[sqlinline.QSelectJobForUpdate] = jobRow("job-1", "Unallocated")

	boom := errors.New("boom")
	_, err := NewJobRepository(sql).Update(context.Background(), "job-1", func(*domain.Job) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Empty(t, sql.execs)
}

func TestJobCreateWritesSegmentsInOrder(t *testing.T) {
	sql := newStubSQL()
	sql.row[sqlinline.QInsertJob] = []any{stamp, stamp}
	d1, d2 := "2024-01-06", "2024-01-08"
	job := &domain.Job{
		ID:             "job-1",
		EntityID:       "ent-1",
		Reference:      "BPP99200001",
		EstimatedHours: 12,
		Status:         domain.JobUnallocated,
		Segments: []domain.JobSegment{
			{SegmentID: "a", Duration: 8, Date: &d1, Status: domain.SegmentUnallocated},
			{SegmentID: "b", Duration: 4, Date: &d2, Status: domain.SegmentUnallocated},
		},
	}

	require.NoError(t, NewJobRepository(sql).Create(context.Background(), job))
	assert.Equal(t, stamp, job.CreatedAt)
	require.Len(t, sql.execs, 2)
	assert.Equal(t, "a", sql.execs[0].args[0])
	assert.Equal(t, 1, sql.execs[1].args[2])
	assert.Equal(t, 1, sql.txs)
}

func TestJobListByEntityAttachesSegments(t *testing.T) {
	sql := newStubSQL()
	sql.rows[sqlinline.QListJobsByEntity] = [][]any{jobRow("job-2", "Unallocated"), jobRow("job-1", "Allocated")}
	sql.rows[sqlinline.QListJobSegments] = [][]any{
		{"s1", "job-1", 8.0, "2024-01-06", nil, "lift-1", "Allocated", nil},
		{"s2", "job-2", 2.0, "2024-01-09", nil, nil, "Unallocated", nil},
	}

	jobs, err := NewJobRepository(sql).ListByEntity(context.Background(), "ent-1", 50)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "s2", jobs[0].Segments[0].SegmentID)
	assert.Equal(t, "s1", jobs[1].Segments[0].SegmentID)
}

func TestNominalReplaceAll(t *testing.T) {
	sql := newStubSQL()
	codes := []domain.NominalCode{{ID: "sales", Code: "4000", Name: "Sales"}}
	rules := []domain.NominalCodeRule{{ID: "r1", Priority: 5, EntityID: "all", ItemType: domain.ItemPart, NominalCodeID: "sales"}}

	require.NoError(t, NewNominalRuleRepository(sql).ReplaceAll(context.Background(), codes, rules))
	require.Len(t, sql.execs, 3)
	assert.Equal(t, sqlinline.QUpsertNominalCode, sql.execs[0].query)
	assert.Equal(t, sqlinline.QDeleteNominalRules, sql.execs[1].query)
	assert.Equal(t, sqlinline.QInsertNominalRule, sql.execs[2].query)
}

func TestNominalReplaceAllStoresImportOrder(t *testing.T) {
	sql := newStubSQL()
	rules := []domain.NominalCodeRule{
		{ID: "z-tyres", Priority: 10, EntityID: "all", ItemType: domain.ItemPart, NominalCodeID: "tyres"},
		{ID: "a-parts", Priority: 10, EntityID: "all", ItemType: domain.ItemPart, NominalCodeID: "parts"},
	}

	require.NoError(t, NewNominalRuleRepository(sql).ReplaceAll(context.Background(), nil, rules))
	require.Len(t, sql.execs, 3)
	for i, call := range sql.execs[1:] {
		assert.Equal(t, rules[i].ID, call.args[0])
		assert.Equal(t, i, call.args[len(call.args)-1], "position of %s", rules[i].ID)
	}
	assert.Contains(t, sqlinline.QListNominalRulesForEntity, "order by priority desc, position, id")
}

func TestJobListByEntityMalformedIDOnQuery(t *testing.T) {
	sql := newStubSQL()
	sql.queryErr[sqlinline.QListJobsByEntity] = &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}

	jobs, err := NewJobRepository(sql).ListByEntity(context.Background(), "not-a-uuid", 50)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	sql.queryErr[sqlinline.QListJobsByEntity] = errors.New("connection reset")
	_, err = NewJobRepository(sql).ListByEntity(context.Background(), "ent-1", 50)
	require.Error(t, err)
}

func TestNominalListForEntity(t *testing.T) {
	sql := newStubSQL()
	sql.rows[sqlinline.QListNominalRulesForEntity] = [][]any{
		{"r1", "Tyres", 100, "all", "Part", "tyre", "repair", "sales-tyres"},
	}
	rules, err := NewNominalRuleRepository(sql).ListForEntity(context.Background(), "ent-1")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, domain.ItemPart, rules[0].ItemType)
	assert.Equal(t, 100, rules[0].Priority)
}

func TestEntityGetByID(t *testing.T) {
	sql := newStubSQL()
	sql.row[sqlinline.QSelectEntity] = []any{"ent-1", "Bodyshop", "BPP"}
	e, err := NewEntityRepository(sql).GetByID(context.Background(), "ent-1")
	require.NoError(t, err)
	assert.Equal(t, "BPP", e.ShortCode)

	_, err = NewEntityRepository(newStubSQL()).GetByID(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntityCreateDuplicateShortCode(t *testing.T) {
	sql := newStubSQL()
	sql.execErr[sqlinline.QInsertEntity] = &pgconn.PgError{Code: "23505", Message: "duplicate key"}

	err := NewEntityRepository(sql).Create(context.Background(), &domain.BusinessEntity{ID: "ent-2", Name: "Bodyshop", ShortCode: "BPP"})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	sql = newStubSQL()
	require.NoError(t, NewEntityRepository(sql).Create(context.Background(), &domain.BusinessEntity{ID: "ent-3", Name: "Valeting", ShortCode: "BAV"}))
	assert.Equal(t, []any{"ent-3", "Valeting", "BAV"}, sql.execs[0].args)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	sql := newStubSQL()
	badUUID := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}
	sql.rowErr[sqlinline.QSelectJob] = badUUID
	sql.rowErr[sqlinline.QLockEntity] = badUUID

	_, err := NewJobRepository(sql).GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = NewSequenceRepository(sql).Reserve(context.Background(), "not-a-uuid", "992")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
