package scheduling

import (
	"fmt"

	"garage/internal/domain"
)

var transitions = map[domain.SegmentStatus][]domain.SegmentStatus{
	domain.SegmentUnallocated:      {domain.SegmentAllocated, domain.SegmentCancelled},
	domain.SegmentAllocated:        {domain.SegmentAllocated, domain.SegmentUnallocated, domain.SegmentInProgress, domain.SegmentCancelled},
	domain.SegmentInProgress:       {domain.SegmentPaused, domain.SegmentEngineerComplete, domain.SegmentCancelled},
	domain.SegmentPaused:           {domain.SegmentInProgress, domain.SegmentCancelled},
	domain.SegmentEngineerComplete: {domain.SegmentQCComplete, domain.SegmentInProgress},
	domain.SegmentCancelled:        {domain.SegmentUnallocated},
}

// CanTransition reports whether a segment may move from one status to another.
func CanTransition(from, to domain.SegmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Allocation places a segment on a lift and day.
type Allocation struct {
	Lift         string
	Date         *string
	StartSegment *int
	EngineerID   *string
}

// Transition moves a segment to status to and recomputes the job status.
// Moving back to Unallocated clears the lift and start hint.
func Transition(job *domain.Job, segmentID string, to domain.SegmentStatus) error {
	if err := checkMutable(job); err != nil {
		return err
	}
	seg := job.Segment(segmentID)
	if seg == nil {
		return fmt.Errorf("segment %s: %w", segmentID, domain.ErrNotFound)
	}
	if !to.Valid() {
		return fmt.Errorf("status %q: %w", to, domain.ErrInvalidArgument)
	}
	if seg.Status == to && to != domain.SegmentAllocated {
		return nil
	}
	if !CanTransition(seg.Status, to) {
		return fmt.Errorf("%s -> %s: %w", seg.Status, to, domain.ErrInvalidTransition)
	}
	seg.Status = to
	if to == domain.SegmentUnallocated {
		seg.AllocatedLift = nil
		seg.ScheduledStartSegment = nil
	}
	job.Status = CalculateJobStatus(job.Segments)
	return nil
}

// Allocate assigns a segment to a lift and marks it Allocated.
func Allocate(job *domain.Job, segmentID string, a Allocation) error {
	if a.Lift == "" {
		return fmt.Errorf("lift is required: %w", domain.ErrInvalidArgument)
	}
	if a.Date != nil {
		if _, err := ParseDate(*a.Date); err != nil {
			return err
		}
	}
	if err := Transition(job, segmentID, domain.SegmentAllocated); err != nil {
		return err
	}
	seg := job.Segment(segmentID)
	lift := a.Lift
	seg.AllocatedLift = &lift
	if a.Date != nil {
		seg.Date = a.Date
	}
	seg.ScheduledStartSegment = a.StartSegment
	if a.EngineerID != nil {
		seg.EngineerID = a.EngineerID
	}
	return nil
}

// Reschedule replaces the job's open segments with a fresh split. Cancelled
// segments stay as history. It fails once any segment has been started.
func Reschedule(job *domain.Job, fresh []domain.JobSegment, estimatedHours float64) error {
	if err := checkMutable(job); err != nil {
		return err
	}
	kept := make([]domain.JobSegment, 0, len(job.Segments)+len(fresh))
	for _, seg := range job.Segments {
		switch seg.Status {
		case domain.SegmentCancelled:
			kept = append(kept, seg)
		case domain.SegmentUnallocated, domain.SegmentAllocated:
		default:
			return fmt.Errorf("segment %s is %s: %w", seg.SegmentID, seg.Status, domain.ErrJobLocked)
		}
	}
	job.Segments = append(kept, fresh...)
	job.EstimatedHours = estimatedHours
	job.Status = CalculateJobStatus(job.Segments)
	return nil
}

func checkMutable(job *domain.Job) error {
	if !job.Status.Derived() {
		return fmt.Errorf("job %s is %s: %w", job.ID, job.Status, domain.ErrJobLocked)
	}
	return nil
}
