package scheduling

import (
	"slices"

	"garage/internal/domain"
)

// CalculateJobStatus derives the overall job status from its segments.
// Rules are evaluated in order; the first match wins:
//
//  1. no segments                                  -> Unallocated
//  2. every segment cancelled                      -> Cancelled
//  3. any active segment In Progress or Paused     -> In Progress
//  4. every active segment QC Complete             -> Complete
//  5. every active segment Engineer or QC Complete -> Pending QC
//  6. any active segment allocated or beyond       -> Allocated
//  7. otherwise                                    -> Unallocated
func CalculateJobStatus(segments []domain.JobSegment) domain.JobStatus {
	if len(segments) == 0 {
		return domain.JobUnallocated
	}

	active := make([]domain.SegmentStatus, 0, len(segments))
	for _, seg := range segments {
		if seg.Status != domain.SegmentCancelled {
			active = append(active, seg.Status)
		}
	}
	if len(active) == 0 {
		return domain.JobCancelled
	}

	if anyOf(active, domain.SegmentInProgress, domain.SegmentPaused) {
		return domain.JobInProgress
	}
	if allOf(active, domain.SegmentQCComplete) {
		return domain.JobComplete
	}
	if allOf(active, domain.SegmentEngineerComplete, domain.SegmentQCComplete) {
		return domain.JobPendingQC
	}
	if anyOf(active, domain.SegmentAllocated, domain.SegmentEngineerComplete, domain.SegmentQCComplete) {
		return domain.JobAllocated
	}
	return domain.JobUnallocated
}

func anyOf(statuses []domain.SegmentStatus, want ...domain.SegmentStatus) bool {
	for _, s := range statuses {
		if slices.Contains(want, s) {
			return true
		}
	}
	return false
}

func allOf(statuses []domain.SegmentStatus, want ...domain.SegmentStatus) bool {
	for _, s := range statuses {
		if !slices.Contains(want, s) {
			return false
		}
	}
	return true
}
