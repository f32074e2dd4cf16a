package domain

import "time"

// SegmentStatus enumerates the workshop states of a single job segment.
type SegmentStatus string

const (
	SegmentUnallocated      SegmentStatus = "Unallocated"
	SegmentAllocated        SegmentStatus = "Allocated"
	SegmentInProgress       SegmentStatus = "In Progress"
	SegmentPaused           SegmentStatus = "Paused"
	SegmentEngineerComplete SegmentStatus = "Engineer Complete"
	SegmentQCComplete       SegmentStatus = "QC Complete"
	SegmentCancelled        SegmentStatus = "Cancelled"
)

// Valid reports whether s is one of the known segment states.
func (s SegmentStatus) Valid() bool {
	switch s {
	case SegmentUnallocated, SegmentAllocated, SegmentInProgress, SegmentPaused,
		SegmentEngineerComplete, SegmentQCComplete, SegmentCancelled:
		return true
	}
	return false
}

// JobStatus enumerates the overall job states. Invoiced and Closed are set by
// billing processes; every other value is derived from the segments.
type JobStatus string

const (
	JobUnallocated JobStatus = "Unallocated"
	JobAllocated   JobStatus = "Allocated"
	JobInProgress  JobStatus = "In Progress"
	JobPendingQC   JobStatus = "Pending QC"
	JobComplete    JobStatus = "Complete"
	JobCancelled   JobStatus = "Cancelled"
	JobInvoiced    JobStatus = "Invoiced"
	JobClosed      JobStatus = "Closed"
)

// Derived reports whether the status is computed from segments rather than
// set by an external process.
func (s JobStatus) Derived() bool {
	return s != JobInvoiced && s != JobClosed
}

// JobSegment is one day's slice of a job's estimated work.
type JobSegment struct {
	SegmentID             string        `json:"segmentId"`
	Duration              float64       `json:"duration"`
	Date                  *string       `json:"date"`
	ScheduledStartSegment *int          `json:"scheduledStartSegment"`
	AllocatedLift         *string       `json:"allocatedLift"`
	Status                SegmentStatus `json:"status"`
	EngineerID            *string       `json:"engineerId,omitempty"`
}

// Job is a unit of workshop work owned by a business entity.
type Job struct {
	ID                  string       `json:"id"`
	EntityID            string       `json:"entityId"`
	Reference           string       `json:"reference"`
	Description         string       `json:"description"`
	VehicleRegistration string       `json:"vehicleRegistration,omitempty"`
	EstimatedHours      float64      `json:"estimatedHours"`
	Status              JobStatus    `json:"status"`
	Segments            []JobSegment `json:"segments"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// Segment returns a pointer to the segment with the given id, or nil.
func (j *Job) Segment(segmentID string) *JobSegment {
	for i := range j.Segments {
		if j.Segments[i].SegmentID == segmentID {
			return &j.Segments[i]
		}
	}
	return nil
}
