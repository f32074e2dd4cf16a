package scheduling

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"garage/internal/domain"
)

// MaxSegmentHours caps the work booked on a single day.
const MaxSegmentHours = 8.0

// DateLayout is the ISO calendar date format stored on segments.
const DateLayout = "2006-01-02"

// SplitIntoSegments partitions estimatedHours into consecutive daily segments
// of at most MaxSegmentHours, starting on the UTC calendar day of start and
// skipping Sundays. Every segment starts Unallocated.
func SplitIntoSegments(estimatedHours float64, start time.Time) ([]domain.JobSegment, error) {
	if math.IsNaN(estimatedHours) || math.IsInf(estimatedHours, 0) || estimatedHours <= 0 {
		return nil, fmt.Errorf("split %v hours: %w", estimatedHours, domain.ErrInvalidHours)
	}

	current := utcDay(start)
	remaining := estimatedHours
	segments := make([]domain.JobSegment, 0, int(math.Ceil(estimatedHours/MaxSegmentHours)))

	for remaining > 0 {
		if current.Weekday() == time.Sunday {
			current = current.AddDate(0, 0, 1)
			continue
		}
		duration := math.Min(remaining, MaxSegmentHours)
		date := current.Format(DateLayout)
		segments = append(segments, domain.JobSegment{
			SegmentID: uuid.NewString(),
			Duration:  duration,
			Date:      &date,
			Status:    domain.SegmentUnallocated,
		})
		remaining -= duration
		current = current.AddDate(0, 0, 1)
	}
	return segments, nil
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, domain.ErrInvalidArgument)
	}
	return t, nil
}

// Clock returns the current instant.
type Clock func() time.Time

// Splitter splits jobs whose start date may be omitted, in which case the
// clock's UTC day is used.
type Splitter struct {
	Clock Clock
}

// NewSplitter returns a Splitter backed by clock, or time.Now when nil.
func NewSplitter(clock Clock) *Splitter {
	if clock == nil {
		clock = time.Now
	}
	return &Splitter{Clock: clock}
}

// Split splits estimatedHours starting at start, or today when start is nil.
func (s *Splitter) Split(estimatedHours float64, start *time.Time) ([]domain.JobSegment, error) {
	if start != nil {
		return SplitIntoSegments(estimatedHours, *start)
	}
	return SplitIntoSegments(estimatedHours, s.Clock())
}

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
