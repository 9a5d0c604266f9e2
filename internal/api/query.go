package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	minLimit = 1
	maxLimit = 100
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) valid() bool {
	return o == "" || o == SortAsc || o == SortDesc
}

type WorkoutSortField string

const (
	WorkoutSortCompletedAt WorkoutSortField = "completedAt"
	WorkoutSortConfidence  WorkoutSortField = "confidence"
	WorkoutSortDuration    WorkoutSortField = "duration"
)

// WorkoutListQuery enumerates every filter the workouts endpoints accept.
// Zero values mean "not set" and are omitted from the query string.
type WorkoutListQuery struct {
	FromDate      *time.Time
	ToDate        *time.Time
	Discipline    string
	WorkoutType   string
	Location      string
	CoachID       string
	MinConfidence *float64
	Limit         *int // nil = server default; explicit values must be 1..100
	Offset        int
	SortBy        WorkoutSortField
	SortOrder     SortOrder
}

func (q WorkoutListQuery) Validate() error {
	if err := validateLimit(q.Limit); err != nil {
		return err
	}
	if q.Offset < 0 {
		return newValidationError("offset must not be negative, got %d", q.Offset)
	}
	if q.MinConfidence != nil && (*q.MinConfidence < 0 || *q.MinConfidence > 1) {
		return newValidationError("minConfidence must be within [0,1], got %v", *q.MinConfidence)
	}
	switch q.SortBy {
	case "", WorkoutSortCompletedAt, WorkoutSortConfidence, WorkoutSortDuration:
	default:
		return newValidationError("unknown sortBy field: %s", q.SortBy)
	}
	if !q.SortOrder.valid() {
		return newValidationError("unknown sortOrder: %s", q.SortOrder)
	}
	return nil
}

func (q WorkoutListQuery) values() url.Values {
	vals := url.Values{}
	if q.FromDate != nil {
		vals.Set("fromDate", q.FromDate.UTC().Format(time.RFC3339))
	}
	if q.ToDate != nil {
		vals.Set("toDate", q.ToDate.UTC().Format(time.RFC3339))
	}
	if q.Discipline != "" {
		vals.Set("discipline", q.Discipline)
	}
	if q.WorkoutType != "" {
		vals.Set("workoutType", q.WorkoutType)
	}
	if q.Location != "" {
		vals.Set("location", q.Location)
	}
	if q.CoachID != "" {
		vals.Set("coachId", q.CoachID)
	}
	if q.MinConfidence != nil {
		vals.Set("minConfidence", strconv.FormatFloat(*q.MinConfidence, 'f', -1, 64))
	}
	if q.Limit != nil {
		vals.Set("limit", strconv.Itoa(*q.Limit))
	}
	if q.Offset != 0 {
		vals.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.SortBy != "" {
		vals.Set("sortBy", string(q.SortBy))
	}
	if q.SortOrder != "" {
		vals.Set("sortOrder", string(q.SortOrder))
	}
	return vals
}

// ListQuery is the plain list shape shared by conversations and reports.
type ListQuery struct {
	CoachID   string
	Limit     *int // nil = server default; explicit values must be 1..100
	Offset    int
	SortOrder SortOrder
}

func (q ListQuery) Validate() error {
	if err := validateLimit(q.Limit); err != nil {
		return err
	}
	if q.Offset < 0 {
		return newValidationError("offset must not be negative, got %d", q.Offset)
	}
	if !q.SortOrder.valid() {
		return newValidationError("unknown sortOrder: %s", q.SortOrder)
	}
	return nil
}

func (q ListQuery) values() url.Values {
	vals := url.Values{}
	if q.CoachID != "" {
		vals.Set("coachId", q.CoachID)
	}
	if q.Limit != nil {
		vals.Set("limit", strconv.Itoa(*q.Limit))
	}
	if q.Offset != 0 {
		vals.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.SortOrder != "" {
		vals.Set("sortOrder", string(q.SortOrder))
	}
	return vals
}

func validateLimit(limit *int) error {
	if limit == nil {
		return nil
	}
	if *limit < minLimit || *limit > maxLimit {
		return newValidationError(
			"limit must be within [%d,%d], got %d", minLimit, maxLimit, *limit,
		)
	}
	return nil
}

// Limit is a convenience for building queries with an explicit limit.
func Limit(n int) *int {
	return &n
}

// Confidence is a convenience for building queries with a minimum confidence.
func Confidence(v float64) *float64 {
	return &v
}

// ISOWeekID renders a time as the backend's report key, e.g. "2026-W35".
func ISOWeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
