package workouts

import (
	"fmt"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/api"
)

// Formatting helpers are total functions: partial or missing data yields an
// explicit fallback string, never a panic.

const (
	unknownWorkout = "Unknown workout"
	unknownTime    = "Unknown time"
)

func FormatWorkoutSummary(w *api.Workout) string {
	if w == nil {
		return unknownWorkout
	}
	if w.Summary != "" {
		return w.Summary
	}
	if w.Discipline != "" {
		if w.Duration > 0 {
			return fmt.Sprintf("%s · %d min", w.Discipline, w.Duration/60)
		}
		return w.Discipline
	}
	return unknownWorkout
}

// FormatWorkoutTime renders a timestamp relative to now: "just now",
// "5m ago", "3h ago", "2d ago", then an absolute date beyond a week.
func FormatWorkoutTime(t time.Time) string {
	if t.IsZero() {
		return unknownTime
	}

	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FormatWorkoutTimestamp is the string-input variant used for raw backend
// values; a malformed value yields "Unknown time".
func FormatWorkoutTimestamp(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return unknownTime
	}
	return FormatWorkoutTime(t)
}

// Extraction confidence buckets shared by list and detail views.

func ConfidenceLabel(confidence *float64) string {
	switch {
	case confidence == nil:
		return "unverified"
	case *confidence >= 0.8:
		return "high"
	case *confidence >= 0.5:
		return "medium"
	default:
		return "low"
	}
}

func ConfidenceColor(confidence *float64) string {
	switch ConfidenceLabel(confidence) {
	case "high":
		return "green"
	case "medium":
		return "yellow"
	case "low":
		return "red"
	default:
		return "gray"
	}
}
