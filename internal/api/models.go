package api

import "time"

// Workout is created server-side by the ingestion pipeline; the client only
// reads it, updates metadata fields, or deletes it.
type Workout struct {
	WorkoutID          string             `json:"workoutId"`
	CompletedAt        time.Time          `json:"completedAt"`
	Duration           int                `json:"duration"` // seconds
	Discipline         string             `json:"discipline"`
	Location           string             `json:"location"`
	Summary            string             `json:"summary"`
	WorkoutData        WorkoutData        `json:"workoutData"`
	ExtractionMetadata ExtractionMetadata `json:"extractionMetadata"`
	CoachIDs           []string           `json:"coachIds"`
}

type WorkoutData struct {
	PerformanceMetrics map[string]float64 `json:"performance_metrics,omitempty"`
}

type ExtractionMetadata struct {
	// Confidence is nil when the extraction pipeline produced no score.
	Confidence *float64 `json:"confidence,omitempty"`
}

// WorkoutUpdate carries the only workout fields the client may change.
type WorkoutUpdate struct {
	WorkoutData        *WorkoutData        `json:"workoutData,omitempty"`
	ExtractionMetadata *ExtractionMetadata `json:"extractionMetadata,omitempty"`
}

type Coach struct {
	CoachID     string      `json:"coachId"`
	Name        string      `json:"name"`
	CoachConfig CoachConfig `json:"coachConfig"`
}

type CoachConfig struct {
	Metadata            map[string]any `json:"metadata,omitempty"`
	TechnicalConfig     map[string]any `json:"technical_config,omitempty"`
	SelectedPersonality string         `json:"selected_personality,omitempty"`
	SelectedMethodology string         `json:"selected_methodology,omitempty"`
	SafetyProfile       map[string]any `json:"safety_profile,omitempty"`
}

type Conversation struct {
	ConversationID string               `json:"conversationId"`
	Title          string               `json:"title"`
	CreatedAt      time.Time            `json:"createdAt"`
	Metadata       ConversationMetadata `json:"metadata"`
}

type ConversationMetadata struct {
	LastActivity  time.Time `json:"lastActivity"`
	TotalMessages int       `json:"totalMessages"`
}

// Report is keyed by ISO week id, e.g. "2026-W35".
type Report struct {
	WeekID        string         `json:"weekId"`
	AnalyticsData map[string]any `json:"analyticsData,omitempty"`
	Metadata      ReportMetadata `json:"metadata"`
}

type ReportMetadata struct {
	WorkoutCount int `json:"workoutCount"`
}

// collection / envelope responses

type workoutsResponse struct {
	Workouts []Workout `json:"workouts"`
}

type workoutResponse struct {
	Workout Workout `json:"workout"`
}

type coachesResponse struct {
	Coaches []Coach `json:"coaches"`
}

type coachResponse struct {
	Coach Coach `json:"coach"`
}

type conversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type conversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

type reportsResponse struct {
	Reports []Report `json:"reports"`
}

type reportResponse struct {
	Report Report `json:"report"`
}

type countResponse struct {
	TotalCount int `json:"totalCount"`
}

type deleteResponse struct {
	DeletedID string `json:"deletedId"`
}
