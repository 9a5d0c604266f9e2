// Command mockapi serves a fake NeonPanda backend with generated data, for
// developing the client without platform credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/neonpanda/neonpanda-client/internal/api"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var disciplines = []string{"running", "strength", "crossfit", "cycling", "swimming", "yoga"}

type mockServer struct {
	mu sync.Mutex

	workouts      []api.Workout
	coaches       []api.Coach
	conversations []api.Conversation
	reports       []api.Report

	memoriesCount  int
	programsCount  int
	exercisesCount int
}

func newMockServer(workoutCount int) *mockServer {
	s := &mockServer{
		memoriesCount:  gofakeit.Number(0, 40),
		programsCount:  gofakeit.Number(0, 10),
		exercisesCount: gofakeit.Number(20, 200),
	}

	for i := 0; i < gofakeit.Number(2, 4); i++ {
		s.coaches = append(s.coaches, api.Coach{
			CoachID: uuid.NewString(),
			Name:    gofakeit.FirstName(),
			CoachConfig: api.CoachConfig{
				SelectedPersonality: gofakeit.RandomString([]string{"marcus", "emma", "diana"}),
				SelectedMethodology: gofakeit.RandomString([]string{"strength_focused", "endurance", "hybrid"}),
			},
		})
	}

	for i := 0; i < workoutCount; i++ {
		confidence := gofakeit.Float64Range(0.2, 1.0)
		completedAt := gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now())
		s.workouts = append(s.workouts, api.Workout{
			WorkoutID:   uuid.NewString(),
			CompletedAt: completedAt,
			Duration:    gofakeit.Number(10, 120) * 60,
			Discipline:  gofakeit.RandomString(disciplines),
			Location:    gofakeit.City(),
			Summary:     gofakeit.Sentence(6),
			WorkoutData: api.WorkoutData{
				PerformanceMetrics: map[string]float64{
					"avg_heart_rate": gofakeit.Float64Range(90, 180),
					"calories":       gofakeit.Float64Range(150, 900),
				},
			},
			ExtractionMetadata: api.ExtractionMetadata{Confidence: &confidence},
			CoachIDs:           []string{s.coaches[gofakeit.Number(0, len(s.coaches)-1)].CoachID},
		})
	}

	for i := 0; i < gofakeit.Number(3, 12); i++ {
		createdAt := gofakeit.DateRange(time.Now().AddDate(0, -2, 0), time.Now())
		s.conversations = append(s.conversations, api.Conversation{
			ConversationID: uuid.NewString(),
			Title:          gofakeit.Sentence(4),
			CreatedAt:      createdAt,
			Metadata: api.ConversationMetadata{
				LastActivity:  gofakeit.DateRange(createdAt, time.Now()),
				TotalMessages: gofakeit.Number(1, 80),
			},
		})
	}

	for week := 0; week < 8; week++ {
		s.reports = append(s.reports, api.Report{
			WeekID: api.ISOWeekID(time.Now().AddDate(0, 0, -7*week)),
			AnalyticsData: map[string]any{
				"total_volume": gofakeit.Float64Range(1000, 20000),
				"avg_duration": gofakeit.Float64Range(1200, 5400),
			},
			Metadata: api.ReportMetadata{WorkoutCount: gofakeit.Number(0, 7)},
		})
	}

	return s
}

func (s *mockServer) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	users := r.PathPrefix("/users/{userId}").Subrouter()

	users.HandleFunc("/workouts/count", s.handleWorkoutsCount).Methods(http.MethodGet)
	users.HandleFunc("/workouts", s.handleListWorkouts).Methods(http.MethodGet)
	users.HandleFunc("/workouts/{workoutId}", s.handleGetWorkout).Methods(http.MethodGet)
	users.HandleFunc("/workouts/{workoutId}", s.handleUpdateWorkout).Methods(http.MethodPut)
	users.HandleFunc("/workouts/{workoutId}", s.handleDeleteWorkout).Methods(http.MethodDelete)

	users.HandleFunc("/coaches/count", s.handleCoachesCount).Methods(http.MethodGet)
	users.HandleFunc("/coaches", s.handleListCoaches).Methods(http.MethodGet)
	users.HandleFunc("/coaches/{coachId}", s.handleGetCoach).Methods(http.MethodGet)

	users.HandleFunc("/conversations/count", s.handleConversationsCount).Methods(http.MethodGet)
	users.HandleFunc("/conversations", s.handleListConversations).Methods(http.MethodGet)
	users.HandleFunc("/conversations", s.handleCreateConversation).Methods(http.MethodPost)

	users.HandleFunc("/reports/count", s.handleReportsCount).Methods(http.MethodGet)
	users.HandleFunc("/reports", s.handleListReports).Methods(http.MethodGet)
	users.HandleFunc("/reports/{weekId}", s.handleGetReport).Methods(http.MethodGet)

	users.HandleFunc("/memories/count", s.countHandler(&s.memoriesCount)).Methods(http.MethodGet)
	users.HandleFunc("/programs/count", s.countHandler(&s.programsCount)).Methods(http.MethodGet)
	users.HandleFunc("/exercises/count", s.countHandler(&s.exercisesCount)).Methods(http.MethodGet)

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("%s %s", r.Method, r.URL.String())
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("write response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func (s *mockServer) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := r.URL.Query()
	discipline := query.Get("discipline")
	coachID := query.Get("coachId")

	limit := len(s.workouts)
	if rawLimit := query.Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "invalid limit: %s", rawLimit)
			return
		}
		limit = parsed
	}

	matched := make([]api.Workout, 0, limit)
	for _, workout := range s.workouts {
		if discipline != "" && workout.Discipline != discipline {
			continue
		}
		if coachID != "" && !containsString(workout.CoachIDs, coachID) {
			continue
		}
		matched = append(matched, workout)
		if len(matched) == limit {
			break
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"workouts": matched})
}

func (s *mockServer) handleWorkoutsCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coachID := r.URL.Query().Get("coachId")
	count := 0
	for _, workout := range s.workouts {
		if coachID != "" && !containsString(workout.CoachIDs, coachID) {
			continue
		}
		count++
	}
	writeJSON(w, http.StatusOK, map[string]int{"totalCount": count})
}

func (s *mockServer) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workoutID := mux.Vars(r)["workoutId"]
	for i := range s.workouts {
		if s.workouts[i].WorkoutID == workoutID {
			writeJSON(w, http.StatusOK, map[string]any{"workout": s.workouts[i]})
			return
		}
	}
	writeError(w, http.StatusNotFound, "workout %s not found", workoutID)
}

func (s *mockServer) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var update api.WorkoutUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %s", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	workoutID := mux.Vars(r)["workoutId"]
	for i := range s.workouts {
		if s.workouts[i].WorkoutID != workoutID {
			continue
		}
		if update.WorkoutData != nil {
			s.workouts[i].WorkoutData = *update.WorkoutData
		}
		if update.ExtractionMetadata != nil {
			s.workouts[i].ExtractionMetadata = *update.ExtractionMetadata
		}
		writeJSON(w, http.StatusOK, map[string]any{"workout": s.workouts[i]})
		return
	}
	writeError(w, http.StatusNotFound, "workout %s not found", workoutID)
}

func (s *mockServer) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workoutID := mux.Vars(r)["workoutId"]
	for i := range s.workouts {
		if s.workouts[i].WorkoutID == workoutID {
			s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"deletedId": workoutID})
			return
		}
	}
	writeError(w, http.StatusNotFound, "workout %s not found", workoutID)
}

func (s *mockServer) handleListCoaches(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"coaches": s.coaches})
}

func (s *mockServer) handleCoachesCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"totalCount": len(s.coaches)})
}

func (s *mockServer) handleGetCoach(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coachID := mux.Vars(r)["coachId"]
	for i := range s.coaches {
		if s.coaches[i].CoachID == coachID {
			writeJSON(w, http.StatusOK, map[string]any{"coach": s.coaches[i]})
			return
		}
	}
	writeError(w, http.StatusNotFound, "coach %s not found", coachID)
}

func (s *mockServer) handleListConversations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := len(s.conversations)
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "invalid limit: %s", rawLimit)
			return
		}
		limit = parsed
	}
	if limit > len(s.conversations) {
		limit = len(s.conversations)
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": s.conversations[:limit]})
}

func (s *mockServer) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CoachID string `json:"coachId"`
		Title   string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: %s", err)
		return
	}
	if req.CoachID == "" {
		writeError(w, http.StatusBadRequest, "coachId is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := api.Conversation{
		ConversationID: uuid.NewString(),
		Title:          req.Title,
		CreatedAt:      time.Now(),
		Metadata:       api.ConversationMetadata{LastActivity: time.Now()},
	}
	s.conversations = append([]api.Conversation{created}, s.conversations...)

	writeJSON(w, http.StatusCreated, map[string]any{"conversation": created})
}

func (s *mockServer) handleConversationsCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"totalCount": len(s.conversations)})
}

func (s *mockServer) handleListReports(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"reports": s.reports})
}

func (s *mockServer) handleGetReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	weekID := mux.Vars(r)["weekId"]
	for i := range s.reports {
		if s.reports[i].WeekID == weekID {
			writeJSON(w, http.StatusOK, map[string]any{"report": s.reports[i]})
			return
		}
	}
	writeError(w, http.StatusNotFound, "report %s not found", weekID)
}

func (s *mockServer) handleReportsCount(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"totalCount": len(s.reports)})
}

func (s *mockServer) countHandler(count *int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]int{"totalCount": *count})
	}
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	workoutCount := flag.Int("workouts", 40, "number of generated workouts")
	seed := flag.Int64("seed", 0, "gofakeit seed, 0 for random")
	flag.Parse()

	log.SetLevel(log.DebugLevel)
	gofakeit.Seed(*seed)

	server := newMockServer(*workoutCount)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("mock NeonPanda backend listening on %s", addr)
	if err := http.ListenAndServe(addr, server.router()); err != nil {
		log.Fatalf("listen and serve: %s", err)
	}
}
