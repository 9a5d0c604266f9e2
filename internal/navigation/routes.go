package navigation

import (
	"fmt"
	"net/url"
)

// DisabledRoute marks a route whose preconditions are unmet; callers must
// not navigate to it.
const DisabledRoute = "#"

// Route helpers are pure functions of the snapshot.

func (s Snapshot) HomeRoute() string {
	return "/"
}

func (s Snapshot) CoachesRoute() string {
	if s.UserID == "" {
		return DisabledRoute
	}
	return fmt.Sprintf("/coaches?userId=%s", url.QueryEscape(s.UserID))
}

func (s Snapshot) TrainingRoute() string {
	return s.coachScoped("/training-grounds")
}

func (s Snapshot) WorkoutsRoute() string {
	return s.coachScoped("/training-grounds/manage-workouts")
}

func (s Snapshot) ConversationsRoute() string {
	return s.coachScoped("/training-grounds/coach-conversations")
}

func (s Snapshot) ManageConversationsRoute() string {
	return s.coachScoped("/training-grounds/manage-conversations")
}

func (s Snapshot) MemoriesRoute() string {
	return s.coachScoped("/training-grounds/manage-memories")
}

func (s Snapshot) ReportsRoute() string {
	return s.coachScoped("/training-grounds/reports")
}

func (s Snapshot) WeeklyReportRoute() string {
	return s.coachScoped("/training-grounds/reports/weekly")
}

func (s Snapshot) SettingsRoute() string {
	return "/settings"
}

func (s Snapshot) coachScoped(path string) string {
	if !s.HasCoachContext() {
		return DisabledRoute
	}
	return fmt.Sprintf(
		"%s?userId=%s&coachId=%s",
		path, url.QueryEscape(s.UserID), url.QueryEscape(s.CoachID),
	)
}
