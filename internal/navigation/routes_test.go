package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteHelpers(t *testing.T) {
	snap := fullContextSnapshot()

	assert.Equal(t, "/", snap.HomeRoute())
	assert.Equal(t, "/coaches?userId=user-1", snap.CoachesRoute())
	assert.Equal(t, "/training-grounds?userId=user-1&coachId=coach-1", snap.TrainingRoute())
	assert.Equal(t, "/training-grounds/manage-workouts?userId=user-1&coachId=coach-1", snap.WorkoutsRoute())
	assert.Equal(t, "/training-grounds/coach-conversations?userId=user-1&coachId=coach-1", snap.ConversationsRoute())
	assert.Equal(t, "/training-grounds/manage-conversations?userId=user-1&coachId=coach-1", snap.ManageConversationsRoute())
	assert.Equal(t, "/training-grounds/manage-memories?userId=user-1&coachId=coach-1", snap.MemoriesRoute())
	assert.Equal(t, "/training-grounds/reports?userId=user-1&coachId=coach-1", snap.ReportsRoute())
	assert.Equal(t, "/training-grounds/reports/weekly?userId=user-1&coachId=coach-1", snap.WeeklyReportRoute())
	assert.Equal(t, "/settings", snap.SettingsRoute())
}

func TestRouteHelpersWithoutContext(t *testing.T) {
	anonymous := Snapshot{}
	assert.Equal(t, "/", anonymous.HomeRoute())
	assert.Equal(t, DisabledRoute, anonymous.CoachesRoute())
	assert.Equal(t, DisabledRoute, anonymous.TrainingRoute())
	assert.Equal(t, DisabledRoute, anonymous.WeeklyReportRoute())

	// authenticated but no coach selected yet
	noCoach := Snapshot{UserID: "user-1", IsAuthenticated: true}
	assert.Equal(t, "/coaches?userId=user-1", noCoach.CoachesRoute())
	assert.Equal(t, DisabledRoute, noCoach.WorkoutsRoute())

	// full identifiers without authentication still disable coach routes
	unauthenticated := Snapshot{UserID: "user-1", CoachID: "coach-1"}
	assert.Equal(t, DisabledRoute, unauthenticated.TrainingRoute())
}
