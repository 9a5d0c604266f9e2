package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBreadcrumbsRoot(t *testing.T) {
	crumbs := BuildBreadcrumbs("/")
	require.Len(t, crumbs, 1)
	assert.Equal(t, "Home", crumbs[0].Label)
	assert.True(t, crumbs[0].IsCurrent)
	assert.Empty(t, crumbs[0].Route)
}

func TestBuildBreadcrumbsNested(t *testing.T) {
	crumbs := BuildBreadcrumbs("/training-grounds/manage-workouts")
	require.Len(t, crumbs, 3)

	assert.Equal(t, "Home", crumbs[0].Label)
	assert.Equal(t, "/", crumbs[0].Route)
	assert.False(t, crumbs[0].IsCurrent)

	assert.Equal(t, "Training Grounds", crumbs[1].Label)
	assert.Equal(t, "/training-grounds", crumbs[1].Route)

	assert.Equal(t, "Manage Workouts", crumbs[2].Label)
	assert.True(t, crumbs[2].IsCurrent)
	assert.Empty(t, crumbs[2].Route)
}

func TestBuildBreadcrumbsWorkoutDetail(t *testing.T) {
	crumbs := BuildBreadcrumbs("/training-grounds/workouts/w-42")
	require.Len(t, crumbs, 4)

	assert.Equal(t, "Home", crumbs[0].Label)
	assert.Equal(t, "Training Grounds", crumbs[1].Label)
	// re-parented under the management page for display
	assert.Equal(t, "Manage Workouts", crumbs[2].Label)
	assert.Equal(t, "/training-grounds/manage-workouts", crumbs[2].Route)
	assert.Equal(t, "Workout Details", crumbs[3].Label)
	assert.True(t, crumbs[3].IsCurrent)
}

func TestBuildBreadcrumbsConversationDetail(t *testing.T) {
	crumbs := BuildBreadcrumbs("/training-grounds/coach-conversations/conv-7")
	require.Len(t, crumbs, 4)
	assert.Equal(t, "Coach Conversations", crumbs[2].Label)
	assert.Equal(t, "Conversation", crumbs[3].Label)
	assert.True(t, crumbs[3].IsCurrent)
}

func TestBuildBreadcrumbsWeeklyReport(t *testing.T) {
	crumbs := BuildBreadcrumbs("/training-grounds/reports/weekly")
	require.Len(t, crumbs, 4)
	assert.Equal(t, "Reports", crumbs[2].Label)
	assert.Equal(t, "/training-grounds/reports", crumbs[2].Route)
	assert.Equal(t, "Weekly Report", crumbs[3].Label)
}

func TestBuildBreadcrumbsUnknownSegments(t *testing.T) {
	crumbs := BuildBreadcrumbs("/some-new/page")
	require.Len(t, crumbs, 3)
	assert.Equal(t, "Some New", crumbs[1].Label)
	assert.Equal(t, "Page", crumbs[2].Label)
}

func TestBuildBreadcrumbsTrailingSlash(t *testing.T) {
	assert.Equal(t, BuildBreadcrumbs("/coaches"), BuildBreadcrumbs("/coaches/"))
}
