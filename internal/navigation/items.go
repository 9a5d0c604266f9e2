package navigation

type Section string

const (
	SectionPrimary     Section = "primary"
	SectionContextual  Section = "contextual"
	SectionQuickAccess Section = "quickAccess"
	SectionAccount     Section = "account"
	SectionUtility     Section = "utility"
)

// BadgeSource names the cached count an item's badge reads from. Empty
// means the item carries no badge at all (distinct from a zero count).
type BadgeSource string

const (
	BadgeNone          BadgeSource = ""
	BadgeWorkouts      BadgeSource = "workouts"
	BadgeConversations BadgeSource = "conversations"
	BadgeMemories      BadgeSource = "memories"
	BadgeReports       BadgeSource = "reports"
	BadgePrograms      BadgeSource = "programs"
	BadgeCoaches       BadgeSource = "coaches"
)

// Item is one static navigation entry. RouteTemplate uses {userId} and
// {coachId} placeholders; Action items open the command palette with the
// given prefill instead of navigating.
type Item struct {
	ID      string
	Label   string
	Icon    string
	Color   string
	Section Section

	RouteTemplate string
	Action        string

	RequiresAuth         bool
	RequiresCoachContext bool

	BadgeSource BadgeSource
}

// Items is the static navigation configuration shared by the sidebar, the
// bottom bar and the more menu, so item behavior is defined exactly once.
func Items() []Item {
	return []Item{
		// primary
		{
			ID:            "home",
			Label:         "Home",
			Icon:          "home",
			Color:         "cyan",
			Section:       SectionPrimary,
			RouteTemplate: "/",
		},
		{
			ID:            "coaches",
			Label:         "Coaches",
			Icon:          "users",
			Color:         "pink",
			Section:       SectionPrimary,
			RouteTemplate: "/coaches?userId={userId}",
			RequiresAuth:  true,
			BadgeSource:   BadgeCoaches,
		},
		{
			ID:                   "training-grounds",
			Label:                "Training Grounds",
			Icon:                 "dumbbell",
			Color:                "purple",
			Section:              SectionPrimary,
			RouteTemplate:        "/training-grounds?userId={userId}&coachId={coachId}",
			RequiresAuth:         true,
			RequiresCoachContext: true,
		},
		// contextual (coach-scoped)
		{
			ID:                   "manage-workouts",
			Label:                "Manage Workouts",
			Icon:                 "activity",
			Color:                "green",
			Section:              SectionContextual,
			RouteTemplate:        "/training-grounds/manage-workouts?userId={userId}&coachId={coachId}",
			RequiresAuth:         true,
			RequiresCoachContext: true,
			BadgeSource:          BadgeWorkouts,
		},
		{
			ID:                   "coach-conversations",
			Label:                "Coach Conversations",
			Icon:                 "message-circle",
			Color:                "blue",
			Section:              SectionContextual,
			RouteTemplate:        "/training-grounds/coach-conversations?userId={userId}&coachId={coachId}",
			RequiresAuth:         true,
			RequiresCoachContext: true,
			BadgeSource:          BadgeConversations,
		},
		{
			ID:                   "manage-memories",
			Label:                "Manage Memories",
			Icon:                 "brain",
			Color:                "orange",
			Section:              SectionContextual,
			RouteTemplate:        "/training-grounds/manage-memories?userId={userId}&coachId={coachId}",
			RequiresAuth:         true,
			RequiresCoachContext: true,
			BadgeSource:          BadgeMemories,
		},
		{
			ID:                   "reports",
			Label:                "Reports",
			Icon:                 "bar-chart",
			Color:                "yellow",
			Section:              SectionContextual,
			RouteTemplate:        "/training-grounds/reports?userId={userId}&coachId={coachId}",
			RequiresAuth:         true,
			RequiresCoachContext: true,
			BadgeSource:          BadgeReports,
		},
		// quick access (command palette actions)
		{
			ID:                   "log-workout",
			Label:                "Log Workout",
			Icon:                 "plus-circle",
			Color:                "green",
			Section:              SectionQuickAccess,
			Action:               "log workout ",
			RequiresAuth:         true,
			RequiresCoachContext: true,
		},
		{
			ID:                   "new-conversation",
			Label:                "New Conversation",
			Icon:                 "message-square-plus",
			Color:                "blue",
			Section:              SectionQuickAccess,
			Action:               "start conversation ",
			RequiresAuth:         true,
			RequiresCoachContext: true,
		},
		// account
		{
			ID:            "settings",
			Label:         "Settings",
			Icon:          "settings",
			Color:         "gray",
			Section:       SectionAccount,
			RouteTemplate: "/settings",
			RequiresAuth:  true,
		},
		// utility
		{
			ID:            "privacy",
			Label:         "Privacy Policy",
			Icon:          "shield",
			Color:         "gray",
			Section:       SectionUtility,
			RouteTemplate: "/privacy",
		},
		{
			ID:            "terms",
			Label:         "Terms of Service",
			Icon:          "file-text",
			Color:         "gray",
			Section:       SectionUtility,
			RouteTemplate: "/terms",
		},
		{
			ID:            "contact",
			Label:         "Contact",
			Icon:          "mail",
			Color:         "gray",
			Section:       SectionUtility,
			RouteTemplate: "/contact",
		},
	}
}
