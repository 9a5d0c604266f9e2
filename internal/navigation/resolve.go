package navigation

import (
	"net/url"
	"strings"
)

// Pure item-resolution helpers consumed by every navigation surface.

func IsItemVisible(item Item, snap Snapshot) bool {
	if item.RequiresAuth && !snap.IsAuthenticated {
		return false
	}
	if item.RequiresCoachContext && !snap.HasCoachContext() {
		return false
	}
	return true
}

// ItemRoute substitutes the identity into the item's route template, or
// returns DisabledRoute when required context is missing. Action items have
// no route.
func ItemRoute(item Item, snap Snapshot) string {
	if item.RouteTemplate == "" {
		return DisabledRoute
	}
	if item.RequiresCoachContext && !snap.HasCoachContext() {
		return DisabledRoute
	}
	if strings.Contains(item.RouteTemplate, "{userId}") && snap.UserID == "" {
		return DisabledRoute
	}
	if strings.Contains(item.RouteTemplate, "{coachId}") && snap.CoachID == "" {
		return DisabledRoute
	}

	route := strings.ReplaceAll(item.RouteTemplate, "{userId}", url.QueryEscape(snap.UserID))
	route = strings.ReplaceAll(route, "{coachId}", url.QueryEscape(snap.CoachID))
	return route
}

// ItemBadge returns the item's badge count, or nil when the item carries no
// badge. A zero count is a real badge (rendered as "0"), distinct from nil
// (rendered as nothing).
func ItemBadge(item Item, snap Snapshot) *int {
	var count int
	switch item.BadgeSource {
	case BadgeNone:
		return nil
	case BadgeWorkouts:
		count = snap.Counts.Workouts
	case BadgeConversations:
		count = snap.Counts.Conversations
	case BadgeMemories:
		count = snap.Counts.Memories
	case BadgeReports:
		count = snap.Counts.Reports
	case BadgePrograms:
		count = snap.Counts.Programs
	case BadgeCoaches:
		count = snap.Counts.Coaches
	default:
		return nil
	}
	return &count
}

// identityParams is the query subset that participates in active-route
// matching; unrelated parameters must not break highlighting.
var identityParams = []string{"userId", "coachId"}

// IsRouteActive reports whether the resolved route matches the current
// location. The path must match exactly; of the query, only the identity
// parameters present in the route are compared, so extra parameters in the
// current location are ignored.
func IsRouteActive(route, currentPath string, currentQuery url.Values) bool {
	if route == "" || route == DisabledRoute {
		return false
	}

	parsed, err := url.Parse(route)
	if err != nil {
		return false
	}
	if parsed.Path != currentPath {
		return false
	}

	routeQuery := parsed.Query()
	for _, param := range identityParams {
		if want := routeQuery.Get(param); want != "" && currentQuery.Get(param) != want {
			return false
		}
	}
	return true
}
