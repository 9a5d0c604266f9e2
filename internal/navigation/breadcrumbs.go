package navigation

import "strings"

// Crumb is one node of the breadcrumb trail. The current (last) node
// carries no route.
type Crumb struct {
	Label     string
	Route     string
	IsCurrent bool
}

// slug -> display name; segments not listed fall back to title-casing.
var crumbLabels = map[string]string{
	"coaches":              "Coaches",
	"training-grounds":     "Training Grounds",
	"manage-workouts":      "Manage Workouts",
	"manage-conversations": "Manage Conversations",
	"manage-memories":      "Manage Memories",
	"coach-conversations":  "Coach Conversations",
	"workouts":             "Workouts",
	"reports":              "Reports",
	"weekly":               "Weekly Report",
	"settings":             "Settings",
	"privacy":              "Privacy Policy",
	"terms":                "Terms of Service",
	"contact":              "Contact",
}

// BuildBreadcrumbs maps the current path to an ordered trail, one node per
// segment, with a handful of pages re-parented for display: a workout
// detail page shows under Manage Workouts even though its path is not
// nested there.
func BuildBreadcrumbs(path string) []Crumb {
	segments := splitPath(path)

	crumbs := []Crumb{{Label: "Home", Route: "/"}}
	if len(segments) == 0 {
		crumbs[0].IsCurrent = true
		crumbs[0].Route = ""
		return crumbs
	}

	// workout detail: /training-grounds/workouts/{workoutId}
	if len(segments) == 3 && segments[0] == "training-grounds" && segments[1] == "workouts" {
		return append(crumbs,
			Crumb{Label: "Training Grounds", Route: "/training-grounds"},
			Crumb{Label: "Manage Workouts", Route: "/training-grounds/manage-workouts"},
			Crumb{Label: "Workout Details", IsCurrent: true},
		)
	}

	// conversation detail: /training-grounds/coach-conversations/{conversationId}
	if len(segments) == 3 && segments[0] == "training-grounds" && segments[1] == "coach-conversations" {
		return append(crumbs,
			Crumb{Label: "Training Grounds", Route: "/training-grounds"},
			Crumb{Label: "Coach Conversations", Route: "/training-grounds/coach-conversations"},
			Crumb{Label: "Conversation", IsCurrent: true},
		)
	}

	route := ""
	for i, segment := range segments {
		route += "/" + segment
		crumb := Crumb{Label: crumbLabel(segment)}
		if i == len(segments)-1 {
			crumb.IsCurrent = true
		} else {
			crumb.Route = route
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func crumbLabel(segment string) string {
	if label, ok := crumbLabels[segment]; ok {
		return label
	}

	words := strings.Split(segment, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
