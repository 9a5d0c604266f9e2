package navigation

import "net/url"

// View-model builders shared by the navigation surfaces. All are pure
// functions of a snapshot and the current location.

// Entry is one renderable navigation element. Badge nil means "render no
// badge"; a pointer to zero renders "0".
type Entry struct {
	ID    string
	Label string
	Icon  string
	Color string

	Route  string
	Action string

	Badge    *int
	Active   bool
	Disabled bool
}

type SectionView struct {
	Section Section
	Entries []Entry
}

const bottomNavMaxItems = 4

func buildEntry(item Item, snap Snapshot, currentPath string, currentQuery url.Values) Entry {
	route := ItemRoute(item, snap)
	return Entry{
		ID:       item.ID,
		Label:    item.Label,
		Icon:     item.Icon,
		Color:    item.Color,
		Route:    route,
		Action:   item.Action,
		Badge:    ItemBadge(item, snap),
		Active:   IsRouteActive(route, currentPath, currentQuery),
		Disabled: item.Action == "" && route == DisabledRoute,
	}
}

// BuildSidebar renders every visible item grouped by section, for the
// desktop sidebar.
func BuildSidebar(snap Snapshot, currentPath string, currentQuery url.Values) []SectionView {
	order := []Section{
		SectionPrimary,
		SectionContextual,
		SectionQuickAccess,
		SectionAccount,
		SectionUtility,
	}

	bySection := make(map[Section][]Entry)
	for _, item := range Items() {
		if !IsItemVisible(item, snap) {
			continue
		}
		bySection[item.Section] = append(bySection[item.Section], buildEntry(item, snap, currentPath, currentQuery))
	}

	var views []SectionView
	for _, section := range order {
		if entries := bySection[section]; len(entries) > 0 {
			views = append(views, SectionView{Section: section, Entries: entries})
		}
	}
	return views
}

// BuildBottomNav renders the first visible primary/contextual items for the
// mobile bottom bar; everything beyond the cap moves to the more menu.
func BuildBottomNav(snap Snapshot, currentPath string, currentQuery url.Values) []Entry {
	var entries []Entry
	for _, item := range Items() {
		if item.Section != SectionPrimary && item.Section != SectionContextual {
			continue
		}
		if !IsItemVisible(item, snap) {
			continue
		}
		if len(entries) == bottomNavMaxItems {
			break
		}
		entries = append(entries, buildEntry(item, snap, currentPath, currentQuery))
	}
	return entries
}

// BuildMoreMenu renders whatever the bottom bar had no room for, plus the
// account and utility sections, for the mobile slide-up menu.
func BuildMoreMenu(snap Snapshot, currentPath string, currentQuery url.Values) []Entry {
	var entries []Entry
	mainSeen := 0
	for _, item := range Items() {
		if !IsItemVisible(item, snap) {
			continue
		}
		switch item.Section {
		case SectionPrimary, SectionContextual:
			mainSeen++
			if mainSeen <= bottomNavMaxItems {
				continue
			}
		case SectionQuickAccess:
			continue // quick actions have their own surface
		}
		entries = append(entries, buildEntry(item, snap, currentPath, currentQuery))
	}
	return entries
}

// BuildQuickActions renders the floating quick-action entries; they open
// the command palette with a prefilled command rather than navigating.
func BuildQuickActions(snap Snapshot) []Entry {
	var entries []Entry
	for _, item := range Items() {
		if item.Section != SectionQuickAccess {
			continue
		}
		if !IsItemVisible(item, snap) {
			continue
		}
		entries = append(entries, Entry{
			ID:     item.ID,
			Label:  item.Label,
			Icon:   item.Icon,
			Color:  item.Color,
			Action: item.Action,
		})
	}
	return entries
}
