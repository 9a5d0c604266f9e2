package api

import (
	"context"
	"fmt"
	"regexp"
)

var weekIDRe = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// ValidWeekID reports whether the given string has the backend's report key
// shape, e.g. "2026-W35".
func ValidWeekID(weekID string) bool {
	return weekIDRe.MatchString(weekID)
}

func (c *Client) ListReports(ctx context.Context, userID string, query ListQuery) ([]Report, error) {
	if userID == "" {
		return nil, newValidationError("userId is required")
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var resp reportsResponse
	path := fmt.Sprintf("/users/%s/reports", userID)
	if err := c.getJSON(ctx, "reports", "list", path, query.values(), &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

func (c *Client) GetWeeklyReport(ctx context.Context, userID, weekID string) (*Report, error) {
	if userID == "" {
		return nil, newValidationError("userId is required")
	}
	if !ValidWeekID(weekID) {
		return nil, newValidationError("weekId must look like 2026-W35, got %q", weekID)
	}

	var resp reportResponse
	path := fmt.Sprintf("/users/%s/reports/%s", userID, weekID)
	if err := c.getJSON(ctx, "reports", "get", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Report, nil
}

func (c *Client) ReportsCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, newValidationError("userId is required")
	}

	var resp countResponse
	path := fmt.Sprintf("/users/%s/reports/count", userID)
	err := c.getJSONCached(ctx, "reports", "count", path, nil, countCacheExpireSeconds, &resp)
	if err != nil {
		return 0, err
	}
	return resp.TotalCount, nil
}
