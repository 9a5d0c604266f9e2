package api

import (
	"context"
	"fmt"
)

func (c *Client) ListCoaches(ctx context.Context, userID string) ([]Coach, error) {
	if userID == "" {
		return nil, newValidationError("userId is required")
	}

	var resp coachesResponse
	path := fmt.Sprintf("/users/%s/coaches", userID)
	if err := c.getJSON(ctx, "coaches", "list", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Coaches, nil
}

func (c *Client) GetCoach(ctx context.Context, userID, coachID string) (*Coach, error) {
	if userID == "" || coachID == "" {
		return nil, newValidationError("userId and coachId are required")
	}

	var resp coachResponse
	path := fmt.Sprintf("/users/%s/coaches/%s", userID, coachID)
	err := c.getJSONCached(ctx, "coaches", "get", path, nil, coachCacheExpireSeconds, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Coach, nil
}

func (c *Client) CoachesCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, newValidationError("userId is required")
	}

	var resp countResponse
	path := fmt.Sprintf("/users/%s/coaches/count", userID)
	err := c.getJSONCached(ctx, "coaches", "count", path, nil, countCacheExpireSeconds, &resp)
	if err != nil {
		return 0, err
	}
	return resp.TotalCount, nil
}
