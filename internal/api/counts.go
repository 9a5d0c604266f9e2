package api

import (
	"context"
	"fmt"
)

// The memories, programs and exercises resources are only surfaced as
// navigation badges, so the client exposes just their /count siblings.

func (c *Client) MemoriesCount(ctx context.Context, userID string) (int, error) {
	return c.resourceCount(ctx, userID, "memories")
}

func (c *Client) ProgramsCount(ctx context.Context, userID string) (int, error) {
	return c.resourceCount(ctx, userID, "programs")
}

func (c *Client) ExercisesCount(ctx context.Context, userID string) (int, error) {
	return c.resourceCount(ctx, userID, "exercises")
}

func (c *Client) resourceCount(ctx context.Context, userID, resource string) (int, error) {
	if userID == "" {
		return 0, newValidationError("userId is required")
	}

	var resp countResponse
	path := fmt.Sprintf("/users/%s/%s/count", userID, resource)
	err := c.getJSONCached(ctx, resource, "count", path, nil, countCacheExpireSeconds, &resp)
	if err != nil {
		return 0, err
	}
	return resp.TotalCount, nil
}
