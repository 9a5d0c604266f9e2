package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) ListWorkouts(ctx context.Context, userID string, query WorkoutListQuery) ([]Workout, error) {
	if userID == "" {
		return nil, newValidationError("userId is required")
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var resp workoutsResponse
	path := fmt.Sprintf("/users/%s/workouts", userID)
	if err := c.getJSON(ctx, "workouts", "list", path, query.values(), &resp); err != nil {
		return nil, err
	}
	return resp.Workouts, nil
}

func (c *Client) GetWorkout(ctx context.Context, userID, workoutID string) (*Workout, error) {
	if userID == "" || workoutID == "" {
		return nil, newValidationError("userId and workoutId are required")
	}

	var resp workoutResponse
	path := fmt.Sprintf("/users/%s/workouts/%s", userID, workoutID)
	if err := c.getJSON(ctx, "workouts", "get", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Workout, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, userID, workoutID string, update WorkoutUpdate) (*Workout, error) {
	if userID == "" || workoutID == "" {
		return nil, newValidationError("userId and workoutId are required")
	}
	if update.WorkoutData == nil && update.ExtractionMetadata == nil {
		return nil, newValidationError("workout update is empty")
	}

	var resp workoutResponse
	path := fmt.Sprintf("/users/%s/workouts/%s", userID, workoutID)
	if err := c.sendJSON(ctx, "workouts", "update", http.MethodPut, path, update, &resp); err != nil {
		return nil, err
	}
	c.InvalidateCache()
	return &resp.Workout, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, userID, workoutID string) error {
	if userID == "" || workoutID == "" {
		return newValidationError("userId and workoutId are required")
	}

	var resp deleteResponse
	path := fmt.Sprintf("/users/%s/workouts/%s", userID, workoutID)
	if err := c.sendJSON(ctx, "workouts", "delete", http.MethodDelete, path, nil, &resp); err != nil {
		return err
	}
	c.InvalidateCache()
	return nil
}

func (c *Client) WorkoutsCount(ctx context.Context, userID string, query WorkoutListQuery) (int, error) {
	if userID == "" {
		return 0, newValidationError("userId is required")
	}
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var resp countResponse
	path := fmt.Sprintf("/users/%s/workouts/count", userID)
	err := c.getJSONCached(ctx, "workouts", "count", path, query.values(), countCacheExpireSeconds, &resp)
	if err != nil {
		return 0, err
	}
	return resp.TotalCount, nil
}
