package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) ListConversations(ctx context.Context, userID string, query ListQuery) ([]Conversation, error) {
	if userID == "" {
		return nil, newValidationError("userId is required")
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var resp conversationsResponse
	path := fmt.Sprintf("/users/%s/conversations", userID)
	if err := c.getJSON(ctx, "conversations", "list", path, query.values(), &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

type createConversationRequest struct {
	CoachID string `json:"coachId"`
	Title   string `json:"title"`
}

func (c *Client) CreateConversation(ctx context.Context, userID, coachID, title string) (*Conversation, error) {
	if userID == "" || coachID == "" {
		return nil, newValidationError("userId and coachId are required")
	}

	var resp conversationResponse
	path := fmt.Sprintf("/users/%s/conversations", userID)
	body := createConversationRequest{CoachID: coachID, Title: title}
	if err := c.sendJSON(ctx, "conversations", "create", http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	c.InvalidateCache()
	return &resp.Conversation, nil
}

func (c *Client) ConversationsCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, newValidationError("userId is required")
	}

	var resp countResponse
	path := fmt.Sprintf("/users/%s/conversations/count", userID)
	err := c.getJSONCached(ctx, "conversations", "count", path, nil, countCacheExpireSeconds, &resp)
	if err != nil {
		return 0, err
	}
	return resp.TotalCount, nil
}
