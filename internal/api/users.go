// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// USERS ENDPOINTS
// =============================================================================

// UserListParams filters the user list.
type UserListParams struct {
	Page   int
	Limit  int
	Search string
	Status string // "", "verified", "blocked"
}

// UserList is the paged user list payload.
type UserList struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// ListUsers fetches a page of users.
func (c *Client) ListUsers(ctx context.Context, p UserListParams) (*UserList, error) {
	q := pageQuery(p.Page, p.Limit)
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	var list UserList
	if err := c.get(ctx, "/users", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/"+id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserUpdate carries the mutable user fields. Nil fields are left unchanged.
type UserUpdate struct {
	FullName   *string `json:"fullName,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Location   *string `json:"location,omitempty"`
	IsVerified *bool   `json:"isVerified,omitempty"`
	IsBlocked  *bool   `json:"isBlocked,omitempty"`
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id string, upd UserUpdate) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPut, "/users/"+id, nil, upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}

// UserStatsOverview fetches the aggregate user counters.
func (c *Client) UserStatsOverview(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.get(ctx, "/users/stats/overview", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateUserInput is the admin user-creation payload.
type CreateUserInput struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Password         string `json:"password"`
	SubscriptionTier string `json:"subscriptionTier"`
}

// CreateUser creates a user on behalf of an administrator.
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/admin/users", nil, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SubscriptionUpdate carries a user's new subscription assignment.
type SubscriptionUpdate struct {
	Status string `json:"status"`
	Tier   string `json:"tier"`
}

// UpdateUserSubscription changes a user's subscription status and tier.
func (c *Client) UpdateUserSubscription(ctx context.Context, userID string, upd SubscriptionUpdate) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPut, "/admin/users/"+userID+"/subscription", nil, upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
