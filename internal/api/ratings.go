// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strconv"
)

// =============================================================================
// RATINGS ENDPOINTS
// =============================================================================

// RatingListParams filters the rating list.
type RatingListParams struct {
	Page          int
	Limit         int
	DestinationID string
	MinStars      int
}

// RatingList is the paged rating list payload.
type RatingList struct {
	Ratings    []Rating   `json:"ratings"`
	Pagination Pagination `json:"pagination"`
}

// ListRatings fetches a page of ratings.
func (c *Client) ListRatings(ctx context.Context, p RatingListParams) (*RatingList, error) {
	q := pageQuery(p.Page, p.Limit)
	if p.DestinationID != "" {
		q.Set("destinationId", p.DestinationID)
	}
	if p.MinStars > 0 {
		q.Set("minStars", strconv.Itoa(p.MinStars))
	}
	var list RatingList
	if err := c.get(ctx, "/admin/ratings", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteRating removes a rating (moderation).
func (c *Client) DeleteRating(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/ratings/"+id, nil, nil, nil)
}
