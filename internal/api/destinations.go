// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// DESTINATIONS ENDPOINTS
// =============================================================================

// DestinationListParams filters the destination list.
type DestinationListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

// DestinationList is the paged destination list payload.
type DestinationList struct {
	Destinations []Destination `json:"destinations"`
	Pagination   Pagination    `json:"pagination"`
}

// ListDestinations fetches a page of destinations.
func (c *Client) ListDestinations(ctx context.Context, p DestinationListParams) (*DestinationList, error) {
	q := pageQuery(p.Page, p.Limit)
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	var list DestinationList
	if err := c.get(ctx, "/admin/destinations", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DestinationInput is the create/update payload for a destination.
type DestinationInput struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Tags        []string `json:"tags"`
	Photos      []string `json:"photos"`
}

// CreateDestination creates a destination.
func (c *Client) CreateDestination(ctx context.Context, in DestinationInput) (*Destination, error) {
	var d Destination
	if err := c.do(ctx, http.MethodPost, "/admin/destinations", nil, in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDestination replaces a destination's editable fields.
func (c *Client) UpdateDestination(ctx context.Context, id string, in DestinationInput) (*Destination, error) {
	var d Destination
	if err := c.do(ctx, http.MethodPut, "/admin/destinations/"+id, nil, in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDestination removes a destination.
func (c *Client) DeleteDestination(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/destinations/"+id, nil, nil, nil)
}
