// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "context"

// =============================================================================
// ARCHIVE ENDPOINTS
// =============================================================================

// ArchiveListParams filters the archived document list.
type ArchiveListParams struct {
	Search string
	Type   string // "", "magazine", "document", "catalog", "training"
}

// ArchiveList is the archived document list payload.
type ArchiveList struct {
	Documents []ArchiveDocument `json:"documents"`
}

// ListArchive fetches archived documents.
func (c *Client) ListArchive(ctx context.Context, p ArchiveListParams) (*ArchiveList, error) {
	q := pageQuery(0, 0)
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	var list ArchiveList
	if err := c.get(ctx, "/admin/archive", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetArchiveDocument fetches one archived document including its content,
// used by the detail preview.
func (c *Client) GetArchiveDocument(ctx context.Context, id string) (*ArchiveDocument, error) {
	var doc ArchiveDocument
	if err := c.get(ctx, "/admin/archive/"+id, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
