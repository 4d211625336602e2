// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// ADMIN ENDPOINTS
// =============================================================================

// DashboardStatsOverview fetches the dashboard counters.
func (c *Client) DashboardStatsOverview(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.get(ctx, "/admin/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RegistrationListParams filters the pending-registration list.
type RegistrationListParams struct {
	Page   int
	Limit  int
	Status string // default "payment_submitted"
}

// RegistrationList is the paged pending-registration payload.
type RegistrationList struct {
	Users      []PendingRegistration `json:"users"`
	Pagination Pagination            `json:"pagination"`
}

// ListPendingRegistrations fetches registrations awaiting confirmation.
func (c *Client) ListPendingRegistrations(ctx context.Context, p RegistrationListParams) (*RegistrationList, error) {
	q := pageQuery(p.Page, p.Limit)
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	var list RegistrationList
	if err := c.get(ctx, "/admin/pending-registrations", q, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RegistrationAction is a registration decision.
type RegistrationAction string

const (
	// RegistrationApprove approves the registration.
	RegistrationApprove RegistrationAction = "approve"
	// RegistrationReject rejects the registration.
	RegistrationReject RegistrationAction = "reject"
)

// registrationStatusUpdate is the wire format of a registration decision.
type registrationStatusUpdate struct {
	Action     RegistrationAction `json:"action"`
	AdminNotes string             `json:"adminNotes,omitempty"`
}

// UpdateRegistrationStatus approves or rejects a pending registration.
func (c *Client) UpdateRegistrationStatus(ctx context.Context, userID string, action RegistrationAction, notes string) error {
	return c.do(ctx, http.MethodPut, "/admin/users/"+userID+"/registration-status",
		nil, registrationStatusUpdate{Action: action, AdminNotes: notes}, nil)
}

// AuditLogParams filters the server-side audit log.
type AuditLogParams struct {
	Page  int
	Limit int
}

// AuditLogList is the paged audit log payload.
type AuditLogList struct {
	Logs       []AuditLogEntry `json:"logs"`
	Pagination Pagination      `json:"pagination"`
}

// ListAuditLogs fetches server-side audit records.
func (c *Client) ListAuditLogs(ctx context.Context, p AuditLogParams) (*AuditLogList, error) {
	var list AuditLogList
	if err := c.get(ctx, "/admin/audit-logs", pageQuery(p.Page, p.Limit), &list); err != nil {
		return nil, err
	}
	return &list, nil
}
