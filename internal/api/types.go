// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "time"

// =============================================================================
// IDENTITY
// =============================================================================

// AdminUser is the authenticated administrator's profile as returned by the
// auth endpoints and cached client-side for the session's lifetime.
type AdminUser struct {
	ID          string   `json:"_id"`
	Email       string   `json:"email"`
	FullName    string   `json:"fullName"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the admin holds the named permission. The
// "superadmin" role implies all permissions.
func (u *AdminUser) HasPermission(perm string) bool {
	if u == nil {
		return false
	}
	if u.Role == "superadmin" {
		return true
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// =============================================================================
// DOMAIN TYPES
// =============================================================================

// User is an end user of the Motour app.
type User struct {
	ID                   string    `json:"_id"`
	FullName             string    `json:"fullName"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Location             string    `json:"location"`
	ProfileImage         string    `json:"profileImage"`
	IsVerified           bool      `json:"isVerified"`
	IsBlocked            bool      `json:"isBlocked"`
	SubscriptionStatus   string    `json:"subscriptionStatus"`
	SubscriptionTier     string    `json:"subscriptionTier"`
	FavoriteDestinations []string  `json:"favoriteDestinations"`
	TripsCompleted       int       `json:"tripsCompleted"`
	TotalDistance        float64   `json:"totalDistance"`
	CreatedAt            time.Time `json:"createdAt"`
}

// UserStats summarizes the user base for the users page header.
type UserStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Blocked  int `json:"blocked"`
}

// Destination is a travel destination managed through the admin console.
type Destination struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Tags          []string `json:"tags"`
	Photos        []string `json:"photos"`
	AverageRating float64  `json:"averageRating"`
}

// Categories lists the destination categories accepted by the backend.
var Categories = []string{
	"Nature", "Historical", "Cultural", "Adventure",
	"Beach", "Urban", "Religious", "Entertainment",
}

// Rating is a user's review of a destination.
type Rating struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName"`
	DestinationID string    `json:"destinationId"`
	Destination   string    `json:"destinationName"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PendingRegistration is a user registration awaiting subscription
// confirmation by an administrator.
type PendingRegistration struct {
	ID                 string    `json:"_id"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	RegistrationStatus string    `json:"registrationStatus"`
	PaymentReference   string    `json:"paymentReference"`
	AdminNotes         string    `json:"adminNotes"`
	SubmittedAt        time.Time `json:"submittedAt"`
}

// ArchiveDocument is an archived document (magazine, catalog, training
// material) stored by the platform.
type ArchiveDocument struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"` // magazine, document, catalog, training
	SizeBytes  int64     `json:"sizeBytes"`
	UploadDate time.Time `json:"uploadDate"`
	Downloads  int       `json:"downloads"`
	Status     string    `json:"status"` // active, archived
	Content    string    `json:"content,omitempty"`
}

// DashboardStats feeds the dashboard stat cards.
type DashboardStats struct {
	TotalUsers           int     `json:"totalUsers"`
	VerifiedUsers        int     `json:"verifiedUsers"`
	BlockedUsers         int     `json:"blockedUsers"`
	ActiveSubscriptions  int     `json:"activeSubscriptions"`
	PendingRegistrations int     `json:"pendingRegistrations"`
	TotalDestinations    int     `json:"totalDestinations"`
	TotalRatings         int     `json:"totalRatings"`
	AverageRating        float64 `json:"averageRating"`
}

// AuditLogEntry is a server-side audit record.
type AuditLogEntry struct {
	ID        string    `json:"_id"`
	AdminID   string    `json:"adminId"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
}

// Pagination reports list paging state.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}
