package store

import (
	"database/sql"
	"time"
)

// Event statuses.
const (
	EventStatusPending  = "pending"
	EventStatusApproved = "approved"
	EventStatusRejected = "rejected"
)

// Contact submission statuses.
const (
	SubmissionStatusNew       = "new"
	SubmissionStatusContacted = "contacted"
	SubmissionStatusClosed    = "closed"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Analytics event names.
const (
	AnalyticsPageView      = "page_view"
	AnalyticsContactSubmit = "contact_form_submit"
	AnalyticsEventSubmit   = "event_submit"
	AnalyticsChatMessage   = "chat_message"
)

type Event struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Date        string         `json:"date"`
	Location    string         `json:"location"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Organizer   string         `json:"organizer"`
	Email       string         `json:"email"`
	Image       sql.NullString `json:"image"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	EventType string    `json:"event_type"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PortfolioItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Guests      string    `json:"guests"`
	Date        string    `json:"date"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SiteContent struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminUser is a back-office account. PasswordHash never leaves the server.
type AdminUser struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
}

// IsSuperadmin returns true if the user may manage other admins.
func (u AdminUser) IsSuperadmin() bool {
	return u.Role == RoleSuperadmin
}

type AnalyticsEvent struct {
	ID        int64     `json:"id"`
	Page      string    `json:"page"`
	Event     string    `json:"event"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
