package storage

import (
	"fmt"
	"time"
)

// Role distinguishes the two kinds of accounts on the platform.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// ParseRole converts a string into a Role. Unknown values are rejected,
// never defaulted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCandidate:
		return RoleCandidate, nil
	case RoleRecruiter:
		return RoleRecruiter, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// ProfileRecord represents an account profile in the database.
// ID is a UUID and is used verbatim as the vector index point ID once a
// resume is indexed, so the two stores can be joined without a mapping
// table.
type ProfileRecord struct {
	ID            string
	FullName      string
	Email         string
	Role          Role
	RoleConfirmed bool // set once the user explicitly picked a role
	LinkedInURL   string
	GitHubURL     string
	WebsiteURL    string
	ResumePath    string // object storage path, empty when no resume
	ResumeText    string // extracted resume text, empty when no resume
	PointID       string // vector point ID; non-empty iff a vector exists
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Message author roles.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// ChatRecord represents a recruiter's chat thread.
type ChatRecord struct {
	ID          string
	RecruiterID string
	Title       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MessageRecord represents a single message in a chat.
// Messages are append-only and ordered by CreatedAt within a chat.
type MessageRecord struct {
	ID        string
	ChatID    string
	Role      string // MessageRoleUser or MessageRoleAssistant
	Body      string
	CreatedAt time.Time
}
