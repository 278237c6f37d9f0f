package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_profile_store.go -package=mocks talentmatch/internal/storage ProfileStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines the interface for profile storage operations.
type ProfileStore interface {
	// Insert inserts a new profile. A UUID is generated when ID is unset.
	Insert(ctx context.Context, profile *ProfileRecord) error
	// GetByID gets a profile by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ProfileRecord, error)
	// GetByEmail gets a profile by email. Returns ErrNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*ProfileRecord, error)
	// Update updates the mutable profile fields (name, links).
	Update(ctx context.Context, profile *ProfileRecord) error
	// ConfirmRole records an explicit role choice.
	ConfirmRole(ctx context.Context, id string, role Role) error
	// ListCandidatesByIDs fetches candidate profiles for the given IDs in a
	// single query. IDs without a matching candidate profile are simply
	// absent from the result.
	ListCandidatesByIDs(ctx context.Context, ids []string) ([]ProfileRecord, error)
	// UpdateResume sets resume path, extracted text and vector point ID in
	// one statement so the three fields only ever change together.
	UpdateResume(ctx context.Context, id, resumePath, resumeText, pointID string) error
	// ClearResume resets resume path, extracted text and vector point ID.
	ClearResume(ctx context.Context, id string) error
}

// ProfileRepo provides methods for profile operations.
// It implements the ProfileStore interface.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `id, full_name, email, role, role_confirmed, linkedin_url, github_url, website_url, resume_path, resume_text, point_id, created_at, updated_at`

// Insert inserts a new profile. A UUID is generated when ID is unset.
func (r *ProfileRepo) Insert(ctx context.Context, profile *ProfileRecord) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.Role == "" {
		profile.Role = RoleCandidate
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, full_name, email, role, role_confirmed, linkedin_url, github_url, website_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.FullName, profile.Email, string(profile.Role), profile.RoleConfirmed,
		profile.LinkedInURL, profile.GitHubURL, profile.WebsiteURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// GetByID gets a profile by its ID. Returns ErrNotFound if not found.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*ProfileRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id)
	return scanProfileRow(row)
}

// GetByEmail gets a profile by email. Returns ErrNotFound if not found.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*ProfileRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE email = ?", email)
	return scanProfileRow(row)
}

// Update updates the mutable profile fields (name, links).
func (r *ProfileRepo) Update(ctx context.Context, profile *ProfileRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET full_name = ?, linkedin_url = ?, github_url = ?, website_url = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		profile.FullName, profile.LinkedInURL, profile.GitHubURL, profile.WebsiteURL, profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireRowAffected(res)
}

// ConfirmRole records an explicit role choice.
func (r *ProfileRepo) ConfirmRole(ctx context.Context, id string, role Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET role = ?, role_confirmed = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(role), id,
	)
	if err != nil {
		return fmt.Errorf("failed to confirm role: %w", err)
	}
	return requireRowAffected(res)
}

// ListCandidatesByIDs fetches candidate profiles for the given IDs in a
// single query. Returns an empty slice when no IDs resolve (not an error).
func (r *ProfileRepo) ListCandidatesByIDs(ctx context.Context, ids []string) ([]ProfileRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(RoleCandidate))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE role = ? AND id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var profiles []ProfileRecord
	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return profiles, nil
}

// UpdateResume sets resume path, extracted text and vector point ID in one
// statement so the three fields only ever change together.
func (r *ProfileRepo) UpdateResume(ctx context.Context, id, resumePath, resumeText, pointID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET resume_path = ?, resume_text = ?, point_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		resumePath, resumeText, pointID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	return requireRowAffected(res)
}

// ClearResume resets resume path, extracted text and vector point ID.
func (r *ProfileRepo) ClearResume(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET resume_path = NULL, resume_text = NULL, point_id = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to clear resume: %w", err)
	}
	return requireRowAffected(res)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfileRow(row rowScanner) (*ProfileRecord, error) {
	var (
		profile      ProfileRecord
		role         string
		resumePath   sql.NullString
		resumeText   sql.NullString
		pointID      sql.NullString
		createdAtStr string
		updatedAtStr string
	)

	err := row.Scan(
		&profile.ID, &profile.FullName, &profile.Email, &role, &profile.RoleConfirmed,
		&profile.LinkedInURL, &profile.GitHubURL, &profile.WebsiteURL,
		&resumePath, &resumeText, &pointID, &createdAtStr, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	profile.Role, err = ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	profile.ResumePath = resumePath.String
	profile.ResumeText = resumeText.String
	profile.PointID = pointID.String

	if profile.CreatedAt, err = parseDBTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	if profile.UpdatedAt, err = parseDBTime(updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return &profile, nil
}

// parseDBTime parses a SQLite DATETIME string.
func parseDBTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// SQLite might use different format
	return time.Parse(time.RFC3339, s)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
