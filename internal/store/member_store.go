package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/daedaly/internal/model"
)

const memberColumns = `members.id, members.name, members.display_name, members.work_email,
	members.work_phone, members.mobile_phone, members.ai_profile, members.user_id,
	members.created_at`

// CreateCompany inserts a new company.
func (s *SQLiteStore) CreateCompany(ctx context.Context, company model.Company) error {
	if strings.TrimSpace(company.Name) == "" {
		return fmt.Errorf("company name must not be empty")
	}
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	company.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, profile_filename, profile, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		company.ID, company.Name, company.ProfileFilename, company.Profile, company.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating company: %w", err)
	}
	return nil
}

// GetCompanyByID retrieves a company, profile included.
func (s *SQLiteStore) GetCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	err := s.db.GetContext(ctx, &company, `
		SELECT id, name, profile_filename, profile, created_at
		FROM companies WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "getting company %s", id)
	}
	return &company, nil
}

// CreateUser inserts a new login account. Logins are unique.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) error {
	if strings.TrimSpace(user.Login) == "" {
		return fmt.Errorf("user login must not be empty")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, display_name, login, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.DisplayName, user.Login, user.Email, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating user %s: %w", user.Login, err)
	}
	return nil
}

// GetUserByID retrieves a single user.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, name, display_name, login, email, created_at
		FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "getting user %s", id)
	}
	return &user, nil
}

// CreateMember inserts a new team member.
func (s *SQLiteStore) CreateMember(ctx context.Context, member model.Member) error {
	if strings.TrimSpace(member.Name) == "" {
		return fmt.Errorf("member name must not be empty")
	}
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	member.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (
			id, name, display_name, work_email, work_phone, mobile_phone,
			ai_profile, user_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.Name, member.DisplayName, member.WorkEmail,
		member.WorkPhone, member.MobilePhone, member.AIProfile, member.UserID,
		member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating member: %w", err)
	}
	return nil
}

// AddProjectMember staffs a member on a project. Adding twice is a no-op.
func (s *SQLiteStore) AddProjectMember(ctx context.Context, projectID, memberID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO project_members (project_id, member_id) VALUES (?, ?)",
		projectID, memberID)
	if err != nil {
		return fmt.Errorf("adding member %s to project %s: %w", memberID, projectID, err)
	}
	return nil
}

// GetProjectTeam lists the members staffed on a project, users attached.
func (s *SQLiteStore) GetProjectTeam(
	ctx context.Context,
	projectID string,
) ([]model.Member, error) {
	var members []model.Member
	err := s.db.SelectContext(ctx, &members, `
		SELECT `+memberColumns+` FROM members
		INNER JOIN project_members pm ON members.id = pm.member_id
		WHERE pm.project_id = ?
		ORDER BY members.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying team of project %s: %w", projectID, err)
	}
	if err := s.attachUsers(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetMembersForUsers lists the members linked to any of the given users.
func (s *SQLiteStore) GetMembersForUsers(
	ctx context.Context,
	userIDs []string,
) ([]model.Member, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT "+memberColumns+" FROM members WHERE members.user_id IN (?) ORDER BY members.name",
		userIDs)
	if err != nil {
		return nil, fmt.Errorf("building member query: %w", err)
	}

	var members []model.Member
	if err := s.db.SelectContext(ctx, &members, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying members for users: %w", err)
	}
	if err := s.attachUsers(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

// attachUsers loads the linked user of every member that has one.
func (s *SQLiteStore) attachUsers(ctx context.Context, members []model.Member) error {
	for i := range members {
		if members[i].UserID == nil {
			continue
		}
		user, err := s.GetUserByID(ctx, *members[i].UserID)
		if err != nil {
			return fmt.Errorf("loading user of member %s: %w", members[i].ID, err)
		}
		members[i].User = user
	}
	return nil
}
