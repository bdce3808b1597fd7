package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/daedaly/internal/model"
)

const projectColumns = `id, name, description, economic_notes, criticality, methodology,
	company_id, manager_user_id, archived, sort_order, created_at, updated_at`

// CreateProject inserts a new project.
func (s *SQLiteStore) CreateProject(ctx context.Context, project model.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	if project.SortOrder == 0 {
		var maxOrder int
		_ = s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM projects")
		project.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.Description,
		project.EconomicNotes, project.Criticality, project.Methodology,
		project.CompanyID, project.ManagerUserID,
		boolToInt(project.Archived), project.SortOrder,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// UpdateProject updates an existing project.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project model.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return fmt.Errorf("project name must not be empty")
	}
	project.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, description = ?, economic_notes = ?, criticality = ?,
			methodology = ?, company_id = ?, manager_user_id = ?,
			archived = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		project.Name, project.Description, project.EconomicNotes, project.Criticality,
		project.Methodology, project.CompanyID, project.ManagerUserID,
		boolToInt(project.Archived), project.SortOrder, project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", project.ID, ErrNotFound)
	}
	return nil
}

// DeleteProject removes a project together with its milestones, documents
// and tasks.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetProjectByID retrieves a single project by ID, including its tags.
func (s *SQLiteStore) GetProjectByID(
	ctx context.Context,
	id string,
) (*model.Project, error) {
	var project model.Project
	err := s.db.GetContext(ctx, &project,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	if err != nil {
		return nil, notFound(err, "getting project %s", id)
	}

	tags, err := s.GetTagsForProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Tags = tags
	return &project, nil
}

// GetProjects retrieves all projects, optionally including archived ones.
func (s *SQLiteStore) GetProjects(
	ctx context.Context,
	includeArchived bool,
) ([]model.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects"
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	query += " ORDER BY sort_order"

	var projects []model.Project
	if err := s.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return projects, nil
}

// ArchiveProject sets the archived flag to true.
func (s *SQLiteStore) ArchiveProject(ctx context.Context, id string) error {
	return s.setArchived(ctx, id, true)
}

// RestoreProject sets the archived flag to false.
func (s *SQLiteStore) RestoreProject(ctx context.Context, id string) error {
	return s.setArchived(ctx, id, false)
}

func (s *SQLiteStore) setArchived(ctx context.Context, id string, archived bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE projects SET archived = ?, updated_at = ? WHERE id = ?",
		boolToInt(archived), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("archiving project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}
