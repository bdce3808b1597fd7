package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/daedaly/internal/model"
)

// CreateMilestone inserts a new milestone. Names are unique per project.
func (s *SQLiteStore) CreateMilestone(
	ctx context.Context,
	milestone model.Milestone,
) error {
	if strings.TrimSpace(milestone.Name) == "" {
		return fmt.Errorf("milestone name must not be empty")
	}
	if milestone.ID == "" {
		milestone.ID = uuid.New().String()
	}
	milestone.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO milestones (id, project_id, name, created_at)
		VALUES (?, ?, ?, ?)`,
		milestone.ID, milestone.ProjectID, milestone.Name, milestone.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating milestone %q: %w", milestone.Name, err)
	}
	return nil
}

// FindMilestone looks a milestone up by exact name within a project.
// It returns nil, nil when none matches.
func (s *SQLiteStore) FindMilestone(
	ctx context.Context,
	projectID, name string,
) (*model.Milestone, error) {
	var milestones []model.Milestone
	err := s.db.SelectContext(ctx, &milestones, `
		SELECT id, project_id, name, created_at FROM milestones
		WHERE project_id = ? AND name = ? LIMIT 1`, projectID, name)
	if err != nil {
		return nil, fmt.Errorf("finding milestone %q: %w", name, err)
	}
	if len(milestones) == 0 {
		return nil, nil
	}
	return &milestones[0], nil
}

// GetMilestones lists the milestones of a project in creation order.
func (s *SQLiteStore) GetMilestones(
	ctx context.Context,
	projectID string,
) ([]model.Milestone, error) {
	var milestones []model.Milestone
	err := s.db.SelectContext(ctx, &milestones, `
		SELECT id, project_id, name, created_at FROM milestones
		WHERE project_id = ? ORDER BY created_at, name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying milestones for project %s: %w", projectID, err)
	}
	return milestones, nil
}
