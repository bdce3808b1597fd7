package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/daedaly/internal/model"
)

// CreateTag inserts a new tag. Names are unique.
func (s *SQLiteStore) CreateTag(ctx context.Context, tag model.Tag) error {
	if strings.TrimSpace(tag.Name) == "" {
		return fmt.Errorf("tag name must not be empty")
	}
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	tag.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, color, created_at) VALUES (?, ?, ?, ?)",
		tag.ID, tag.Name, tag.Color, tag.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating tag: %w", err)
	}
	return nil
}

// FindTagByName looks a tag up by its exact name. It returns nil, nil
// when no tag matches.
func (s *SQLiteStore) FindTagByName(
	ctx context.Context,
	name string,
) (*model.Tag, error) {
	var tags []model.Tag
	err := s.db.SelectContext(ctx, &tags,
		"SELECT id, name, color, created_at FROM tags WHERE name = ? LIMIT 1", name)
	if err != nil {
		return nil, fmt.Errorf("finding tag %q: %w", name, err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return &tags[0], nil
}

// GetTags retrieves all tags ordered by name.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := s.db.SelectContext(ctx, &tags,
		"SELECT id, name, color, created_at FROM tags ORDER BY name"); err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	return tags, nil
}

// GetTagsForTodo retrieves all tags associated with a todo.
func (s *SQLiteStore) GetTagsForTodo(
	ctx context.Context,
	todoID string,
) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.SelectContext(ctx, &tags, `
		SELECT t.id, t.name, t.color, t.created_at FROM tags t
		INNER JOIN todo_tags tt ON t.id = tt.tag_id
		WHERE tt.todo_id = ?
		ORDER BY t.name`, todoID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for todo %s: %w", todoID, err)
	}
	return tags, nil
}

// GetTagsForProject retrieves all tags associated with a project.
func (s *SQLiteStore) GetTagsForProject(
	ctx context.Context,
	projectID string,
) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.SelectContext(ctx, &tags, `
		SELECT t.id, t.name, t.color, t.created_at FROM tags t
		INNER JOIN project_tags pt ON t.id = pt.tag_id
		WHERE pt.project_id = ?
		ORDER BY t.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for project %s: %w", projectID, err)
	}
	return tags, nil
}

// SetTodoTags replaces all tag associations for a todo.
func (s *SQLiteStore) SetTodoTags(
	ctx context.Context,
	todoID string,
	tagIDs []string,
) error {
	return s.replaceTags(ctx, "todo_tags", "todo_id", todoID, tagIDs)
}

// SetProjectTags replaces all tag associations for a project.
func (s *SQLiteStore) SetProjectTags(
	ctx context.Context,
	projectID string,
	tagIDs []string,
) error {
	return s.replaceTags(ctx, "project_tags", "project_id", projectID, tagIDs)
}

// replaceTags swaps the whole tag set of an owner in one transaction.
// table and ownerColumn are package constants, never user input.
func (s *SQLiteStore) replaceTags(
	ctx context.Context,
	table, ownerColumn, ownerID string,
	tagIDs []string,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove existing associations.
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, ownerColumn), ownerID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	// Insert new associations; duplicates in tagIDs collapse.
	insert := fmt.Sprintf("INSERT OR IGNORE INTO %s (%s, tag_id) VALUES (?, ?)", table, ownerColumn)
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, insert, ownerID, tagID); err != nil {
			return fmt.Errorf("setting tag %s on %s: %w", tagID, ownerID, err)
		}
	}

	return tx.Commit()
}
