package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/daedaly/internal/model"
)

const todoColumns = `todos.id, todos.title, todos.description, todos.status, todos.priority,
	todos.due_date, todos.sort_order, todos.project_id, todos.milestone_id,
	todos.assignee_user_id, todos.created_at, todos.completed_at, todos.updated_at`

// CreateTodo inserts a new todo. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) error {
	if strings.TrimSpace(todo.Title) == "" {
		return fmt.Errorf("todo title must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	if todo.Status == "" {
		todo.Status = model.TodoStatusOpen
	}
	if todo.Priority < model.PriorityCritical || todo.Priority > model.PriorityLowest {
		todo.Priority = model.PriorityMedium
	}

	// Default sort_order to max+1.
	if todo.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM todos")
		if err != nil {
			return fmt.Errorf("getting max sort_order: %w", err)
		}
		todo.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, title, description, status, priority,
			due_date, sort_order, project_id, milestone_id, assignee_user_id,
			created_at, completed_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Title, todo.Description, todo.Status, todo.Priority,
		todo.DueDate, todo.SortOrder, todo.ProjectID, todo.MilestoneID, todo.AssigneeUserID,
		todo.CreatedAt, todo.CompletedAt, todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// UpdateTodo updates an existing todo by ID.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo model.Todo) error {
	if strings.TrimSpace(todo.Title) == "" {
		return fmt.Errorf("todo title must not be empty")
	}

	now := time.Now().UTC()
	todo.UpdatedAt = now

	// Auto-manage completed_at based on status.
	if todo.Status == model.TodoStatusComplete && todo.CompletedAt == nil {
		todo.CompletedAt = &now
	} else if todo.Status == model.TodoStatusOpen {
		todo.CompletedAt = nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, description = ?, status = ?, priority = ?,
			due_date = ?, sort_order = ?, project_id = ?, milestone_id = ?,
			assignee_user_id = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`,
		todo.Title, todo.Description, todo.Status, todo.Priority,
		todo.DueDate, todo.SortOrder, todo.ProjectID, todo.MilestoneID,
		todo.AssigneeUserID, todo.CompletedAt, todo.UpdatedAt,
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", todo.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", todo.ID, ErrNotFound)
	}
	return nil
}

// DeleteTodo removes a todo by ID. Cascades to checklist_items, todo_tags
// and todo_documents.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTodoByID retrieves a single todo by ID, including its tags.
func (s *SQLiteStore) GetTodoByID(
	ctx context.Context,
	id string,
) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.GetContext(ctx, &todo,
		"SELECT "+todoColumns+" FROM todos WHERE id = ?", id)
	if err != nil {
		return nil, notFound(err, "getting todo %s", id)
	}

	tags, err := s.GetTagsForTodo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading tags for todo %s: %w", id, err)
	}
	todo.Tags = tags

	return &todo, nil
}

// GetTodos retrieves todos matching the filter.
func (s *SQLiteStore) GetTodos(
	ctx context.Context,
	filter TodoFilter,
) ([]model.Todo, error) {
	query, args := buildTodoQuery("SELECT "+todoColumns, filter)

	var todos []model.Todo
	if err := s.db.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}

	for i := range todos {
		tags, err := s.GetTagsForTodo(ctx, todos[i].ID)
		if err != nil {
			return nil, fmt.Errorf("loading tags for todo %s: %w", todos[i].ID, err)
		}
		todos[i].Tags = tags

		var counts struct {
			Total int `db:"total"`
			Done  int `db:"done"`
		}
		err = s.db.GetContext(ctx, &counts, `
			SELECT COUNT(*) AS total, COALESCE(SUM(checked), 0) AS done
			FROM checklist_items WHERE todo_id = ?`, todos[i].ID)
		if err != nil {
			return nil, fmt.Errorf("counting checklist for todo %s: %w", todos[i].ID, err)
		}
		todos[i].ChecklistCount = counts.Total
		todos[i].ChecklistDoneCount = counts.Done
	}

	return todos, nil
}

// AddChecklistItem inserts a new checklist item for a todo.
func (s *SQLiteStore) AddChecklistItem(
	ctx context.Context,
	item model.ChecklistItem,
) error {
	if strings.TrimSpace(item.Text) == "" {
		return fmt.Errorf("checklist item text must not be empty")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now().UTC()

	if item.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM checklist_items WHERE todo_id = ?",
			item.TodoID)
		if err != nil {
			return fmt.Errorf("getting max checklist sort_order: %w", err)
		}
		item.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklist_items (id, todo_id, text, checked, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.TodoID, item.Text, boolToInt(item.Checked),
		item.SortOrder, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("adding checklist item: %w", err)
	}
	return nil
}

// GetChecklistItems returns all checklist items for a todo, ordered by sort_order.
func (s *SQLiteStore) GetChecklistItems(
	ctx context.Context,
	todoID string,
) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	err := s.db.SelectContext(ctx, &items, `
		SELECT id, todo_id, text, checked, sort_order, created_at
		FROM checklist_items WHERE todo_id = ? ORDER BY sort_order`,
		todoID)
	if err != nil {
		return nil, fmt.Errorf("querying checklist items: %w", err)
	}
	return items, nil
}

// ReplaceChecklist swaps the whole checklist of a todo for the given
// texts, in order. Blank texts are skipped.
func (s *SQLiteStore) ReplaceChecklist(
	ctx context.Context,
	todoID string,
	texts []string,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM checklist_items WHERE todo_id = ?", todoID); err != nil {
		return fmt.Errorf("clearing checklist of todo %s: %w", todoID, err)
	}

	now := time.Now().UTC()
	order := 0
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		order++
		_, err := tx.ExecContext(ctx, `
			INSERT INTO checklist_items (id, todo_id, text, checked, sort_order, created_at)
			VALUES (?, ?, ?, 0, ?, ?)`,
			uuid.New().String(), todoID, text, order, now,
		)
		if err != nil {
			return fmt.Errorf("adding checklist item to todo %s: %w", todoID, err)
		}
	}

	return tx.Commit()
}

// buildTodoQuery constructs the SQL query and args for a TodoFilter.
func buildTodoQuery(selectClause string, filter TodoFilter) (string, []any) {
	var conditions []string
	var args []any
	needsTagJoin := len(filter.TagIDs) > 0

	from := " FROM todos"
	if needsTagJoin {
		from += " INNER JOIN todo_tags ON todos.id = todo_tags.todo_id"
	}

	if filter.Status != nil {
		conditions = append(conditions, "todos.status = ?")
		args = append(args, *filter.Status)
	}
	if filter.ProjectID != nil {
		conditions = append(conditions, "todos.project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.MilestoneID != nil {
		conditions = append(conditions, "todos.milestone_id = ?")
		args = append(args, *filter.MilestoneID)
	}
	if len(filter.TagIDs) > 0 {
		placeholders := make([]string, len(filter.TagIDs))
		for i, id := range filter.TagIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		conditions = append(conditions,
			"todo_tags.tag_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions,
			"(todos.title LIKE ? OR todos.description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := selectClause + from
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	if needsTagJoin {
		query += " GROUP BY todos.id"
	}

	// Sort.
	sortBy := "todos.sort_order"
	if filter.SortBy != "" {
		allowed := map[string]string{
			"sort_order": "todos.sort_order",
			"priority":   "todos.priority",
			"created_at": "todos.created_at",
			"updated_at": "todos.updated_at",
			"title":      "todos.title",
		}
		if col, ok := allowed[filter.SortBy]; ok {
			sortBy = col
		}
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, args
}
