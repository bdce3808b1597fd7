package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/daedaly/internal/model"
)

// AddProjectDocument attaches a document to a project.
func (s *SQLiteStore) AddProjectDocument(ctx context.Context, doc model.Document) error {
	return s.addDocument(ctx, "project_documents", doc)
}

// GetProjectDocuments lists a project's documents, oldest first.
func (s *SQLiteStore) GetProjectDocuments(
	ctx context.Context,
	projectID string,
) ([]model.Document, error) {
	return s.getDocuments(ctx, "project_documents", projectID)
}

// AddTodoDocument attaches a document to a todo.
func (s *SQLiteStore) AddTodoDocument(ctx context.Context, doc model.Document) error {
	return s.addDocument(ctx, "todo_documents", doc)
}

// GetTodoDocuments lists a todo's documents, oldest first.
func (s *SQLiteStore) GetTodoDocuments(
	ctx context.Context,
	todoID string,
) ([]model.Document, error) {
	return s.getDocuments(ctx, "todo_documents", todoID)
}

func (s *SQLiteStore) addDocument(ctx context.Context, table string, doc model.Document) error {
	if doc.OwnerID == "" {
		return fmt.Errorf("document owner must not be empty")
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	doc.CreatedAt = time.Now().UTC()
	if doc.DocDate.IsZero() {
		doc.DocDate = doc.CreatedAt
	}
	if doc.Name == "" {
		doc.Name = doc.Filename
	}
	if doc.Content == nil {
		doc.Content = []byte{}
	}

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, name, filename, content, doc_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, table),
		doc.ID, doc.OwnerID, doc.Name, doc.Filename, doc.Content,
		doc.DocDate.UTC(), doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("adding document %q: %w", doc.Name, err)
	}
	return nil
}

func (s *SQLiteStore) getDocuments(
	ctx context.Context,
	table, ownerID string,
) ([]model.Document, error) {
	var docs []model.Document
	err := s.db.SelectContext(ctx, &docs, fmt.Sprintf(`
		SELECT id, owner_id, name, filename, content, doc_date, created_at
		FROM %s WHERE owner_id = ? ORDER BY doc_date, created_at`, table), ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying documents of %s: %w", ownerID, err)
	}
	return docs, nil
}
