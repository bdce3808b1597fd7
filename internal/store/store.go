package store

import (
	"context"
	"errors"

	"github.com/nhle/daedaly/internal/model"
)

// ErrNotFound is returned by single-record lookups when no row matches.
var ErrNotFound = errors.New("not found")

// TodoFilter controls filtering, sorting, and pagination for todo queries.
type TodoFilter struct {
	Status      *string // "open", "complete", or nil (all)
	ProjectID   *string // project UUID or nil (all)
	MilestoneID *string // milestone UUID or nil (all)
	TagIDs      []string
	Query       *string // search title + description
	SortBy      string  // "sort_order", "priority", "created_at", "updated_at", "title"
	SortDesc    bool
	Limit       int
	Offset      int
}

// Store defines the persistence interface for projects, their team,
// documents, tasks and the AI parameters.
type Store interface {
	// === Parameters ===

	GetParam(ctx context.Context, key string) (string, bool, error)
	SetParam(ctx context.Context, key, value string) error
	DeleteParam(ctx context.Context, key string) error

	// === Companies, users and members ===

	CreateCompany(ctx context.Context, company model.Company) error
	GetCompanyByID(ctx context.Context, id string) (*model.Company, error)
	CreateUser(ctx context.Context, user model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	CreateMember(ctx context.Context, member model.Member) error
	AddProjectMember(ctx context.Context, projectID, memberID string) error
	GetProjectTeam(ctx context.Context, projectID string) ([]model.Member, error)
	GetMembersForUsers(ctx context.Context, userIDs []string) ([]model.Member, error)

	// === Project CRUD ===

	CreateProject(ctx context.Context, project model.Project) error
	UpdateProject(ctx context.Context, project model.Project) error
	DeleteProject(ctx context.Context, id string) error
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	GetProjects(ctx context.Context, includeArchived bool) ([]model.Project, error)
	ArchiveProject(ctx context.Context, id string) error
	RestoreProject(ctx context.Context, id string) error

	// === Documents ===

	AddProjectDocument(ctx context.Context, doc model.Document) error
	GetProjectDocuments(ctx context.Context, projectID string) ([]model.Document, error)
	AddTodoDocument(ctx context.Context, doc model.Document) error
	GetTodoDocuments(ctx context.Context, todoID string) ([]model.Document, error)

	// === Tag CRUD ===

	CreateTag(ctx context.Context, tag model.Tag) error
	FindTagByName(ctx context.Context, name string) (*model.Tag, error)
	GetTags(ctx context.Context) ([]model.Tag, error)
	GetTagsForTodo(ctx context.Context, todoID string) ([]model.Tag, error)
	SetTodoTags(ctx context.Context, todoID string, tagIDs []string) error
	GetTagsForProject(ctx context.Context, projectID string) ([]model.Tag, error)
	SetProjectTags(ctx context.Context, projectID string, tagIDs []string) error

	// === Milestones ===

	CreateMilestone(ctx context.Context, milestone model.Milestone) error
	FindMilestone(ctx context.Context, projectID, name string) (*model.Milestone, error)
	GetMilestones(ctx context.Context, projectID string) ([]model.Milestone, error)

	// === Todo CRUD ===

	CreateTodo(ctx context.Context, todo model.Todo) error
	UpdateTodo(ctx context.Context, todo model.Todo) error
	DeleteTodo(ctx context.Context, id string) error
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	GetTodos(ctx context.Context, filter TodoFilter) ([]model.Todo, error)

	// === Checklist CRUD ===

	AddChecklistItem(ctx context.Context, item model.ChecklistItem) error
	GetChecklistItems(ctx context.Context, todoID string) ([]model.ChecklistItem, error)
	ReplaceChecklist(ctx context.Context, todoID string, texts []string) error

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) error
	GetUnreadNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}
