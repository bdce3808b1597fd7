package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/store"
	"github.com/nhle/daedaly/tests/testutil"
)

func TestParams(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, ok, err := s.GetParam(ctx, model.ParamProvider)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetParam(ctx, model.ParamProvider, "gemini"))
	require.NoError(t, s.SetParam(ctx, model.ParamProvider, "deepseek"))
	v, ok, err := s.GetParam(ctx, model.ParamProvider)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "deepseek", v)

	require.NoError(t, s.SetParam(ctx, model.ParamAgentURL, ""))
	v, ok, err = s.GetParam(ctx, model.ParamAgentURL)
	require.NoError(t, err)
	assert.True(t, ok, "empty values are still present")
	assert.Empty(t, v)

	require.NoError(t, s.DeleteParam(ctx, model.ParamProvider))
	_, ok, err = s.GetParam(ctx, model.ParamProvider)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectNotFound(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, err := s.GetProjectByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = s.UpdateProject(ctx, model.Project{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTodoByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTeamAndManager(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	userID := "u-1"
	require.NoError(t, s.CreateUser(ctx, model.User{ID: userID, Name: "Anna Verdi", Login: "anna"}))
	require.NoError(t, s.CreateMember(ctx, model.Member{ID: "m-1", Name: "Anna Verdi", UserID: &userID}))
	require.NoError(t, s.CreateMember(ctx, model.Member{ID: "m-2", Name: "Bruno Neri"}))
	require.NoError(t, s.CreateProject(ctx, model.Project{ID: "p-1", Name: "Portal"}))
	require.NoError(t, s.AddProjectMember(ctx, "p-1", "m-2"))
	require.NoError(t, s.AddProjectMember(ctx, "p-1", "m-2"))

	team, err := s.GetProjectTeam(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "Bruno Neri", team[0].Name)
	assert.Nil(t, team[0].User)

	managers, err := s.GetMembersForUsers(ctx, []string{userID})
	require.NoError(t, err)
	require.Len(t, managers, 1)
	require.NotNil(t, managers[0].User)
	assert.Equal(t, "anna", managers[0].User.Login)

	none, err := s.GetMembersForUsers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTagsAndMilestones(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.CreateProject(ctx, model.Project{ID: "p-1", Name: "Portal"}))

	tag, err := s.FindTagByName(ctx, "backend")
	require.NoError(t, err)
	assert.Nil(t, tag)

	require.NoError(t, s.CreateTag(ctx, model.Tag{ID: "t-1", Name: "backend"}))
	require.NoError(t, s.CreateTag(ctx, model.Tag{ID: "t-2", Name: "api"}))
	assert.Error(t, s.CreateTag(ctx, model.Tag{Name: "backend"}), "names are unique")

	require.NoError(t, s.SetProjectTags(ctx, "p-1", []string{"t-1", "t-2", "t-1"}))
	tags, err := s.GetTagsForProject(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "api", tags[0].Name)

	require.NoError(t, s.SetProjectTags(ctx, "p-1", []string{"t-1"}))
	tags, err = s.GetTagsForProject(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "backend", tags[0].Name)

	require.NoError(t, s.CreateMilestone(ctx, model.Milestone{ProjectID: "p-1", Name: "Sprint 1"}))
	assert.Error(t, s.CreateMilestone(ctx, model.Milestone{ProjectID: "p-1", Name: "Sprint 1"}))
	m, err := s.FindMilestone(ctx, "p-1", "Sprint 1")
	require.NoError(t, err)
	require.NotNil(t, m)
	m, err = s.FindMilestone(ctx, "p-1", "Sprint 2")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestReplaceChecklist(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.CreateTodo(ctx, model.Todo{ID: "td-1", Title: "Login page"}))
	require.NoError(t, s.AddChecklistItem(ctx, model.ChecklistItem{TodoID: "td-1", Text: "old", Checked: true}))

	require.NoError(t, s.ReplaceChecklist(ctx, "td-1", []string{"Draft form", "  ", " Wire API "}))
	items, err := s.GetChecklistItems(ctx, "td-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Draft form", items[0].Text)
	assert.Equal(t, "Wire API", items[1].Text)
	assert.False(t, items[1].Checked)

	todos, err := s.GetTodos(ctx, store.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, 2, todos[0].ChecklistCount)
	assert.Equal(t, 0, todos[0].ChecklistDoneCount)
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.CreateProject(ctx, model.Project{ID: "p-1", Name: "Portal"}))

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.AddProjectDocument(ctx, model.Document{
		OwnerID: "p-1", Name: "Brief", Filename: "brief.txt", Content: []byte("scope"), DocDate: date,
	}))
	docs, err := s.GetProjectDocuments(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "scope", string(docs[0].Content))
	assert.True(t, date.Equal(docs[0].DocDate))
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.CreateProject(ctx, model.Project{ID: "p-1", Name: "Portal"}))

	require.NoError(t, s.CreateNotification(ctx, model.Notification{
		ProjectID: "p-1", Action: "describe", Kind: model.NotificationSuccess, Message: "done",
	}))
	unread, err := s.GetUnreadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, model.NotificationSuccess, unread[0].Kind)

	require.NoError(t, s.MarkNotificationRead(ctx, unread[0].ID))
	unread, err = s.GetUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestArchiveRestoreDeleteProject(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.CreateProject(ctx, model.Project{ID: "p-1", Name: "Portal"}))
	require.NoError(t, s.CreateProject(ctx, model.Project{ID: "p-2", Name: "Billing"}))
	require.NoError(t, s.CreateTodo(ctx, model.Todo{ID: "td-1", Title: "Login page", ProjectID: ptr("p-1")}))

	require.NoError(t, s.ArchiveProject(ctx, "p-1"))
	active, err := s.GetProjects(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "p-2", active[0].ID)
	all, err := s.GetProjects(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.RestoreProject(ctx, "p-1"))
	active, err = s.GetProjects(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	assert.ErrorIs(t, s.ArchiveProject(ctx, "missing"), store.ErrNotFound)

	require.NoError(t, s.DeleteProject(ctx, "p-1"))
	_, err = s.GetTodoByID(ctx, "td-1")
	assert.ErrorIs(t, err, store.ErrNotFound, "tasks go with their project")
	assert.ErrorIs(t, s.DeleteProject(ctx, "p-1"), store.ErrNotFound)
}

func TestDeleteTodo(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.CreateTodo(ctx, model.Todo{ID: "td-1", Title: "Login page"}))
	require.NoError(t, s.ReplaceChecklist(ctx, "td-1", []string{"Draft form"}))

	require.NoError(t, s.DeleteTodo(ctx, "td-1"))
	items, err := s.GetChecklistItems(ctx, "td-1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.ErrorIs(t, s.DeleteTodo(ctx, "td-1"), store.ErrNotFound)
}

func TestGetTodosFilter(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.CreateProject(ctx, model.Project{ID: "p-1", Name: "Portal"}))
	require.NoError(t, s.CreateMilestone(ctx, model.Milestone{ID: "ms-1", ProjectID: "p-1", Name: "Sprint 1"}))
	require.NoError(t, s.CreateTag(ctx, model.Tag{ID: "t-api", Name: "api"}))
	require.NoError(t, s.CreateTag(ctx, model.Tag{ID: "t-ui", Name: "ui"}))

	todos := []model.Todo{
		{ID: "a", Title: "Login API", Priority: model.PriorityHigh, ProjectID: ptr("p-1"), MilestoneID: ptr("ms-1")},
		{ID: "b", Title: "Login form", Description: "uses the API", Priority: model.PriorityLow, ProjectID: ptr("p-1")},
		{ID: "c", Title: "Billing export", Priority: model.PriorityCritical},
	}
	for _, td := range todos {
		require.NoError(t, s.CreateTodo(ctx, td))
	}
	require.NoError(t, s.SetTodoTags(ctx, "a", []string{"t-api"}))
	require.NoError(t, s.SetTodoTags(ctx, "b", []string{"t-api", "t-ui"}))
	done, err := s.GetTodoByID(ctx, "c")
	require.NoError(t, err)
	done.Status = model.TodoStatusComplete
	require.NoError(t, s.UpdateTodo(ctx, *done))

	ids := func(t *testing.T, filter store.TodoFilter) []string {
		t.Helper()
		got, err := s.GetTodos(ctx, filter)
		require.NoError(t, err)
		var out []string
		for _, td := range got {
			out = append(out, td.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter store.TodoFilter
		want   []string
	}{
		{name: "all in sort order", filter: store.TodoFilter{}, want: []string{"a", "b", "c"}},
		{name: "project", filter: store.TodoFilter{ProjectID: ptr("p-1")}, want: []string{"a", "b"}},
		{name: "milestone", filter: store.TodoFilter{MilestoneID: ptr("ms-1")}, want: []string{"a"}},
		{name: "status", filter: store.TodoFilter{Status: ptr(model.TodoStatusComplete)}, want: []string{"c"}},
		{name: "tags match any, once", filter: store.TodoFilter{TagIDs: []string{"t-api", "t-ui"}}, want: []string{"a", "b"}},
		{name: "search title and description", filter: store.TodoFilter{Query: ptr("api")}, want: []string{"a", "b"}},
		{name: "priority descending", filter: store.TodoFilter{SortBy: "priority", SortDesc: true}, want: []string{"b", "a", "c"}},
		{name: "unknown sort falls back", filter: store.TodoFilter{SortBy: "id; DROP TABLE todos"}, want: []string{"a", "b", "c"}},
		{name: "limit and offset", filter: store.TodoFilter{Limit: 1, Offset: 1}, want: []string{"b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(t, tt.filter))
		})
	}
}

func ptr[T any](v T) *T { return &v }
