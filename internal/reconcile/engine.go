// Package reconcile applies parsed model output to the entity store:
// tags, milestones, tasks and project fields.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/daedaly/internal/extract"
	"github.com/nhle/daedaly/internal/model"
)

// Store is the subset of the entity store the engine writes through.
type Store interface {
	FindTagByName(ctx context.Context, name string) (*model.Tag, error)
	CreateTag(ctx context.Context, tag model.Tag) error
	SetTodoTags(ctx context.Context, todoID string, tagIDs []string) error
	SetProjectTags(ctx context.Context, projectID string, tagIDs []string) error
	FindMilestone(ctx context.Context, projectID, name string) (*model.Milestone, error)
	CreateMilestone(ctx context.Context, milestone model.Milestone) error
	CreateTodo(ctx context.Context, todo model.Todo) error
	UpdateProject(ctx context.Context, project model.Project) error
}

// Report summarizes what one apply call changed.
type Report struct {
	Shape             string
	TasksCreated      int
	TasksAssigned     int
	MilestonesCreated []string
	TagsCreated       []string
	// UnmatchedAssignees lists assignee names that resolved to nobody.
	UnmatchedAssignees []string
}

// Engine applies model output to the store.
type Engine struct {
	store  Store
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(store Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger}
}

// Plan shapes, in detection order.
const (
	ShapeTasks        = "tasks"
	ShapeSprints      = "sprints"
	ShapeValueStreams = "value_streams"
	ShapeIterations   = "iterations"
	ShapePhases       = "phases"
	ShapeEmpty        = "empty"
)

// DetectShape reports which grouping a plan uses: the first non-empty key
// among tasks, sprints, value_streams, iterations and phases.
func DetectShape(plan map[string]any) string {
	for _, key := range []string{ShapeTasks, ShapeSprints, ShapeValueStreams, ShapeIterations, ShapePhases} {
		if items, ok := plan[key].([]any); ok && len(items) > 0 {
			return key
		}
	}
	return ShapeEmpty
}

// ApplyTaskPlan creates the tasks of plan under project. The grouping is
// recognized by shape; a plan without any known grouping creates nothing
// and is not an error.
func (e *Engine) ApplyTaskPlan(
	ctx context.Context,
	project model.Project,
	plan map[string]any,
	lookup *AssigneeLookup,
) (Report, error) {
	r := Report{Shape: DetectShape(plan)}
	e.logger.Debug("applying task plan",
		zap.String("project_id", project.ID),
		zap.String("shape", r.Shape),
		zap.Int("assignee_keys", lookup.Len()))

	switch r.Shape {
	case ShapeTasks:
		return r, e.createTasks(ctx, &r, project, nil, plan[ShapeTasks], lookup)

	case ShapeSprints:
		for _, g := range objects(plan[ShapeSprints]) {
			label := "Sprint"
			if truthy(g["sprint"]) {
				label = "Sprint " + scalar(g["sprint"])
			}
			if err := e.applyGroup(ctx, &r, project, label, g["tasks"], lookup); err != nil {
				return r, err
			}
		}

	case ShapeValueStreams:
		for _, g := range objects(plan[ShapeValueStreams]) {
			name := "Value Stream"
			if truthy(g["stream"]) {
				name = scalar(g["stream"])
			}
			if err := e.applyGroup(ctx, &r, project, "Value Stream - "+name, g["tasks"], lookup); err != nil {
				return r, err
			}
		}

	case ShapeIterations:
		for _, g := range objects(plan[ShapeIterations]) {
			label := "Iteration"
			if truthy(g["iteration"]) {
				label = "Iteration " + scalar(g["iteration"])
			}
			if err := e.applyGroup(ctx, &r, project, label, g["tasks"], lookup); err != nil {
				return r, err
			}
		}

	case ShapePhases:
		// Phases are flattened: their tasks are created ungrouped.
		var tasks []any
		for _, phase := range objects(plan[ShapePhases]) {
			if ts, ok := phase["tasks"].([]any); ok {
				tasks = append(tasks, ts...)
			}
		}
		return r, e.createTasks(ctx, &r, project, nil, tasks, lookup)

	default:
		e.logger.Warn("task plan has no recognized grouping",
			zap.String("project_id", project.ID))
	}
	return r, nil
}

func (e *Engine) applyGroup(
	ctx context.Context,
	r *Report,
	project model.Project,
	label string,
	tasks any,
	lookup *AssigneeLookup,
) error {
	milestone, err := e.upsertMilestone(ctx, r, project.ID, label)
	if err != nil {
		return err
	}
	return e.createTasks(ctx, r, project, milestone, tasks, lookup)
}

func (e *Engine) createTasks(
	ctx context.Context,
	r *Report,
	project model.Project,
	milestone *model.Milestone,
	tasks any,
	lookup *AssigneeLookup,
) error {
	for _, t := range objects(tasks) {
		if err := e.createTask(ctx, r, project, milestone, t, lookup); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) createTask(
	ctx context.Context,
	r *Report,
	project model.Project,
	milestone *model.Milestone,
	task map[string]any,
	lookup *AssigneeLookup,
) error {
	tagIDs, err := e.upsertTags(ctx, r, extract.Strings(task["keywords"]))
	if err != nil {
		return err
	}

	title := strings.TrimSpace(scalar(task["title"]))
	if title == "" {
		title = "Task"
	}
	projectID := project.ID
	todo := model.Todo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: scalar(task["description"]),
		ProjectID:   &projectID,
	}
	if milestone != nil {
		id := milestone.ID
		todo.MilestoneID = &id
	}

	if name := strings.TrimSpace(scalar(task["assignee"])); name != "" {
		member, ok := lookup.Match(name)
		switch {
		case ok && member.UserID != nil:
			uid := *member.UserID
			todo.AssigneeUserID = &uid
			r.TasksAssigned++
		case ok:
			e.logger.Debug("assignee has no user account",
				zap.String("assignee", name), zap.String("member_id", member.ID))
		default:
			r.UnmatchedAssignees = append(r.UnmatchedAssignees, name)
		}
	}

	if err := e.store.CreateTodo(ctx, todo); err != nil {
		return fmt.Errorf("creating task %q: %w", title, err)
	}
	if len(tagIDs) > 0 {
		if err := e.store.SetTodoTags(ctx, todo.ID, tagIDs); err != nil {
			return fmt.Errorf("tagging task %q: %w", title, err)
		}
	}
	r.TasksCreated++
	return nil
}

// upsertMilestone finds the project's milestone named label or creates it.
func (e *Engine) upsertMilestone(
	ctx context.Context,
	r *Report,
	projectID, label string,
) (*model.Milestone, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	existing, err := e.store.FindMilestone(ctx, projectID, label)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	m := model.Milestone{ID: uuid.New().String(), ProjectID: projectID, Name: label}
	if err := e.store.CreateMilestone(ctx, m); err != nil {
		return nil, err
	}
	r.MilestonesCreated = append(r.MilestonesCreated, label)
	return &m, nil
}

// upsertTags resolves keyword names to tag ids, creating missing tags.
// Blank keywords are dropped; repeated names yield one id.
func (e *Engine) upsertTags(ctx context.Context, r *Report, names []string) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := e.store.FindTagByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			tag = &model.Tag{ID: uuid.New().String(), Name: name}
			if err := e.store.CreateTag(ctx, *tag); err != nil {
				return nil, err
			}
			r.TagsCreated = append(r.TagsCreated, name)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// ApplyProjectAnalysis writes description, economic notes, criticality
// and tags from fields onto project. The project's tag set is replaced
// wholesale. The updated project is returned.
func (e *Engine) ApplyProjectAnalysis(
	ctx context.Context,
	project model.Project,
	fields map[string]any,
) (model.Project, Report, error) {
	var r Report

	project.Description = FormatDescription(fields["description"])
	project.EconomicNotes = ToHTML(fields["economic_notes"])
	project.Criticality = ToHTML(fields["criticita"])

	tagIDs, err := e.upsertTags(ctx, &r, extract.Strings(fields["tags"]))
	if err != nil {
		return project, r, err
	}
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return project, r, fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	if err := e.store.SetProjectTags(ctx, project.ID, tagIDs); err != nil {
		return project, r, fmt.Errorf("tagging project %s: %w", project.ID, err)
	}
	return project, r, nil
}

// objects returns the JSON objects in a list value, skipping anything
// else.
func objects(v any) []map[string]any {
	items, _ := v.([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
