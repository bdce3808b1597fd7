package generate

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nhle/daedaly/internal/extract"
	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/prompt"
)

// DescribeTask rewrites a task's description as a short summary. The
// description is kept when the reply has none.
func (s *Service) DescribeTask(ctx context.Context, todoID string) error {
	return s.runTask(ctx, ActionTaskDescribe, todoID, func(ctx context.Context, todo model.Todo, in prompt.TaskInput) error {
		res, err := s.ask(ctx, prompt.TaskSummary(in))
		if err != nil {
			return err
		}
		desc, ok := taskDescription(res)
		if !ok {
			s.logger.Warn("no description in reply, keeping the current one",
				zap.String("todo_id", todo.ID))
			return nil
		}
		todo.Description = desc
		return s.store.UpdateTodo(ctx, todo)
	})
}

// GenerateChecklist replaces a task's checklist with ordered operational
// steps.
func (s *Service) GenerateChecklist(ctx context.Context, todoID string) error {
	return s.runTask(ctx, ActionTaskChecklist, todoID, func(ctx context.Context, todo model.Todo, in prompt.TaskInput) error {
		res, err := s.ask(ctx, prompt.TaskChecklist(in))
		if err != nil {
			return err
		}
		if res.Empty() {
			s.logger.Warn("empty reply, checklist left untouched",
				zap.String("todo_id", todo.ID))
			return nil
		}
		return s.store.ReplaceChecklist(ctx, todo.ID, checklistItems(res))
	})
}

type taskFunc func(ctx context.Context, todo model.Todo, in prompt.TaskInput) error

func (s *Service) runTask(ctx context.Context, action, todoID string, run taskFunc) error {
	ctx, span := s.tracer.Start(ctx, "generate."+action, trace.WithAttributes(
		attribute.String("todo.id", todoID),
	))
	defer span.End()

	todo, in, err := s.loadTask(ctx, todoID)
	if err == nil {
		err = run(ctx, *todo, in)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("task generation failed",
			zap.String("action", action), zap.String("todo_id", todoID), zap.Error(err))
		return fmt.Errorf("%s on task %s: %w", action, todoID, err)
	}
	return nil
}

// loadTask gathers the task, the profiles of its assignee and its
// documents.
func (s *Service) loadTask(ctx context.Context, todoID string) (*model.Todo, prompt.TaskInput, error) {
	todo, err := s.store.GetTodoByID(ctx, todoID)
	if err != nil {
		return nil, prompt.TaskInput{}, err
	}
	in := prompt.TaskInput{Description: todo.Description}

	if todo.AssigneeUserID != nil {
		members, err := s.store.GetMembersForUsers(ctx, []string{*todo.AssigneeUserID})
		if err != nil {
			return nil, in, err
		}
		in.Assignees = teamProfiles(members)
	}

	documents, err := s.store.GetTodoDocuments(ctx, todoID)
	if err != nil {
		return nil, in, err
	}
	in.Documents, _ = s.promptDocuments(documents)
	return todo, in, nil
}

// taskDescription picks the description out of a summary reply. A reply
// without JSON is the description itself.
func taskDescription(res extract.Result) (string, bool) {
	if res.Parsed() {
		desc, ok := res.Object["description"].(string)
		desc = strings.TrimSpace(desc)
		return desc, ok && desc != ""
	}
	desc := strings.TrimSpace(res.Fallback)
	return desc, desc != ""
}

// checklistItems reads the "items" list of a checklist reply, or splits a
// reply without JSON into lines.
func checklistItems(res extract.Result) []string {
	if !res.Parsed() {
		return extract.Lines(res.Fallback)
	}
	var items []string
	for _, item := range extract.Strings(res.Object["items"]) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
