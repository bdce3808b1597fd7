package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/store"
	"github.com/nhle/daedaly/internal/theme"
)

var taskSortFields = []string{"sort_order", "priority", "created_at", "updated_at", "title"}

func (c *cli) projectHousekeepingCmds() []*cobra.Command {
	archive := &cobra.Command{
		Use:   "archive [project-id...]",
		Short: "Hide projects from the default list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := c.store.ArchiveProject(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, "Project "+id+" archived."))
			}
			return nil
		},
	}

	restore := &cobra.Command{
		Use:   "restore [project-id...]",
		Short: "Bring archived projects back",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := c.store.RestoreProject(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, "Project "+id+" restored."))
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete [project-id]",
		Short: "Delete a project with its documents, milestones and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.store.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, "Project "+args[0]+" deleted."))
			return nil
		},
	}

	return []*cobra.Command{archive, restore, del}
}

func (c *cli) taskListCmd() *cobra.Command {
	var (
		projectID, milestone, status, query, sortBy string
		tags                                        []string
		desc                                        bool
		limit, offset                               int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Lists tasks, optionally narrowed to a project, a milestone (sprint,
value stream, iteration or phase, by name), tags, a status or a search
over title and description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter := store.TodoFilter{
				SortBy:   sortBy,
				SortDesc: desc,
				Limit:    limit,
				Offset:   offset,
			}
			if projectID != "" {
				filter.ProjectID = &projectID
			}
			if milestone != "" {
				if projectID == "" {
					return fmt.Errorf("--milestone needs --project")
				}
				m, err := c.store.FindMilestone(ctx, projectID, milestone)
				if err != nil {
					return err
				}
				if m == nil {
					return fmt.Errorf("project %s has no milestone %q", projectID, milestone)
				}
				filter.MilestoneID = &m.ID
			}
			if status != "" {
				if status != model.TodoStatusOpen && status != model.TodoStatusComplete {
					return fmt.Errorf("status must be %q or %q", model.TodoStatusOpen, model.TodoStatusComplete)
				}
				filter.Status = &status
			}
			if query != "" {
				filter.Query = &query
			}
			if sortBy != "" && !slices.Contains(taskSortFields, sortBy) {
				return fmt.Errorf("sort must be one of %s", strings.Join(taskSortFields, ", "))
			}
			for _, name := range tags {
				tag, err := c.store.FindTagByName(ctx, name)
				if err != nil {
					return err
				}
				if tag == nil {
					return fmt.Errorf("unknown tag %q", name)
				}
				filter.TagIDs = append(filter.TagIDs, tag.ID)
			}

			todos, err := c.store.GetTodos(ctx, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(todos) == 0 {
				fmt.Fprintln(out, theme.MutedStyle.Render("No tasks."))
				return nil
			}
			for _, t := range todos {
				line := fmt.Sprintf("P%d %s %s", t.Priority, theme.KeyStyle.Render(t.Title), theme.MutedStyle.Render(t.ID))
				if t.ChecklistCount > 0 {
					line += theme.MutedStyle.Render(fmt.Sprintf(" [%d/%d]", t.ChecklistDoneCount, t.ChecklistCount))
				}
				if t.Status == model.TodoStatusComplete {
					line = theme.Glyph(model.NotificationSuccess) + " " + line
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&projectID, "project", "", "project id")
	f.StringVar(&milestone, "milestone", "", "milestone name, within --project")
	f.StringSliceVar(&tags, "tag", nil, "tag name; repeat to match any of several")
	f.StringVar(&status, "status", "", "open or complete")
	f.StringVarP(&query, "search", "s", "", "search title and description")
	f.StringVar(&sortBy, "sort", "", "sort by "+strings.Join(taskSortFields, ", "))
	f.BoolVar(&desc, "desc", false, "sort descending")
	f.IntVar(&limit, "limit", 0, "maximum number of tasks")
	f.IntVar(&offset, "offset", 0, "tasks to skip")
	return cmd
}

func (c *cli) taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task with its checklist and documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.store.DeleteTodo(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, "Task "+args[0]+" deleted."))
			return nil
		},
	}
}
