package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhle/daedaly/internal/generate"
	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/theme"
)

func (c *cli) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Generate project content and manage projects",
	}

	describe := &cobra.Command{
		Use:   "describe [project-id...]",
		Short: "Rewrite description, economic notes, criticality and tags",
		Long: `Analyzes each project's documents and company profile with the active
provider, then rewrites the project description, economic notes,
criticality notes and tag set. Projects are processed one by one; a failed
project does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.service().DescribeProjects(cmd.Context(), args...)
			renderBatch(cmd.OutOrStdout(), "Project analysis", report)
			return err
		},
	}

	tasks := &cobra.Command{
		Use:   "tasks [project-id...]",
		Short: "Generate the task plan of each project",
		Long: `Builds a methodology-specific task plan (PRINCE2, Scrum, Lean or Agile)
from the project documents and team, then creates the tasks, milestones and
tags it describes. Assignees are matched against the team by name, email,
phone or login.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.service().GenerateTasks(cmd.Context(), args...)
			renderBatch(cmd.OutOrStdout(), "Task generation", report)
			return err
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			projects, err := c.store.GetProjects(cmd.Context(), all)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range projects {
				methodology := p.Methodology
				if methodology == "" {
					methodology = "agile"
				}
				fmt.Fprintf(out, "%s  %s %s\n", theme.KeyStyle.Render(p.Name),
					theme.MutedStyle.Render(p.ID), theme.MutedStyle.Render("("+methodology+")"))
			}
			return nil
		},
	}
	list.Flags().Bool("all", false, "include archived projects")

	cmd.AddCommand(describe, tasks, list)
	cmd.AddCommand(c.projectHousekeepingCmds()...)
	return cmd
}

func (c *cli) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Generate task content and browse tasks",
	}

	describe := &cobra.Command{
		Use:   "describe [task-id]",
		Short: "Rewrite a task description as a short summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.service().DescribeTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			todo, err := c.store.GetTodoByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.HeaderStyle.Render(todo.Title))
			fmt.Fprintln(out, theme.PanelStyle.Render(todo.Description))
			return nil
		},
	}

	checklist := &cobra.Command{
		Use:   "checklist [task-id]",
		Short: "Replace a task checklist with generated steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.service().GenerateChecklist(cmd.Context(), args[0]); err != nil {
				return err
			}
			items, err := c.store.GetChecklistItems(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, it := range items {
				fmt.Fprintf(out, "%d. %s\n", it.SortOrder, it.Text)
			}
			return nil
		},
	}

	cmd.AddCommand(describe, checklist, c.taskListCmd(), c.taskDeleteCmd())
	return cmd
}

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test the connection and credit of the active provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.gateway().Probe(cmd.Context()))
			return nil
		},
	}
}

func (c *cli) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show unread generation notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ack, _ := cmd.Flags().GetBool("ack")
			list, err := c.store.GetUnreadNotifications(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, theme.MutedStyle.Render("No unread notifications."))
				return nil
			}
			for _, n := range list {
				fmt.Fprintf(out, "%s %s %s\n",
					theme.MutedStyle.Render(n.CreatedAt.Local().Format("2006-01-02 15:04")),
					theme.MutedStyle.Render(n.Action+" "+n.ProjectID),
					theme.Status(n.Kind, n.Message))
				if ack {
					if err := c.store.MarkNotificationRead(cmd.Context(), n.ID); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("ack", false, "mark the listed notifications as read")
	return cmd
}

func renderBatch(w io.Writer, title string, report generate.BatchReport) {
	fmt.Fprintln(w, theme.HeaderStyle.Render(title))
	for _, o := range report.Outcomes {
		name := o.ProjectName
		if name == "" {
			name = o.ProjectID
		}
		fmt.Fprintf(w, "%s %s\n", theme.KeyStyle.Render(name), theme.Status(o.Kind, o.Message))
		for _, err := range o.DocumentErrors {
			fmt.Fprintf(w, "  %s\n", theme.Status(model.NotificationWarning, err.Error()))
		}
	}
	if failed := report.Failed(); failed > 0 {
		fmt.Fprintln(w, theme.MutedStyle.Render(fmt.Sprintf("%d of %d projects failed.", failed, len(report.Outcomes))))
	}
}
