package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/seed"
	"github.com/nhle/daedaly/internal/theme"
)

func (c *cli) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import projects, team members and documents",
	}

	project := &cobra.Command{
		Use:   "project [file.yaml]",
		Short: "Import a project with its company, team and documents",
		Long: `Reads a YAML seed file:

  company:   {id, name, profile: path}
  project:   {id, name, methodology: prince2|scrum|lean|agile, manager: <team key>}
  team:      [{key, name, display_name, work_email, work_phone, mobile_phone, profile, login, email}]
  documents: [{name, path, date: YYYY-MM-DD}]

Paths are relative to the seed file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.LoadProject(args[0])
			if err != nil {
				return err
			}
			sum, err := seed.NewImporter(c.store).ImportProject(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, fmt.Sprintf(
				"Project %s imported: %d members (%d users), %d documents.",
				sum.ProjectID, sum.Members, sum.Users, sum.Documents)))
			return nil
		},
	}

	var projectID string
	members := &cobra.Command{
		Use:   "members [file.yaml]",
		Short: "Import a YAML list of team members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := seed.LoadMembers(args[0])
			if err != nil {
				return err
			}
			sum, err := seed.NewImporter(c.store).ImportMembers(cmd.Context(), projectID, list)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, fmt.Sprintf(
				"%d members imported (%d users).", sum.Members, sum.Users)))
			return nil
		},
	}
	members.Flags().StringVar(&projectID, "project", "", "staff the members on this project")

	var docProject, docTask, docName, docDate string
	document := &cobra.Command{
		Use:   "document [path]",
		Short: "Attach a document to a project or a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, ownerID := seed.OwnerProject, docProject
			if docTask != "" {
				owner, ownerID = seed.OwnerTask, docTask
			}
			d := seed.Document{Name: docName, Path: args[0], Date: docDate}
			if err := seed.NewImporter(c.store).ImportDocument(cmd.Context(), owner, ownerID, d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, "Document attached to "+ownerID+"."))
			return nil
		},
	}
	document.Flags().StringVar(&docProject, "project", "", "project id")
	document.Flags().StringVar(&docTask, "task", "", "task id")
	document.Flags().StringVar(&docName, "name", "", "document name (defaults to the file name)")
	document.Flags().StringVar(&docDate, "date", "", "document date, YYYY-MM-DD (defaults to the import time)")
	document.MarkFlagsOneRequired("project", "task")
	document.MarkFlagsMutuallyExclusive("project", "task")

	cmd.AddCommand(project, members, document)
	return cmd
}
