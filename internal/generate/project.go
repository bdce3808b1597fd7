package generate

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nhle/daedaly/internal/ai"
	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/prompt"
	"github.com/nhle/daedaly/internal/reconcile"
)

// projectContext is everything a project prompt is built from.
type projectContext struct {
	project   model.Project
	input     prompt.Input
	roster    []model.Member
	docErrors []error
}

// projectFunc runs one action on one loaded project.
type projectFunc func(ctx context.Context, pc projectContext) (Outcome, error)

// DescribeProjects rewrites the description, economic notes, criticality
// and tags of each project from its documents.
func (s *Service) DescribeProjects(ctx context.Context, ids ...string) (BatchReport, error) {
	return s.runBatch(ctx, ActionDescribe, ids, s.describeProject)
}

// GenerateTasks creates the task plan of each project from its documents
// and team.
func (s *Service) GenerateTasks(ctx context.Context, ids ...string) (BatchReport, error) {
	return s.runBatch(ctx, ActionTasks, ids, s.generateTasks)
}

// runBatch processes each project independently. A failed project is
// recorded and its siblings still run; a configuration error or a
// cancelled context stops the batch.
func (s *Service) runBatch(
	ctx context.Context,
	action string,
	ids []string,
	run projectFunc,
) (BatchReport, error) {
	report := BatchReport{Action: action}
	var errs []error

	for _, id := range ids {
		out, err := s.runProject(ctx, action, id, run)
		report.Outcomes = append(report.Outcomes, out)
		s.notify(ctx, action, out)

		if err == nil {
			continue
		}
		errs = append(errs, fmt.Errorf("project %s: %w", id, err))
		if ai.IsConfigurationError(err) || ctx.Err() != nil {
			return report, errors.Join(errs...)
		}
	}
	return report, errors.Join(errs...)
}

func (s *Service) runProject(
	ctx context.Context,
	action, id string,
	run projectFunc,
) (Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "generate."+action, trace.WithAttributes(
		attribute.String("project.id", id),
	))
	defer span.End()

	fail := func(err error) (Outcome, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("generation failed",
			zap.String("action", action), zap.String("project_id", id), zap.Error(err))
		return Outcome{ProjectID: id, Kind: model.NotificationFailure, Message: err.Error(), Err: err}, err
	}

	pc, err := s.loadProject(ctx, id)
	if err != nil {
		return fail(err)
	}
	span.SetAttributes(attribute.String("project.methodology", pc.input.Methodology.String()))

	out, err := run(ctx, pc)
	out.ProjectID = pc.project.ID
	out.ProjectName = pc.project.Name
	out.DocumentErrors = pc.docErrors
	if err != nil {
		failed, err := fail(err)
		failed.ProjectName = pc.project.Name
		failed.Report = out.Report
		failed.DocumentErrors = pc.docErrors
		return failed, err
	}

	if out.Kind == model.NotificationSuccess && len(pc.docErrors) > 0 {
		out.Kind = model.NotificationWarning
		out.Message += fmt.Sprintf(" %d document(s) could not be read.", len(pc.docErrors))
	}
	s.logger.Info("generation completed",
		zap.String("action", action),
		zap.String("project_id", id),
		zap.String("kind", out.Kind),
		zap.Int("tasks_created", out.Report.TasksCreated))
	return out, nil
}

func (s *Service) describeProject(ctx context.Context, pc projectContext) (Outcome, error) {
	res, err := s.ask(ctx, prompt.ProjectAnalysis(pc.input))
	if err != nil {
		return Outcome{}, err
	}
	if res.Empty() {
		return degraded(), nil
	}

	_, r, err := s.engine.ApplyProjectAnalysis(ctx, pc.project, res.Fields())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: model.NotificationSuccess, Message: describeOutcome(r), Report: r}, nil
}

func (s *Service) generateTasks(ctx context.Context, pc projectContext) (Outcome, error) {
	res, err := s.ask(ctx, prompt.TaskBreakdown(pc.input))
	if err != nil {
		return Outcome{}, err
	}
	if res.Empty() {
		return degraded(), nil
	}
	if !res.Parsed() {
		return Outcome{
			Kind:    model.NotificationWarning,
			Message: "The reply carried no task plan; nothing was created.",
		}, nil
	}

	r, err := s.engine.ApplyTaskPlan(ctx, pc.project, res.Object, reconcile.NewAssigneeLookup(pc.roster))
	if err != nil {
		return Outcome{Report: r}, err
	}
	kind := model.NotificationSuccess
	if r.TasksCreated == 0 {
		kind = model.NotificationWarning
	}
	return Outcome{Kind: kind, Message: tasksOutcome(r), Report: r}, nil
}

// degraded is the outcome of a run whose provider call failed with no
// agent to fall back on. Existing content is left untouched.
func degraded() Outcome {
	return Outcome{
		Kind:    model.NotificationWarning,
		Message: "The AI provider did not answer; nothing was changed.",
	}
}

// loadProject gathers methodology, company profile, roster and documents.
func (s *Service) loadProject(ctx context.Context, id string) (projectContext, error) {
	project, err := s.store.GetProjectByID(ctx, id)
	if err != nil {
		return projectContext{}, err
	}
	pc := projectContext{
		project: *project,
		input:   prompt.Input{Methodology: prompt.ParseMethodology(project.Methodology)},
	}

	if project.CompanyID != nil {
		company, err := s.store.GetCompanyByID(ctx, *project.CompanyID)
		if err != nil {
			return pc, fmt.Errorf("loading company of project %s: %w", id, err)
		}
		profile := s.docs.ExtractBytes(company.ProfileFilename, company.Profile)
		if profile.Err != nil {
			pc.docErrors = append(pc.docErrors, profile.Err)
		}
		pc.input.Company = prompt.CompanyProfile{Name: company.Name, Text: profile.PromptText()}
	}

	roster, err := s.roster(ctx, *project)
	if err != nil {
		return pc, err
	}
	pc.roster = roster
	pc.input.Team = teamProfiles(roster)

	documents, err := s.store.GetProjectDocuments(ctx, id)
	if err != nil {
		return pc, err
	}
	var docErrs []error
	pc.input.Documents, docErrs = s.promptDocuments(documents)
	pc.docErrors = append(pc.docErrors, docErrs...)
	return pc, nil
}

// roster is the project team plus the manager's member record, each
// member once.
func (s *Service) roster(ctx context.Context, project model.Project) ([]model.Member, error) {
	team, err := s.store.GetProjectTeam(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if project.ManagerUserID == nil {
		return team, nil
	}
	managers, err := s.store.GetMembersForUsers(ctx, []string{*project.ManagerUserID})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(team))
	for _, m := range team {
		seen[m.ID] = true
	}
	for _, m := range managers {
		if !seen[m.ID] {
			seen[m.ID] = true
			team = append(team, m)
		}
	}
	return team, nil
}

func (s *Service) promptDocuments(documents []model.Document) ([]prompt.Document, []error) {
	out := make([]prompt.Document, 0, len(documents))
	var errs []error
	for _, d := range documents {
		res := s.docs.Extract(d)
		if res.Err != nil {
			s.logger.Warn("document unreadable",
				zap.String("document", d.Name), zap.Error(res.Err))
			errs = append(errs, res.Err)
		}
		out = append(out, prompt.Document{Name: d.Name, Date: d.DocDate, Text: res.PromptText()})
	}
	return out, errs
}

func teamProfiles(members []model.Member) []prompt.TeamProfile {
	out := make([]prompt.TeamProfile, 0, len(members))
	for _, m := range members {
		p := prompt.TeamProfile{
			DisplayName: m.Label(),
			WorkEmail:   m.WorkEmail,
			WorkPhone:   m.WorkPhone,
			MobilePhone: m.MobilePhone,
			Profile:     m.AIProfile,
		}
		if m.User != nil {
			p.Login = m.User.Login
		}
		out = append(out, p)
	}
	return out
}

// notify records the outcome of one project. Failing to store it is
// logged, never returned.
func (s *Service) notify(ctx context.Context, action string, out Outcome) {
	if out.Kind == "" {
		return
	}
	err := s.store.CreateNotification(ctx, model.Notification{
		ProjectID: out.ProjectID,
		Action:    action,
		Kind:      out.Kind,
		Message:   out.Message,
	})
	if err != nil {
		s.logger.Warn("storing notification", zap.Error(err))
	}
}
