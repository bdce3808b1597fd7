package generate

import (
	"fmt"
	"strings"

	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/reconcile"
)

// Action names recorded on notifications.
const (
	ActionDescribe      = "describe"
	ActionTasks         = "tasks"
	ActionTaskDescribe  = "task_describe"
	ActionTaskChecklist = "task_checklist"
)

// Outcome is the result of one project in a batch.
type Outcome struct {
	ProjectID   string
	ProjectName string
	Kind        string // one of the model.Notification* kinds
	Message     string
	Report      reconcile.Report
	Err         error

	// DocumentErrors lists documents that could not be read. They do not
	// fail the project; the prompt carries a note instead.
	DocumentErrors []error
}

// BatchReport collects the outcome of every project of a batch, in the
// order they were requested.
type BatchReport struct {
	Action   string
	Outcomes []Outcome
}

// Failed returns the number of projects that failed.
func (b BatchReport) Failed() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Kind == model.NotificationFailure {
			n++
		}
	}
	return n
}

func describeOutcome(r reconcile.Report) string {
	msg := "Project analysis updated"
	if len(r.TagsCreated) > 0 {
		msg += fmt.Sprintf("; new tags: %s", strings.Join(r.TagsCreated, ", "))
	}
	return msg + "."
}

func tasksOutcome(r reconcile.Report) string {
	msg := fmt.Sprintf("%d tasks created (%d assigned)", r.TasksCreated, r.TasksAssigned)
	if len(r.MilestonesCreated) > 0 {
		msg += fmt.Sprintf("; new milestones: %s", strings.Join(r.MilestonesCreated, ", "))
	}
	if len(r.UnmatchedAssignees) > 0 {
		msg += fmt.Sprintf("; unknown assignees: %s", strings.Join(r.UnmatchedAssignees, ", "))
	}
	return msg + "."
}
