package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var docDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func TestParseMethodology(t *testing.T) {
	assert.Equal(t, PRINCE2, ParseMethodology("PRINCE2"))
	assert.Equal(t, Scrum, ParseMethodology(" scrum "))
	assert.Equal(t, Lean, ParseMethodology("lean"))
	assert.Equal(t, Agile, ParseMethodology("agile"))
	assert.Equal(t, Agile, ParseMethodology(""))
	assert.Equal(t, Agile, ParseMethodology("kanban"))
}

func TestTaskBreakdownSchemaPerMethodology(t *testing.T) {
	tests := []struct {
		m       Methodology
		want    string
		notWant []string
	}{
		{m: PRINCE2, want: `"tasks": [`, notWant: []string{`"sprints"`, `"value_streams"`, `"iterations"`}},
		{m: Scrum, want: `"sprints": [`, notWant: []string{`"value_streams"`, `"iterations"`}},
		{m: Lean, want: `"value_streams": [`, notWant: []string{`"sprints"`, `"iterations"`}},
		{m: Agile, want: `"iterations": [`, notWant: []string{`"sprints"`, `"value_streams"`}},
	}
	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			p := TaskBreakdown(Input{Methodology: tt.m})
			assert.Contains(t, p, tt.want)
			for _, s := range tt.notWant {
				assert.NotContains(t, p, s)
			}
			assert.Contains(t, p, "senza markdown")
			assert.Contains(t, p, "JSON puro")
		})
	}
}

func TestTaskBreakdownTeamSection(t *testing.T) {
	p := TaskBreakdown(Input{Methodology: Scrum})
	assert.Contains(t, p, NoTeamInstruction)
	assert.NotContains(t, p, "Membri del team")

	p = TaskBreakdown(Input{
		Methodology: Scrum,
		Team: []TeamProfile{
			{DisplayName: "Mario Rossi", WorkEmail: "m.rossi@x.com", Login: "mrossi", Profile: "Backend developer, Go."},
			{DisplayName: "Anna Bianchi", MobilePhone: "+39 333 1234567"},
		},
		Company:   CompanyProfile{Name: "Acme", Text: "Acme builds rockets."},
		Documents: []Document{{Name: "Kickoff", Date: docDate, Text: "meeting notes"}},
	})
	assert.NotContains(t, p, NoTeamInstruction)
	assert.Contains(t, p, "- Mario Rossi (email: m.rossi@x.com, login: mrossi)\n  Profilo professionale:\nBackend developer, Go.\n")
	assert.Contains(t, p, "- Anna Bianchi (mobile: +39 333 1234567)\n  Profilo professionale: nessuna descrizione fornita.\n")
	assert.Contains(t, p, "Acme builds rockets.")
	assert.Contains(t, p, "Documento data: 2025-03-14, chiamato: Kickoff\nContenuto:\nmeeting notes\n")
}

func TestProjectAnalysis(t *testing.T) {
	p := ProjectAnalysis(Input{
		Methodology: Lean,
		Company:     CompanyProfile{Name: "Acme", Text: "profile text"},
		Documents: []Document{
			{Name: "A", Date: docDate, Text: "first"},
			{Name: "B", Date: docDate.AddDate(0, 0, 1), Text: "second"},
		},
	})
	assert.Contains(t, p, "Framework: Lean.")
	assert.Contains(t, p, "azienda 'Acme'")
	for _, key := range []string{`"description"`, `"economic_notes"`, `"criticita"`, `"tags"`} {
		assert.Contains(t, p, key)
	}
	assert.Less(t, strings.Index(p, "chiamato: A"), strings.Index(p, "chiamato: B"))

	p = ProjectAnalysis(Input{})
	assert.Contains(t, p, "Framework: Agile.")
	assert.NotContains(t, p, "azienda '")
}

func TestTaskPrompts(t *testing.T) {
	in := TaskInput{Description: "Build the login page"}
	summary := TaskSummary(in)
	assert.Contains(t, summary, `"description": "testo descrittivo della task"`)
	assert.Contains(t, summary, "Non è disponibile un profilo dell'assegnatario")
	assert.Contains(t, summary, "Build the login page")

	in.Assignees = []TeamProfile{{DisplayName: "Mario Rossi", Profile: "Frontend"}}
	in.Documents = []Document{{Name: "Mockup", Date: docDate, Text: "wireframe"}}
	checklist := TaskChecklist(in)
	assert.Contains(t, checklist, `{"items": ["step 1", "step 2"]}`)
	assert.Contains(t, checklist, "- Mario Rossi\n  Profilo professionale:\nFrontend\n")
	assert.Contains(t, checklist, "Documento task data: 2025-03-14, chiamato: Mockup")
}
