// Package prompt builds the prompts sent to the model. Every builder is a
// pure function of its input.
package prompt

import (
	"fmt"
	"strings"
	"time"
)

// Methodology is the project-management framework of a project.
type Methodology int

const (
	Agile Methodology = iota
	PRINCE2
	Scrum
	Lean
)

// ParseMethodology maps a stored framework name to a Methodology.
// Unknown and empty values fall back to Agile.
func ParseMethodology(s string) Methodology {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prince2":
		return PRINCE2
	case "scrum":
		return Scrum
	case "lean":
		return Lean
	default:
		return Agile
	}
}

func (m Methodology) String() string {
	switch m {
	case PRINCE2:
		return "prince2"
	case Scrum:
		return "scrum"
	case Lean:
		return "lean"
	default:
		return "agile"
	}
}

// Document is an attachment already converted to text.
type Document struct {
	Name string
	Date time.Time
	Text string
}

// CompanyProfile describes the company delivering the project.
type CompanyProfile struct {
	Name string
	Text string
}

// TeamProfile is one member of the roster offered to the model.
type TeamProfile struct {
	DisplayName string
	WorkEmail   string
	WorkPhone   string
	MobilePhone string
	Login       string
	Profile     string
}

// Input is the context of a project-level prompt.
type Input struct {
	Methodology Methodology
	Company     CompanyProfile
	Team        []TeamProfile
	Documents   []Document
}

// TaskInput is the context of a task-level prompt.
type TaskInput struct {
	Description string
	Assignees   []TeamProfile
	Documents   []Document
}

const plainTextRule = "Scrivi tutto in testo semplice, senza markdown o formattazioni " +
	"(niente **grassetto**, *corsivo*, intestazioni, codice o link).\n"

func writeDocuments(b *strings.Builder, label string, docs []Document) {
	for _, d := range docs {
		fmt.Fprintf(b, "\n%s data: %s, chiamato: %s\nContenuto:\n%s\n",
			label, d.Date.Format("2006-01-02"), d.Name, d.Text)
	}
}

// contactLine renders "- Name (email: x, tel: y)".
func contactLine(p TeamProfile) string {
	var bits []string
	if p.WorkEmail != "" {
		bits = append(bits, "email: "+p.WorkEmail)
	}
	if p.WorkPhone != "" {
		bits = append(bits, "tel: "+p.WorkPhone)
	}
	if p.MobilePhone != "" {
		bits = append(bits, "mobile: "+p.MobilePhone)
	}
	if p.Login != "" {
		bits = append(bits, "login: "+p.Login)
	}
	line := "- " + p.DisplayName
	if len(bits) > 0 {
		line += " (" + strings.Join(bits, ", ") + ")"
	}
	return line
}

func writeProfiles(b *strings.Builder, team []TeamProfile) {
	for _, p := range team {
		b.WriteString(contactLine(p))
		b.WriteString("\n")
		if profile := strings.TrimSpace(p.Profile); profile != "" {
			fmt.Fprintf(b, "  Profilo professionale:\n%s\n", profile)
		} else {
			b.WriteString("  Profilo professionale: nessuna descrizione fornita.\n")
		}
	}
}
