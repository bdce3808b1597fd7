package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Reminder is appended to descriptions that come back too thin.
const Reminder = "Nota: arricchisci i prossimi resoconti con maggiori dettagli narrativi (minimo 5 righe)."

const minDescriptionLines = 5

// Keys with a dedicated section, in render order.
var describedKeys = []string{
	"nome_progetto",
	"obiettivi_prodotto",
	"framework",
	"fasi_milestone",
	"struttura_scrum",
	"dipendenze_interne_esterne",
	"rischi_tecnici_operativi",
}

var roleLabels = map[string]string{
	"product_owner":    "Product Owner",
	"scrum_master":     "Scrum Master",
	"team_di_sviluppo": "Team di sviluppo",
}

// keyLabel turns "data_di_consegna" into "Data Di Consegna".
func keyLabel(key string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}

// FormatDescription renders an AI description as plain text. Strings are
// trimmed, lists become "- " bullets and objects are laid out in fixed
// sections followed by any other keys in key order. An object rendering
// to fewer than five content lines gets the Reminder appended.
func FormatDescription(v any) string {
	if !truthy(v) {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		return formatList(t)
	case map[string]any:
		return formatObject(t)
	default:
		return scalar(t)
	}
}

func formatList(items []any) string {
	var lines []string
	for _, item := range items {
		text := FormatDescription(item)
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			if strings.HasPrefix(line, "-") {
				lines = append(lines, line)
			} else {
				lines = append(lines, "- "+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func formatObject(desc map[string]any) string {
	var parts []string

	if v := desc["nome_progetto"]; truthy(v) {
		parts = append(parts, "Nome progetto: "+scalar(v))
	}
	if v := desc["obiettivi_prodotto"]; truthy(v) {
		parts = append(parts, "Obiettivi del prodotto:\n  "+scalar(v))
	}
	if v := desc["framework"]; truthy(v) {
		parts = append(parts, "Framework di lavoro: "+scalar(v))
	}
	if s := formatMilestones(desc["fasi_milestone"]); s != "" {
		parts = append(parts, s)
	}
	if s := formatScrum(desc["struttura_scrum"]); s != "" {
		parts = append(parts, s)
	}
	if s := formatDependencies(desc["dipendenze_interne_esterne"]); s != "" {
		parts = append(parts, s)
	}
	if risks := listOf(desc["rischi_tecnici_operativi"]); len(risks) > 0 {
		lines := []string{"Rischi principali:"}
		for _, r := range risks {
			if truthy(r) {
				lines = append(lines, "- "+scalar(r))
			}
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	handled := make(map[string]bool, len(describedKeys))
	for _, k := range describedKeys {
		handled[k] = true
	}
	var rest []string
	for k := range desc {
		if !handled[k] && truthy(desc[k]) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		if text := FormatDescription(desc[k]); text != "" {
			parts = append(parts, keyLabel(k)+":\n"+text)
		}
	}

	var trimmed []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	formatted := strings.Join(trimmed, "\n\n")
	if formatted == "" {
		return ""
	}

	content := 0
	for _, line := range strings.Split(formatted, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "Nota:") {
			content++
		}
	}
	if content < minDescriptionLines {
		formatted += "\n\n" + Reminder
	}
	return formatted
}

func formatMilestones(v any) string {
	items := listOf(v)
	if len(items) == 0 {
		return ""
	}
	lines := []string{"Fasi e milestone principali:"}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok || !truthy(m["fase"]) {
			continue
		}
		label := "- " + scalar(m["fase"])
		if truthy(m["data_target"]) {
			label += " (target: " + scalar(m["data_target"]) + ")"
		}
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}

func formatScrum(v any) string {
	scrum, ok := v.(map[string]any)
	if !ok || len(scrum) == 0 {
		return ""
	}
	lines := []string{"Struttura Scrum:"}

	if roles, ok := scrum["ruoli"].(map[string]any); ok && len(roles) > 0 {
		lines = append(lines, "  Ruoli:")
		for _, k := range sortedKeys(roles) {
			if !truthy(roles[k]) {
				continue
			}
			label, known := roleLabels[k]
			if !known {
				label = keyLabel(k)
			}
			lines = append(lines, "    - "+label+": "+inline(roles[k]))
		}
	}
	if backlog, ok := scrum["backlog_e_priorita"].(map[string]any); ok && len(backlog) > 0 {
		lines = append(lines, "  Backlog e priorità:")
		for _, k := range sortedKeys(backlog) {
			if truthy(backlog[k]) {
				lines = append(lines, "    - "+inline(backlog[k]))
			}
		}
	}
	lines = appendBullets(lines, "  Obiettivi di sprint:", listOf(scrum["obiettivi_sprint"]))
	lines = appendBullets(lines, "  Cerimonie chiave:", listOf(scrum["cerimonie_chiave"]))
	if dod := scrum["definition_of_done"]; truthy(dod) {
		lines = append(lines, "  Definition of Done: "+scalar(dod))
	}
	return strings.Join(lines, "\n")
}

func formatDependencies(v any) string {
	deps, ok := v.(map[string]any)
	if !ok || len(deps) == 0 {
		return ""
	}
	lines := []string{"Dipendenze e integrazioni:"}
	lines = appendBullets(lines, "  Dipendenze critiche:", listOf(deps["dipendenze_critiche"]))
	lines = appendBullets(lines, "  Integrazioni esterne:", listOf(deps["integrazioni_esterne"]))
	return strings.Join(lines, "\n")
}

func appendBullets(lines []string, header string, items []any) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, header)
	for _, item := range items {
		if truthy(item) {
			lines = append(lines, "    - "+scalar(item))
		}
	}
	return lines
}

// inline renders a value on one line; lists are comma-separated.
func inline(v any) string {
	items, ok := v.([]any)
	if !ok {
		return scalar(v)
	}
	var out []string
	for _, item := range items {
		if truthy(item) {
			out = append(out, scalar(item))
		}
	}
	return strings.Join(out, ", ")
}

// listOf returns v as a list; a lone scalar becomes a one-item list.
func listOf(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		if truthy(t) {
			return []any{t}
		}
		return nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
