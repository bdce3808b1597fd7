package prompt

import "strings"

const taskObject = `{"title": "", "description": "", "keywords": ["", ""], "assignee": ""}`

var breakdownIntro = map[Methodology]string{
	PRINCE2: "Agisci come un project manager che utilizza PRINCE2.\n" +
		"Dato il contenuto delle riunioni, ritorna un JSON con una lista \"tasks\" che contenga le attività prioritarie.\n" +
		"Ogni attività deve includere titolo, descrizione, 1-3 parole chiave sull'ambito principale e il campo \"assignee\" " +
		"con il nome esatto del membro del team più adatto in base ai profili forniti.\n" +
		"Adatta la profondità della descrizione alla seniority e al dettaglio del profilo dell'assegnatario.\n\n" +
		"Formato:\n" +
		"{\n" +
		"  \"tasks\": [\n" +
		"    " + taskObject + "\n" +
		"  ]\n" +
		"}\n\n",
	Scrum: "Agisci come uno Scrum Master.\n" +
		"Dato il contenuto delle riunioni, ritorna un JSON con le task suddivise per sprint.\n" +
		"Ogni task deve avere titolo, descrizione, 1-3 parole chiave coerenti con la logica Scrum " +
		"(user story, attività tecniche, bugfix) e il campo \"assignee\" con il nome esatto del membro del team più adatto.\n" +
		"Adatta la profondità della descrizione alla seniority e ai dettagli del profilo dell'assegnatario.\n\n" +
		"Formato:\n" +
		"{\n" +
		"  \"sprints\": [\n" +
		"    {\n" +
		"      \"sprint\": 1,\n" +
		"      \"tasks\": [\n" +
		"        " + taskObject + "\n" +
		"      ]\n" +
		"    }\n" +
		"  ]\n" +
		"}\n\n",
	Lean: "Agisci come un project manager che utilizza Lean Project Management.\n" +
		"Dato il contenuto delle riunioni, ritorna un JSON con le attività suddivise per flusso di valore (value stream).\n" +
		"Le attività devono riflettere i principi lean (eliminazione degli sprechi, riduzione dei tempi di attesa, " +
		"ottimizzazione delle risorse), includere 1-3 parole chiave sull'argomento e indicare nel campo \"assignee\" " +
		"il membro del team più adeguato.\n" +
		"La profondità della descrizione deve adattarsi alla specializzazione del profilo assegnato.\n\n" +
		"Formato:\n" +
		"{\n" +
		"  \"value_streams\": [\n" +
		"    {\n" +
		"      \"stream\": \"Nome flusso di valore\",\n" +
		"      \"tasks\": [\n" +
		"        " + taskObject + "\n" +
		"      ]\n" +
		"    }\n" +
		"  ]\n" +
		"}\n\n",
	Agile: "Agisci come un project manager che utilizza Agile.\n" +
		"Dato il contenuto delle riunioni, ritorna un JSON con le attività suddivise per iterazioni.\n" +
		"Ogni iterazione rappresenta un ciclo di sviluppo incrementale e ogni task deve riportare 1-3 parole chiave " +
		"sull'argomento e il campo \"assignee\" con il nome del membro del team più idoneo.\n" +
		"Modula la profondità della descrizione in base al profilo del membro assegnato.\n\n" +
		"Formato:\n" +
		"{\n" +
		"  \"iterations\": [\n" +
		"    {\n" +
		"      \"iteration\": 1,\n" +
		"      \"tasks\": [\n" +
		"        " + taskObject + "\n" +
		"      ]\n" +
		"    }\n" +
		"  ]\n" +
		"}\n\n",
}

// NoTeamInstruction replaces the roster when no member is resolvable.
const NoTeamInstruction = "Non è stato fornito alcun profilo team; lascia vuoto il campo \"assignee\".\n\n"

// TaskBreakdown builds the prompt asking for a task plan in the JSON
// shape of the methodology.
func TaskBreakdown(in Input) string {
	var b strings.Builder
	b.WriteString(breakdownIntro[in.Methodology])
	b.WriteString("Per ogni task assegna il membro del team più idoneo utilizzando esclusivamente i nomi elencati. " +
		"Se nessun profilo è pertinente lascia l'assignee vuoto.\n")
	b.WriteString(plainTextRule)
	b.WriteString("Rispondi con JSON puro, senza testo prima o dopo.\n\n")

	if text := strings.TrimSpace(in.Company.Text); text != "" {
		b.WriteString("Profilo aziendale fornito per contestualizzare il progetto:\n")
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	if len(in.Team) == 0 {
		b.WriteString(NoTeamInstruction)
	} else {
		b.WriteString("Membri del team disponibili per l'assegnazione delle task:\n")
		writeProfiles(&b, in.Team)
		b.WriteString("Quando restituisci le attività, usa il campo \"assignee\" con il nome esatto del membro più adatto " +
			"tra quelli sopra indicati. Non inventare nomi o ruoli.\n" +
			"La profondità della descrizione deve riflettere quanto è dettagliato il profilo dell'assegnatario.\n\n")
	}

	writeDocuments(&b, "Documento", in.Documents)
	return b.String()
}
