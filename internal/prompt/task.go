package prompt

import "strings"

// TaskSummary builds the prompt asking for a short summary of one task.
func TaskSummary(in TaskInput) string {
	var b strings.Builder
	b.WriteString("Sei un project manager senior. In base alla descrizione attuale della task e ai documenti allegati, " +
		"scrivi una DESCRIZIONE SOMMARIA e generale della task (non un verbale). " +
		"La descrizione deve chiarire obiettivo, contesto, criteri di accettazione, dipendenze e rischi. " +
		"Tono chiaro e sintetico (5-8 frasi).\n\n" +
		"RESTITUISCI SOLO JSON VALIDO, senza backticks e senza testo extra, con struttura ESATTA:\n" +
		"{\n" +
		"  \"description\": \"testo descrittivo della task\"\n" +
		"}\n\n")
	b.WriteString(plainTextRule)
	b.WriteString("\n")

	if len(in.Assignees) > 0 {
		b.WriteString("Profilo dell'assegnatario (adatta tono, livello di dettaglio e focus tecnico a queste competenze):\n")
		writeProfiles(&b, in.Assignees)
		b.WriteString("\n")
	} else {
		b.WriteString("Non è disponibile un profilo dell'assegnatario; " +
			"fornisci indicazioni comprensibili anche a un team multidisciplinare.\n\n")
	}

	b.WriteString("Descrizione attuale task:\n")
	b.WriteString(in.Description)
	b.WriteString("\n\nDocumenti:\n")
	writeDocuments(&b, "Documento task", in.Documents)
	return b.String()
}

// TaskChecklist builds the prompt asking for ordered operational steps.
func TaskChecklist(in TaskInput) string {
	var b strings.Builder
	b.WriteString("Agisci come un team lead. Genera una lista di passi operativi " +
		"(brevi, azionabili, in ordine logico) per completare la task. " +
		"Restituisci SOLO JSON valido con struttura esatta: {\"items\": [\"step 1\", \"step 2\"]}. Nessun testo extra.\n")
	b.WriteString(plainTextRule)
	b.WriteString("\n")

	if len(in.Assignees) > 0 {
		b.WriteString("Adatta il livello di dettaglio e l'ordine delle azioni alle competenze dell'assegnatario:\n")
		writeProfiles(&b, in.Assignees)
		b.WriteString("\n")
	} else {
		b.WriteString("Non è disponibile un profilo dell'assegnatario; " +
			"proponi passi chiari e autoconclusivi adatti a un team eterogeneo.\n\n")
	}

	b.WriteString("Descrizione task:\n")
	b.WriteString(in.Description)
	b.WriteString("\n\nDocumenti:\n")
	writeDocuments(&b, "Documento task", in.Documents)
	return b.String()
}
