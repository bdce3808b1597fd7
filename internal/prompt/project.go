package prompt

import (
	"fmt"
	"strings"
)

var analysisFocus = map[Methodology]string{
	PRINCE2: "Framework: PRINCE2. Evidenzia business case, prodotti e risultati, organizzazione, " +
		"piani per fasi, tolleranze, gestione di rischi e cambiamenti, lezioni apprese.\n\n",
	Scrum: "Framework: Agile-Scrum. Evidenzia ruoli (PO/SM/Team), backlog e priorità, " +
		"obiettivi di sprint, cerimonie chiave, Definition of Done, dipendenze e rischi.\n\n",
	Lean: "Framework: Lean. Evidenzia catena del valore, eliminazione degli sprechi (muda), " +
		"flusso, pull, kaizen, metriche di efficienza e rischi operativi.\n\n",
	Agile: "Framework: Agile. Evidenzia valore per l'utente, MVP, backlog tematico ed epic, " +
		"criteri di accettazione, roadmap iterativa e rischi.\n\n",
}

// ProjectAnalysis builds the prompt asking for a full project analysis:
// description, economic notes, criticalities and tags.
func ProjectAnalysis(in Input) string {
	var b strings.Builder
	b.WriteString("Sei un project manager senior. In base ai documenti forniti, " +
		"produci un'analisi completa del progetto.\n" +
		"Adatta il taglio al framework di project management selezionato.\n\n")
	b.WriteString(analysisFocus[in.Methodology])

	if text := strings.TrimSpace(in.Company.Text); text != "" {
		fmt.Fprintf(&b, "Informazioni sull'azienda '%s' coinvolta nel progetto "+
			"(estratte dal profilo allegato):\n%s\n\n", in.Company.Name, text)
	}

	b.WriteString("RESTITUISCI SOLO JSON VALIDO, senza backticks e senza testo extra, con struttura ESATTA:\n" +
		"{\n" +
		"  \"description\": \"analisi completa del progetto\",\n" +
		"  \"economic_notes\": \"note economiche, costi e benefici, budget, OPEX/CAPEX, rischi economici\",\n" +
		"  \"criticita\": \"criticità evidenti e rischi chiave\",\n" +
		"  \"tags\": [\"dominio/settore\", \"modulo applicativo\", \"tecnologia\", \"altro\"]\n" +
		"}\n\n" +
		"Se un'informazione non è esplicita, inferiscila in modo prudente o omettila.\n")
	b.WriteString(plainTextRule)
	b.WriteString("\n")

	writeDocuments(&b, "Documento", in.Documents)
	return b.String()
}
