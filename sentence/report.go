/*
report.go - Plain-text memorandum for a sentence calculation

Renders the structured Result into the pt-BR memorandum attached to the
case file. Dates dd/mm/yyyy; the engine result itself stays locale-free.
*/
package sentence

import (
	"fmt"
	"strings"

	"github.com/advocato/penal-engine/legaldate"
)

var regimeLabels = map[Regime]string{
	RegimeClosed:   "fechado",
	RegimeSemiOpen: "semiaberto",
	RegimeOpen:     "aberto",
}

var custodyLabels = map[CustodyState]string{
	InCustody: "preso",
	AtLiberty: "em liberdade",
}

// Memorandum renders the calculation as the memorandum text.
func Memorandum(s Sentence, r Result) string {
	var b strings.Builder

	b.WriteString("CÁLCULO DE EXECUÇÃO PENAL\n")
	b.WriteString("=========================\n\n")

	if s.Case.CaseNumber != "" {
		fmt.Fprintf(&b, "Processo: %s\n", s.Case.CaseNumber)
	}
	if s.Case.Court != "" {
		fmt.Fprintf(&b, "Juízo: %s\n", s.Case.Court)
	}
	if s.Case.FinalJudgment != nil {
		fmt.Fprintf(&b, "Trânsito em julgado: %s\n", s.Case.FinalJudgment.BR())
	}

	fmt.Fprintf(&b, "Data-base do cálculo: %s\n\n", r.AsOf.BR())

	b.WriteString("Delitos:\n")
	for i, off := range s.Offenses {
		desc := off.Description
		if desc == "" {
			desc = "delito sem descrição"
		}
		fmt.Fprintf(&b, "  %d. %s", i+1, desc)
		if off.Article != "" {
			fmt.Fprintf(&b, " (%s)", off.Article)
		}
		fmt.Fprintf(&b, " — pena %s\n", off.Penalty)
	}

	fmt.Fprintf(&b, "\nPena total: %d dias\n", r.TotalDays)
	fmt.Fprintf(&b, "Regime inicial: %s\n", regimeLabels[r.Regime])
	fmt.Fprintf(&b, "Fração de progressão: %s\n", r.ProgressionFraction)
	fmt.Fprintf(&b, "Fração de livramento: %s\n\n", r.ReleaseFraction)

	fmt.Fprintf(&b, "Dias cumpridos até %s: %d\n", r.AsOf.BR(), r.DaysServed)
	fmt.Fprintf(&b, "Remição acumulada: %d dias\n", r.RemissionDays)
	fmt.Fprintf(&b, "Situação: %s\n\n", custodyLabels[r.Custody])

	writeDate := func(label string, d *legaldate.Date) {
		if d == nil {
			fmt.Fprintf(&b, "%s: não atingida\n", label)
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, d.BR())
	}
	writeDate("Progressão de regime", r.ProgressionDate)
	writeDate("Livramento condicional", r.ReleaseDate)
	fmt.Fprintf(&b, "Término da pena: %s\n", r.TerminationDate.BR())
	if r.Projected {
		b.WriteString("(datas futuras projetadas considerando cumprimento contínuo)\n")
	}

	fmt.Fprintf(&b, "\nDias restantes para progressão: %d\n", r.RemainingToProgression)
	fmt.Fprintf(&b, "Dias restantes para término: %d\n", r.RemainingToTermination)

	if s.Notes != "" {
		fmt.Fprintf(&b, "\nObservações: %s\n", s.Notes)
	}

	return b.String()
}
