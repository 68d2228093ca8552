/*
report.go - pt-BR demonstrativo de débito

Renders the arrears calculation as the plain-text statement attached to
the enforcement petition. Currency R$ 1.234,56 (dot thousands, comma
decimals), dates dd/mm/yyyy.
*/
package alimony

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as Brazilian currency.
func FormatBRL(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2) // "-1234.56"
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, grouped.String(), decPart)
}

// Report renders the demonstrativo text for a computed result.
func Report(o Obligation, r Result) string {
	var b strings.Builder

	b.WriteString("DEMONSTRATIVO DE DÉBITO ALIMENTAR\n")
	b.WriteString("=================================\n\n")

	fmt.Fprintf(&b, "Obrigação: %s mensais, vencimento todo dia %d\n", FormatBRL(o.MonthlyAmount), o.DueDay)
	fmt.Fprintf(&b, "Início da obrigação: %s\n", o.Start.BR())
	if o.End != nil {
		fmt.Fprintf(&b, "Término da obrigação: %s\n", o.End.BR())
	}
	fmt.Fprintf(&b, "Data-base do cálculo: %s\n\n", r.AsOf.BR())

	b.WriteString("Parcelas:\n")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "  Vencimento %s — devido %s, pago %s",
			line.Due.Date.BR(), FormatBRL(line.Due.Amount), FormatBRL(line.Paid))
		if !line.Shortfall.IsPositive() {
			b.WriteString(" — quitada\n")
			continue
		}
		fmt.Fprintf(&b, ", em aberto %s\n", FormatBRL(line.Shortfall))
		fmt.Fprintf(&b, "    multa (2%%): %s; juros (1%% a.m., %s): %s; subtotal %s\n",
			FormatBRL(line.Penalty), monthsLabel(line.MonthsLate),
			FormatBRL(line.Interest), FormatBRL(line.Total))
	}

	b.WriteString("\nResumo:\n")
	fmt.Fprintf(&b, "  Total devido no período: %s\n", FormatBRL(r.TotalOwed))
	fmt.Fprintf(&b, "  Total pago: %s\n", FormatBRL(r.TotalPaid))
	fmt.Fprintf(&b, "  Principal em aberto: %s\n", FormatBRL(r.Outstanding))
	fmt.Fprintf(&b, "  Multa: %s\n", FormatBRL(r.TotalPenalty))
	fmt.Fprintf(&b, "  Juros: %s\n", FormatBRL(r.TotalInterest))
	fmt.Fprintf(&b, "  TOTAL DO DÉBITO: %s\n", FormatBRL(r.TotalDebt))

	if r.AdvanceCredit.IsPositive() {
		fmt.Fprintf(&b, "\nCrédito antecipado do alimentante: %s\n", FormatBRL(r.AdvanceCredit))
	}

	if r.NextDueDate != nil {
		fmt.Fprintf(&b, "\nPróximo vencimento: %s — valor projetado %s\n",
			r.NextDueDate.BR(), FormatBRL(r.NextDueAmount))
	}

	return b.String()
}

func monthsLabel(n int) string {
	if n == 1 {
		return "1 mês"
	}
	return fmt.Sprintf("%d meses", n)
}
