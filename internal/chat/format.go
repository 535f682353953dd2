package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/mech-ai/internal/models"
	"github.com/BruksfildServices01/mech-ai/internal/timezone"
)

const (
	msgNoSearchResults = "Nenhum serviço encontrado com os critérios fornecidos."
	msgNoActiveRecords = "Nenhum serviço ativo encontrado."
	na                 = "N/A"
)

// formatRecords applies the zero/one/many policy to a result set.
func formatRecords(header, empty string, records []models.ServiceRecord) string {
	switch len(records) {
	case 0:
		return empty
	case 1:
		return header + "\n" + formatDetail(&records[0])
	default:
		return formatChoices(records)
	}
}

func formatDetail(r *models.ServiceRecord) string {
	var b strings.Builder
	b.WriteString("--- Detalhes do Serviço ---\n")
	fmt.Fprintf(&b, "👤 Cliente: %s\n", ownerName(r))
	fmt.Fprintf(&b, "🚗 Carro: %s\n", carLine(r.Car))
	fmt.Fprintf(&b, "🛠️ Serviço: %s\n", r.Servico)
	fmt.Fprintf(&b, "📅 Data: %s\n", r.Date.Format(timezone.DateLayout))
	fmt.Fprintf(&b, "💰 Valor: %s\n", valor(r.Valor))
	fmt.Fprintf(&b, "📝 Observações: %s\n", orNA(r.Observations))
	b.WriteString("---------------------------")
	return b.String()
}

func formatChoices(records []models.ServiceRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔎 Encontrei %d serviços. Qual deles você procura?", len(records))
	for i := range records {
		r := &records[i]
		fmt.Fprintf(&b, "\n%d. %s | %s | %s | %s",
			i+1,
			ownerName(r),
			carName(r.Car),
			r.Servico,
			r.Date.Format(timezone.DateLayout),
		)
	}
	return b.String()
}

func ownerName(r *models.ServiceRecord) string {
	if r.Car == nil || r.Car.Client == nil {
		return na
	}
	return r.Car.Client.Name
}

func carName(c *models.Car) string {
	if c == nil {
		return na
	}
	return c.DisplayName()
}

func carLine(c *models.Car) string {
	if c == nil {
		return na
	}
	year := na
	if c.Year != nil {
		year = strconv.Itoa(*c.Year)
	}
	return fmt.Sprintf("%s (%s, %s)", c.DisplayName(), orNA(c.Color), year)
}

func valor(v *float64) string {
	if v == nil {
		return na
	}
	return fmt.Sprintf("R$ %.2f", *v)
}

func orNA(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return na
	}
	return *s
}
