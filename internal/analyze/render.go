package analyze

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NoResults is printed by Render when there is nothing to rank.
const NoResults = "no valid results"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	lossStyle   = cellStyle.Foreground(lipgloss.Color("1"))
	gainStyle   = cellStyle.Foreground(lipgloss.Color("2"))
)

// Render writes records as a table, or NoResults when records is empty.
func Render(w io.Writer, records []Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, NoResults)
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("File", "Profit %", "Win %", "Trades", "Min balance", "Max balance",
			"Best pair", "Worst pair", "From", "To").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1 && row < len(records) && records[row].ProfitTotal < 0:
				return lossStyle
			case col == 1:
				return gainStyle
			}
			return cellStyle
		})
	for _, r := range records {
		t.Row(
			r.File,
			formatFloat(r.ProfitTotal),
			formatFloat(r.WinRate),
			strconv.Itoa(r.Trades),
			formatFloat(r.MinBalance),
			formatFloat(r.MaxBalance),
			r.BestPair.String(),
			r.WorstPair.String(),
			r.PeriodStart.Format(TimeLayout),
			r.PeriodEnd.Format(TimeLayout),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
