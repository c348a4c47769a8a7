// Package ui renders the statistics tables and the terminal decorations around them
package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salarystats/internal/models"
)

// Headers holds the four column titles of a statistics table
var Headers = [4]string{
	"Язык программирования",
	"Вакансий найдено",
	"Вакансий обработано",
	"Средняя зарплата",
}

// NoData is shown in place of an unknown average salary
const NoData = "-"

// PlainTables turns off colours and styling, for piped output and tests
func PlainTables() {
	pterm.DisableStyling()
}

// TableData converts a statistics table into header plus one row per language
func TableData(table *models.StatisticsTable) pterm.TableData {
	data := pterm.TableData{Headers[:]}
	for _, stat := range table.Rows() {
		data = append(data, []string{
			stat.Language,
			humanize.Comma(int64(stat.VacanciesFound)),
			humanize.Comma(int64(stat.VacanciesProcessed)),
			ColorizeSalary(stat.AverageSalary),
		})
	}
	return data
}

// RenderTable draws the table inside a box titled with the table title
func RenderTable(table *models.StatisticsTable) (string, error) {
	body, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(TableData(table)).
		Srender()
	if err != nil {
		return "", fmt.Errorf("render %s table: %w", table.Title, err)
	}
	body = strings.TrimRight(body, "\n")
	return pterm.DefaultBox.WithTitle(table.Title).Sprint(body), nil
}

// FormatSalary groups the digits of a known salary, or returns NoData
func FormatSalary(s models.Salary) string {
	if !s.Known {
		return NoData
	}
	return humanize.Comma(int64(s.Amount))
}

// ColorizeSalary colours a salary by band
func ColorizeSalary(s models.Salary) string {
	formatted := FormatSalary(s)
	if !s.Known {
		return pterm.Gray(formatted)
	}

	switch {
	case s.Amount >= 300000:
		return pterm.Green(formatted)
	case s.Amount >= 200000:
		return pterm.LightGreen(formatted)
	case s.Amount >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
