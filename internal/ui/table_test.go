package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarystats/internal/models"
)

func sampleTable() *models.StatisticsTable {
	table := models.NewStatisticsTable("HeadHunter Moscow")
	table.Add(models.LanguageStatistic{Language: "Python", VacanciesFound: 2413, VacanciesProcessed: 612, AverageSalary: models.SalaryOf(215000)})
	table.Add(models.LanguageStatistic{Language: "C#", VacanciesFound: 8, VacanciesProcessed: 0, AverageSalary: models.NoSalary})
	table.Add(models.LanguageStatistic{Language: "Go", VacanciesFound: 450, VacanciesProcessed: 98, AverageSalary: models.SalaryOf(260500)})
	return table
}

func TestTableData(t *testing.T) {
	PlainTables()

	data := TableData(sampleTable())
	require.Len(t, data, 4)
	assert.Equal(t, Headers[:], data[0])
	assert.Equal(t, []string{"Python", "2,413", "612", "215,000"}, data[1])
	assert.Equal(t, []string{"C#", "8", "0", NoData}, data[2])
	assert.Equal(t, "Go", data[3][0], "rows keep insertion order")
}

func TestRenderTable(t *testing.T) {
	PlainTables()

	out, err := RenderTable(sampleTable())
	require.NoError(t, err)

	assert.Contains(t, out, "HeadHunter Moscow")
	for _, header := range Headers {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "260,500")

	python := strings.Index(out, "Python")
	csharp := strings.Index(out, "C#")
	golang := strings.Index(out, "Go ")
	assert.True(t, python < csharp && csharp < golang, "rows must follow the language order")
}

func TestRenderEmptyTable(t *testing.T) {
	PlainTables()

	out, err := RenderTable(models.NewStatisticsTable("SuperJob Moscow"))
	require.NoError(t, err)
	assert.Contains(t, out, "SuperJob Moscow")
	assert.Contains(t, out, Headers[0])
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, NoData, FormatSalary(models.NoSalary))
	assert.Equal(t, "1,250,000", FormatSalary(models.SalaryOf(1250000)))
	assert.Equal(t, "999", FormatSalary(models.SalaryOf(999)))
}

func TestPrintBanner(t *testing.T) {
	PlainTables()

	var buf bytes.Buffer
	PrintBanner(&buf, true)
	assert.Empty(t, buf.String())

	PrintBanner(&buf, false)
	assert.NotEmpty(t, strings.TrimSpace(buf.String()))
}

func TestPrintBannerStyled(t *testing.T) {
	pterm.EnableStyling()
	t.Cleanup(PlainTables)

	var buf bytes.Buffer
	PrintBanner(&buf, false)
	out := buf.String()
	assert.NotContains(t, out, "\x1b\x1b", "escape sequences must not be split")

	plain, err := pterm.DefaultBigText.WithLetters(putils.LettersFromString(bannerWord)).Srender()
	require.NoError(t, err)
	assert.Equal(t, pterm.RemoveColorFromString(plain)+"\n", pterm.RemoveColorFromString(out))
}
