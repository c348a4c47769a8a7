package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsTableKeepsOrder(t *testing.T) {
	table := NewStatisticsTable("SuperJob Moscow")
	for _, lang := range []string{"PHP", "C", "Kotlin"} {
		table.Add(LanguageStatistic{Language: lang})
	}

	rows := table.Rows()
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"PHP", "C", "Kotlin"}, []string{rows[0].Language, rows[1].Language, rows[2].Language})
}

func TestStatisticsTableReplacesInPlace(t *testing.T) {
	table := NewStatisticsTable("t")
	table.Add(LanguageStatistic{Language: "Go", VacanciesFound: 1})
	table.Add(LanguageStatistic{Language: "Rust", VacanciesFound: 2})
	table.Add(LanguageStatistic{Language: "Go", VacanciesFound: 10})

	assert.Equal(t, 2, table.Len())
	stat, ok := table.Get("Go")
	assert.True(t, ok)
	assert.Equal(t, 10, stat.VacanciesFound)
	assert.Equal(t, "Go", table.Rows()[0].Language)

	_, ok = table.Get("Cobol")
	assert.False(t, ok)
}

func TestRowsIsACopy(t *testing.T) {
	table := NewStatisticsTable("t")
	table.Add(LanguageStatistic{Language: "Go"})

	rows := table.Rows()
	rows[0].Language = "changed"
	assert.Equal(t, "Go", table.Rows()[0].Language)
}

func TestZeroValueTable(t *testing.T) {
	var table StatisticsTable
	table.Add(LanguageStatistic{Language: "Go"})
	assert.Equal(t, 1, table.Len())
}

func TestSalary(t *testing.T) {
	assert.False(t, NoSalary.Known)
	assert.Equal(t, Salary{Amount: 0, Known: true}, SalaryOf(0))
}
