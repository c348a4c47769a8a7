package models

// Salary is a single representative salary in roubles, or the absence of one
type Salary struct {
	Amount int  `json:"amount"`
	Known  bool `json:"known"`
}

// NoSalary is returned when a listing carries no usable salary data
var NoSalary = Salary{}

// SalaryOf wraps a known salary amount
func SalaryOf(amount int) Salary {
	return Salary{Amount: amount, Known: true}
}

// LanguageStatistic holds the vacancy statistics of one language on one provider.
// VacanciesProcessed is not guaranteed to be <= VacanciesFound: the found count is
// reported by the provider while the processed count comes from the iterated pages.
type LanguageStatistic struct {
	Language           string `json:"language"`
	VacanciesFound     int    `json:"vacancies_found"`
	VacanciesProcessed int    `json:"vacancies_processed"`
	AverageSalary      Salary `json:"average_salary"`
}

// StatisticsTable maps languages to their statistics, keeping insertion order
type StatisticsTable struct {
	Title string

	rows  []LanguageStatistic
	index map[string]int
}

// NewStatisticsTable creates an empty table with the given title
func NewStatisticsTable(title string) *StatisticsTable {
	return &StatisticsTable{
		Title: title,
		index: make(map[string]int),
	}
}

// Add appends a statistic, or replaces the existing row for the same language in place
func (t *StatisticsTable) Add(stat LanguageStatistic) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[stat.Language]; ok {
		t.rows[i] = stat
		return
	}
	t.index[stat.Language] = len(t.rows)
	t.rows = append(t.rows, stat)
}

// Get looks up the statistic of a language
func (t *StatisticsTable) Get(language string) (LanguageStatistic, bool) {
	i, ok := t.index[language]
	if !ok {
		return LanguageStatistic{}, false
	}
	return t.rows[i], true
}

// Rows returns a copy of the rows in insertion order
func (t *StatisticsTable) Rows() []LanguageStatistic {
	rows := make([]LanguageStatistic, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Len returns the number of languages in the table
func (t *StatisticsTable) Len() int {
	return len(t.rows)
}
