package salary

import "github.com/fr4nk3nst1ner/salarystats/internal/models"

// CountWithSalary returns how many salaries are known
func CountWithSalary(salaries []models.Salary) int {
	count := 0
	for _, s := range salaries {
		if s.Known {
			count++
		}
	}
	return count
}

// Average returns the truncated mean of the known salaries, or NoSalary if none are known
func Average(salaries []models.Salary) models.Salary {
	var sum int64
	count := 0
	for _, s := range salaries {
		if !s.Known {
			continue
		}
		sum += int64(s.Amount)
		count++
	}
	if count == 0 {
		return models.NoSalary
	}
	return models.SalaryOf(int(sum / int64(count)))
}
