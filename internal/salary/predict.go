// Package salary turns salary ranges into single figures and aggregates them
package salary

import "github.com/fr4nk3nst1ner/salarystats/internal/models"

const (
	// Applied when only the lower bound of a range is published
	fromOnlyFactor = 1.2
	// Applied when only the upper bound of a range is published
	toOnlyFactor = 0.8
)

// Predict converts a salary range into one representative figure.
// A nil or zero bound counts as missing. The result is truncated, not rounded,
// and a figure that truncates to zero is no salary at all.
func Predict(from, to *float64) models.Salary {
	hasFrom := from != nil && *from != 0
	hasTo := to != nil && *to != 0

	var amount int
	switch {
	case hasFrom && hasTo:
		amount = int((*from + *to) / 2)
	case hasFrom:
		amount = int(*from * fromOnlyFactor)
	case hasTo:
		amount = int(*to * toOnlyFactor)
	}
	if amount == 0 {
		return models.NoSalary
	}
	return models.SalaryOf(amount)
}
