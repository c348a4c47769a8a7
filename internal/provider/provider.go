// Package provider defines the capability every vacancy search service exposes
package provider

import (
	"context"
	"errors"

	"github.com/fr4nk3nst1ner/salarystats/internal/models"
)

// ErrMalformedResponse is returned when a response lacks a field the pagination depends on
var ErrMalformedResponse = errors.New("malformed response")

// Provider searches one vacancy service. L is the provider's raw listing type.
type Provider[L any] interface {
	// Name identifies the provider in logs and errors
	Name() string
	// Title is printed above the provider's statistics table
	Title() string
	// Fetch returns every listing matching the language, in page order
	Fetch(ctx context.Context, language string) ([]L, error)
	// ExtractSalary maps one listing to a normalized salary. It must be pure.
	ExtractSalary(listing L) models.Salary
}

// Counter is implemented by providers that report the total number of matching
// vacancies separately from the paginated listings
type Counter interface {
	Count(ctx context.Context, language string) (int, error)
}
