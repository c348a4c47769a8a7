// Package stats runs the fetch, extract and aggregate cycle for every language
package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/fr4nk3nst1ner/salarystats/internal/logger"
	"github.com/fr4nk3nst1ner/salarystats/internal/models"
	"github.com/fr4nk3nst1ner/salarystats/internal/provider"
	"github.com/fr4nk3nst1ner/salarystats/internal/salary"
)

const progressTemplate = `{{ string . "prefix" }} {{ counters . }} {{ bar . }} {{ string . "language" }}`

type options struct {
	progress io.Writer
	log      logger.Logger
}

// Option customises Collect
type Option func(*options)

// WithProgress draws a progress bar over the languages on w
func WithProgress(w io.Writer) Option {
	return func(o *options) { o.progress = w }
}

// WithLogger logs every computed statistic at debug level
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// Collect builds the statistics table of one provider. Languages are processed
// one after another in the given order; the first error aborts the run.
func Collect[L any](ctx context.Context, p provider.Provider[L], languages []string, opts ...Option) (*models.StatisticsTable, error) {
	o := options{log: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With(logger.String("provider", p.Name()))

	var bar *pb.ProgressBar
	if o.progress != nil {
		bar = pb.ProgressBarTemplate(progressTemplate).New(len(languages))
		bar.SetWriter(o.progress)
		bar.Set("prefix", p.Title())
		bar.Start()
		defer bar.Finish()
	}

	table := models.NewStatisticsTable(p.Title())
	for _, lang := range languages {
		if bar != nil {
			bar.Set("language", lang)
		}

		stat, err := CollectLanguage(ctx, p, lang)
		if err != nil {
			return nil, err
		}
		table.Add(stat)

		log.Debug("language processed",
			logger.String("language", lang),
			logger.Int("found", stat.VacanciesFound),
			logger.Int("processed", stat.VacanciesProcessed),
			logger.Bool("has_average", stat.AverageSalary.Known),
		)
		if bar != nil {
			bar.Increment()
		}
	}
	return table, nil
}

// CollectLanguage computes the statistic of a single language. The found count
// comes from the provider's Counter when it has one, otherwise from the number
// of fetched listings.
func CollectLanguage[L any](ctx context.Context, p provider.Provider[L], language string) (models.LanguageStatistic, error) {
	listings, err := p.Fetch(ctx, language)
	if err != nil {
		return models.LanguageStatistic{}, fmt.Errorf("fetch %s vacancies: %w", language, err)
	}

	found := len(listings)
	if counter, ok := p.(provider.Counter); ok {
		found, err = counter.Count(ctx, language)
		if err != nil {
			return models.LanguageStatistic{}, fmt.Errorf("count %s vacancies: %w", language, err)
		}
	}

	salaries := make([]models.Salary, 0, len(listings))
	for _, listing := range listings {
		salaries = append(salaries, p.ExtractSalary(listing))
	}

	return models.LanguageStatistic{
		Language:           language,
		VacanciesFound:     found,
		VacanciesProcessed: salary.CountWithSalary(salaries),
		AverageSalary:      salary.Average(salaries),
	}, nil
}
