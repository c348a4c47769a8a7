// Package headhunter searches vacancies through the api.hh.ru REST API
package headhunter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/fr4nk3nst1ner/salarystats/internal/client"
	"github.com/fr4nk3nst1ner/salarystats/internal/config"
	"github.com/fr4nk3nst1ner/salarystats/internal/logger"
	"github.com/fr4nk3nst1ner/salarystats/internal/models"
	"github.com/fr4nk3nst1ner/salarystats/internal/provider"
	"github.com/fr4nk3nst1ner/salarystats/internal/salary"
)

const (
	providerName  = "headhunter"
	vacanciesPath = "/vacancies"
	// hh.ru reports roubles with the legacy code
	currencyRUB = "RUR"
)

// Salary is the salary block of a vacancy. Bounds are null when not published.
type Salary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
	Gross    *bool    `json:"gross"`
}

// Vacancy is one item of a search page
type Vacancy struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	AlternateURL string  `json:"alternate_url"`
	Salary       *Salary `json:"salary"`
}

type searchPage struct {
	Items []Vacancy `json:"items"`
	Found int       `json:"found"`
	Pages int       `json:"pages"`
	Page  int       `json:"page"`
}

// Client implements provider.Provider and provider.Counter for hh.ru
type Client struct {
	cfg  config.HeadHunterConfig
	http *resty.Client
	log  logger.Logger
}

var (
	_ provider.Provider[Vacancy] = (*Client)(nil)
	_ provider.Counter           = (*Client)(nil)
)

// New creates a hh.ru client
func New(cfg config.HeadHunterConfig, httpCfg config.HTTPConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(logger.String("provider", providerName))
	return &Client{
		cfg: cfg,
		http: client.New(client.Options{
			BaseURL:   cfg.BaseURL,
			Timeout:   httpCfg.Timeout,
			ProxyURL:  httpCfg.Proxy,
			UserAgent: httpCfg.UserAgent,
			Logger:    log,
		}),
		log: log,
	}
}

func (c *Client) Name() string  { return providerName }
func (c *Client) Title() string { return c.cfg.Title }

// QueryText builds the free-text query for a language. Several templates are
// combined as alternatives with the hh.ru OR operator.
func (c *Client) QueryText(language string) string {
	terms := make([]string, 0, len(c.cfg.QueryTemplates))
	for _, tmpl := range c.cfg.QueryTemplates {
		terms = append(terms, fmt.Sprintf(tmpl, language))
	}
	return strings.Join(terms, " OR ")
}

func (c *Client) params(language string) map[string]string {
	params := map[string]string{
		"area":         c.cfg.Area,
		"text":         c.QueryText(language),
		"search_field": c.cfg.SearchField,
		"per_page":     strconv.Itoa(c.cfg.PageSize),
		"period":       strconv.Itoa(c.cfg.PeriodDays),
	}
	if c.cfg.ProfessionalRole != "" {
		params["professional_role"] = c.cfg.ProfessionalRole
	}
	return params
}

// Count returns the number of vacancies hh.ru reports for the language
func (c *Client) Count(ctx context.Context, language string) (int, error) {
	body, err := client.GetJSON(ctx, c.http, providerName, vacanciesPath, c.params(language))
	if err != nil {
		return 0, err
	}
	found := gjson.GetBytes(body, "found")
	if !found.Exists() {
		return 0, fmt.Errorf("%s: count %s: no found field: %w", providerName, language, provider.ErrMalformedResponse)
	}
	return int(found.Int()), nil
}

// Fetch walks the search pages from 0 until the page count reported by the
// server is reached
func (c *Client) Fetch(ctx context.Context, language string) ([]Vacancy, error) {
	var vacancies []Vacancy
	params := c.params(language)

	for page, pages := 0, 1; page < pages; page++ {
		if c.cfg.MaxPages > 0 && page >= c.cfg.MaxPages {
			c.log.Warn("page limit reached", logger.String("language", language), logger.Int("max_pages", c.cfg.MaxPages))
			break
		}

		params["page"] = strconv.Itoa(page)
		body, err := client.GetJSON(ctx, c.http, providerName, vacanciesPath, params)
		if err != nil {
			return nil, err
		}

		result, err := decodePage(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %s page %d: %w", providerName, language, page, err)
		}

		vacancies = append(vacancies, result.Items...)
		pages = result.Pages
		c.log.Debug("fetched page",
			logger.String("language", language),
			logger.Int("page", page),
			logger.Int("pages", pages),
			logger.Int("items", len(result.Items)),
		)
	}
	return vacancies, nil
}

func decodePage(body []byte) (*searchPage, error) {
	fields := gjson.GetManyBytes(body, "items", "pages")
	if !fields[0].IsArray() {
		return nil, fmt.Errorf("no items array: %w", provider.ErrMalformedResponse)
	}
	if !fields[1].Exists() {
		return nil, fmt.Errorf("no pages field: %w", provider.ErrMalformedResponse)
	}

	var page searchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}

// ExtractSalary keeps rouble salaries only. A zero bound counts as not published.
func (c *Client) ExtractSalary(v Vacancy) models.Salary {
	return ExtractSalary(v)
}

// ExtractSalary maps a vacancy to a salary without needing a Client
func ExtractSalary(v Vacancy) models.Salary {
	if v.Salary == nil || v.Salary.Currency != currencyRUB {
		return models.NoSalary
	}
	return salary.Predict(nonZero(v.Salary.From), nonZero(v.Salary.To))
}

func nonZero(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}
