// Package superjob searches vacancies through the api.superjob.ru REST API
package superjob

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

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
	providerName  = "superjob"
	vacanciesPath = "/2.0/vacancies/"
	tokenHeader   = "X-Api-App-Id"
	currencyRUB   = "rub"
)

// Vacancy is one object of a search page. Payments are 0 when not published.
type Vacancy struct {
	ID          int     `json:"id"`
	Profession  string  `json:"profession"`
	FirmName    string  `json:"firm_name"`
	Link        string  `json:"link"`
	PaymentFrom float64 `json:"payment_from"`
	PaymentTo   float64 `json:"payment_to"`
	Currency    string  `json:"currency"`
}

type searchPage struct {
	Objects []Vacancy `json:"objects"`
	More    bool      `json:"more"`
	Total   int       `json:"total"`
}

// Client implements provider.Provider and provider.Counter for superjob.ru
type Client struct {
	cfg  config.SuperJobConfig
	http *resty.Client
	log  logger.Logger
}

var (
	_ provider.Provider[Vacancy] = (*Client)(nil)
	_ provider.Counter           = (*Client)(nil)
)

// New creates a superjob.ru client authenticated with cfg.Token
func New(cfg config.SuperJobConfig, httpCfg config.HTTPConfig, log logger.Logger) *Client {
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
			Headers:   map[string]string{tokenHeader: cfg.Token},
			Logger:    log,
		}),
		log: log,
	}
}

func (c *Client) Name() string  { return providerName }
func (c *Client) Title() string { return c.cfg.Title }

func (c *Client) params(language string) map[string]string {
	return map[string]string{
		"town":       c.cfg.Town,
		"catalogues": c.cfg.Catalogue,
		"keyword":    language,
		"period":     strconv.Itoa(c.cfg.PeriodDays),
		"count":      strconv.Itoa(c.cfg.PageSize),
	}
}

// Count returns the total superjob.ru reports for the language
func (c *Client) Count(ctx context.Context, language string) (int, error) {
	body, err := client.GetJSON(ctx, c.http, providerName, vacanciesPath, c.params(language))
	if err != nil {
		return 0, err
	}
	total := gjson.GetBytes(body, "total")
	if !total.Exists() {
		return 0, fmt.Errorf("%s: count %s: no total field: %w", providerName, language, provider.ErrMalformedResponse)
	}
	return int(total.Int()), nil
}

// Fetch walks the search pages from 0 while the server says there are more
func (c *Client) Fetch(ctx context.Context, language string) ([]Vacancy, error) {
	var vacancies []Vacancy
	params := c.params(language)

	for page, more := 0, true; more; page++ {
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

		vacancies = append(vacancies, result.Objects...)
		more = result.More
		c.log.Debug("fetched page",
			logger.String("language", language),
			logger.Int("page", page),
			logger.Bool("more", more),
			logger.Int("items", len(result.Objects)),
		)
	}
	return vacancies, nil
}

func decodePage(body []byte) (*searchPage, error) {
	fields := gjson.GetManyBytes(body, "objects", "more")
	if !fields[0].IsArray() {
		return nil, fmt.Errorf("no objects array: %w", provider.ErrMalformedResponse)
	}
	if fields[1].Type != gjson.True && fields[1].Type != gjson.False {
		return nil, fmt.Errorf("no more flag: %w", provider.ErrMalformedResponse)
	}

	var page searchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}

func (c *Client) ExtractSalary(v Vacancy) models.Salary {
	return ExtractSalary(v)
}

// ExtractSalary keeps rouble salaries with at least one published bound
func ExtractSalary(v Vacancy) models.Salary {
	if v.Currency != currencyRUB {
		return models.NoSalary
	}
	if v.PaymentFrom == 0 && v.PaymentTo == 0 {
		return models.NoSalary
	}
	return salary.Predict(bound(v.PaymentFrom), bound(v.PaymentTo))
}

func bound(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
