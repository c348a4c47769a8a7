package superjob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/salarystats/internal/client"
	"github.com/fr4nk3nst1ner/salarystats/internal/config"
	"github.com/fr4nk3nst1ner/salarystats/internal/models"
	"github.com/fr4nk3nst1ner/salarystats/internal/provider"
)

type request struct {
	query url.Values
	token string
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]request) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []request
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.0/vacancies/", r.URL.Path)
		mu.Lock()
		requests = append(requests, request{query: r.URL.Query(), token: r.Header.Get("X-Api-App-Id")})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default().SuperJob
	cfg.BaseURL = srv.URL
	cfg.Token = "v3.r.test"
	return New(cfg, config.HTTPConfig{}, nil), &requests
}

var pages = []string{
	`{"total": 4, "more": true, "objects": [
		{"id": 1, "profession": "Python developer", "payment_from": 100000, "payment_to": 0, "currency": "rub"},
		{"id": 2, "profession": "Python engineer", "payment_from": 0, "payment_to": 0, "currency": "rub"}
	]}`,
	`{"total": 4, "more": true, "objects": [
		{"id": 3, "profession": "Python lead", "payment_from": 0, "payment_to": 250000, "currency": "rub"}
	]}`,
	`{"total": 4, "more": false, "objects": [
		{"id": 4, "profession": "Python remote", "payment_from": 3000, "payment_to": 5000, "currency": "usd"}
	]}`,
}

func TestFetchFollowsMore(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var page int
		fmt.Sscan(r.URL.Query().Get("page"), &page)
		fmt.Fprint(w, pages[page])
	})

	vacancies, err := c.Fetch(context.Background(), "Python")
	require.NoError(t, err)

	require.Len(t, vacancies, 4)
	for i, v := range vacancies {
		assert.Equal(t, i+1, v.ID)
	}

	require.Len(t, *requests, 3)
	for i, req := range *requests {
		assert.Equal(t, fmt.Sprint(i), req.query.Get("page"))
		assert.Equal(t, "v3.r.test", req.token)
		assert.Equal(t, "4", req.query.Get("town"))
		assert.Equal(t, "48", req.query.Get("catalogues"))
		assert.Equal(t, "Python", req.query.Get("keyword"))
		assert.Equal(t, "30", req.query.Get("period"))
		assert.Equal(t, "20", req.query.Get("count"))
	}
}

func TestFetchMaxPages(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pages[0])
	})
	c.cfg.MaxPages = 2

	vacancies, err := c.Fetch(context.Background(), "Go")
	require.NoError(t, err)
	assert.Len(t, vacancies, 4)
	assert.Len(t, *requests, 2)
}

func TestFetchUnauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": 403, "message": "Invalid app id"}}`)
	})

	_, err := c.Fetch(context.Background(), "Go")
	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "Invalid app id")
}

func TestFetchMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"no more":      `{"objects": []}`,
		"more is text": `{"objects": [], "more": "yes"}`,
		"no objects":   `{"more": false}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			})
			_, err := c.Fetch(context.Background(), "Go")
			assert.ErrorIs(t, err, provider.ErrMalformedResponse)
		})
	}
}

func TestCount(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total": 57, "more": true, "objects": []}`)
	})

	total, err := c.Count(context.Background(), "Kotlin")
	require.NoError(t, err)
	assert.Equal(t, 57, total)
	require.Len(t, *requests, 1)
	assert.False(t, (*requests)[0].query.Has("page"))
}

func TestExtractSalary(t *testing.T) {
	tests := []struct {
		name    string
		vacancy Vacancy
		want    models.Salary
	}{
		{"foreign currency", Vacancy{PaymentFrom: 1000, PaymentTo: 2000, Currency: "usd"}, models.NoSalary},
		{"both zero", Vacancy{Currency: "rub"}, models.NoSalary},
		{"range", Vacancy{PaymentFrom: 80000, PaymentTo: 120000, Currency: "rub"}, models.SalaryOf(100000)},
		{"from only", Vacancy{PaymentFrom: 100000, Currency: "rub"}, models.SalaryOf(120000)},
		{"to only", Vacancy{PaymentTo: 250000, Currency: "rub"}, models.SalaryOf(200000)},
	}

	c := &Client{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := c.ExtractSalary(tt.vacancy)
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, c.ExtractSalary(tt.vacancy))
		})
	}
}
