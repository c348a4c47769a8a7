package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fr4nk3nst1ner/salarystats/internal/logger"
)

const (
	defaultTimeout = 30 * time.Second
	// Bodies longer than this are cut from StatusError messages
	maxErrorBody = 512
)

// Options configures a provider HTTP client
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	ProxyURL  string
	UserAgent string
	Headers   map[string]string
	Logger    logger.Logger
}

// StatusError reports a response outside the 2xx range
type StatusError struct {
	Provider   string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: %s returned %d %s", e.Provider, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// New creates a resty client for one provider. Every response is logged at
// debug level with its full URL.
func New(opts Options) *resty.Client {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	c := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetTLSClientConfig(&tls.Config{MinVersion: tls.VersionTLS12}).
		SetHeader("Accept", "application/json")

	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	for k, v := range opts.Headers {
		c.SetHeader(k, v)
	}
	if opts.ProxyURL != "" {
		c.SetProxy(opts.ProxyURL)
	}

	log := opts.Logger
	// the request URL is only fully resolved once a response exists
	c.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		log.Debug("http response",
			logger.String("method", res.Request.Method),
			logger.String("url", res.Request.URL),
			logger.Int("status", res.StatusCode()),
			logger.Duration("elapsed", res.Time()),
		)
		return nil
	})
	return c
}

// GetJSON issues a GET request and returns the raw body of a 2xx response.
// Any other status becomes a *StatusError.
func GetJSON(ctx context.Context, c *resty.Client, provider, path string, params map[string]string) ([]byte, error) {
	res, err := c.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("%s: request %s: %w", provider, path, err)
	}
	if !res.IsSuccess() {
		body := string(res.Body())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody] + "..."
		}
		return nil, &StatusError{
			Provider:   provider,
			URL:        res.Request.URL,
			StatusCode: res.StatusCode(),
			Body:       body,
		}
	}
	return res.Body(), nil
}
