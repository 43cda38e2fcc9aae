// Package timetracking fetches per-person hour totals from the time
// tracking service's report API.
package timetracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bva/billabot/internal/domain/model"
	"github.com/bva/billabot/internal/domain/target"
	"github.com/bva/billabot/pkg/logger"
	"github.com/bva/billabot/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout    = 5 * time.Second
	defaultMaxRetries = 3
	reportPath        = "/api/report"
	dateLayout        = "20060102"
	upstreamName      = "timetracking"
)

// reportResponse mirrors the report API's response body.
type reportResponse struct {
	Totals []model.Total `json:"totals"`
}

// Client queries the report API for the current ISO week's totals.
// The request window runs from the start of the ISO week to now, and
// the department value passes through as an opaque filter ("All"
// requests every department).
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries uint64
	now        func() time.Time
	logger     logger.Logger
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		now:        time.Now,
		logger:     logger.Get().Named(upstreamName),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Totals fetches this week's totals scoped to department. Transport
// failures and 5xx replies retry with exponential backoff up to the
// configured bound and surface as ErrNetwork; a malformed body is not
// retried and surfaces as ErrParse.
func (c *Client) Totals(ctx context.Context, department string) ([]model.Total, error) {
	now := c.now()
	query := url.Values{}
	query.Set("from", target.StartOfISOWeek(now).Format(dateLayout))
	query.Set("to", now.Format(dateLayout))
	query.Set("department", department)
	reqURL := c.baseURL + reportPath + "?" + query.Encode()

	start := time.Now()
	defer func() {
		metrics.RecordUpstreamLatency(upstreamName, float64(time.Since(start).Milliseconds()))
	}()

	var payload reportResponse
	fetch := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %w", ErrNetwork, err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode))
		}

		payload = reportResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %w", ErrParse, err))
		}
		if payload.Totals == nil {
			return backoff.Permanent(fmt.Errorf("%w: missing totals", ErrParse))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(fetch, policy); err != nil {
		metrics.RecordUpstreamError(upstreamName, errorKind(err))
		c.logger.Error(ctx, "report fetch failed",
			logger.String("department", department),
			logger.Error(err),
		)
		return nil, err
	}

	c.logger.Debug(ctx, "fetched weekly totals",
		logger.String("department", department),
		logger.Int("totals", len(payload.Totals)),
	)
	return payload.Totals, nil
}

func errorKind(err error) string {
	if errors.Is(err, ErrParse) {
		return "parse"
	}
	return "network"
}
