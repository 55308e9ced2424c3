// Package salarydata fetches market salary figures for a job title and
// location from an Adzuna-style job-search API, reducing the result set to
// one averaged quote.
package salarydata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Sentinel errors for the upstream failure modes callers branch on.
var (
	ErrInvalidParams  = errors.New("invalid request parameters")
	ErrBadCredentials = errors.New("invalid API credentials")
	ErrRateLimited    = errors.New("too many requests")
	ErrNoData         = errors.New("no salary data found for this job and location")
)

// Quote is one averaged salary figure. Ephemeral; consumed once per turn.
type Quote struct {
	JobTitle      string `json:"job_title"`
	Location      string `json:"location"`
	AverageSalary int    `json:"average_salary"`
	Currency      string `json:"currency"`
}

const (
	defaultBaseURL = "https://api.adzuna.com/v1/api/jobs/us/search/1"
	cacheTTL       = 5 * time.Minute
	cacheSize      = 128
)

// Client calls the salary API. Results are cached per (title, location) for
// a short TTL to bound upstream call volume.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appKey     string
	cache      *expirable.LRU[string, Quote]
}

// NewClient reads credentials from ADZUNA_API_ID / ADZUNA_API_KEY.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL targets a custom endpoint; used by tests.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		appID:      os.Getenv("ADZUNA_API_ID"),
		appKey:     os.Getenv("ADZUNA_API_KEY"),
		cache:      expirable.NewLRU[string, Quote](cacheSize, nil, cacheTTL),
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
	Currency  string   `json:"currency"`
}

func cacheKey(jobTitle, location string) string {
	return strings.ToLower(jobTitle) + "|" + strings.ToLower(location)
}

// Fetch returns an averaged salary quote for (jobTitle, location).
func (c *Client) Fetch(ctx context.Context, jobTitle, location string) (*Quote, error) {
	if strings.TrimSpace(jobTitle) == "" || strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: job title and location are required", ErrInvalidParams)
	}

	key := cacheKey(jobTitle, location)
	if q, ok := c.cache.Get(key); ok {
		return &q, nil
	}

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", "10")
	params.Set("what", jobTitle)
	params.Set("where", location)
	params.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create salary request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("salary API call failed: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		// Fall through to decode below.
	case http.StatusBadRequest:
		return nil, ErrInvalidParams
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrBadCredentials
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("salary API request failed: status=%d body=%s", res.StatusCode, string(body))
	}

	var data searchResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode salary response: %w", err)
	}

	quote, err := reduce(jobTitle, location, data.Results)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, *quote)
	return quote, nil
}

// reduce averages the midpoint of each result carrying salary data.
func reduce(jobTitle, location string, results []searchResult) (*Quote, error) {
	var sum float64
	var n int
	currency := ""

	for _, r := range results {
		var mid float64
		switch {
		case r.SalaryMin != nil && r.SalaryMax != nil:
			mid = (*r.SalaryMin + *r.SalaryMax) / 2
		case r.SalaryMin != nil:
			mid = *r.SalaryMin
		case r.SalaryMax != nil:
			mid = *r.SalaryMax
		default:
			continue
		}
		sum += mid
		n++
		if currency == "" && r.Currency != "" {
			currency = r.Currency
		}
	}

	if n == 0 {
		return nil, ErrNoData
	}
	if currency == "" {
		currency = "USD"
	}
	return &Quote{
		JobTitle:      jobTitle,
		Location:      location,
		AverageSalary: int(sum / float64(n)),
		Currency:      currency,
	}, nil
}
