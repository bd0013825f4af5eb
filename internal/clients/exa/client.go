package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrProviderUnavailable marks any failure to reach the search provider:
// transport errors, timeouts and non-200 responses. It aborts the whole
// ingestion run.
var ErrProviderUnavailable = errors.New("search provider unavailable")

const (
	defaultBaseURL = "https://api.exa.ai"
	defaultTimeout = 30 * time.Second
	numResults     = 50
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is passed explicitly at construction; the client keeps no
// process-wide state and reads nothing from the environment.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	config      Config
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	now         func() time.Time
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		now:        time.Now,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// Result is one raw hit from the provider.
type Result struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Url   string `json:"url"`
	Html  string `json:"html"`
}

type searchRequest struct {
	Query          string   `json:"query"`
	Type           string   `json:"type"`
	NumResults     int      `json:"numResults"`
	UseAutoprompt  bool     `json:"useAutoprompt"`
	IncludeDomains []string `json:"includeDomains"`
	StartCrawlDate string   `json:"startCrawlDate"`
	EndCrawlDate   string   `json:"endCrawlDate"`
}

type contentsRequest struct {
	Urls []string `json:"urls"`
	Text bool     `json:"text"`
	Html bool     `json:"html"`
}

type resultsResponse struct {
	Results []Result `json:"results"`
}

// Search runs one neural search scoped to the domain allow-list and the
// recency window. Zero upstream results come back as an empty slice, not
// an error.
func (c *Client) Search(ctx context.Context, query string, filters SearchFilters) ([]Result, error) {

	now := c.now()
	request := searchRequest{
		Query:          BuildSearchQuery(query, filters),
		Type:           "neural",
		NumResults:     numResults,
		UseAutoprompt:  true,
		IncludeDomains: relevantDomains(),
		StartCrawlDate: startCrawlDate(now),
		EndCrawlDate:   now.Format("2006-01-02"),
	}

	body, err := c.sendRequest(ctx, "/search", request)
	if err != nil {
		return nil, err
	}

	var response resultsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: decoding search response: %v", ErrProviderUnavailable, err)
	}

	if response.Results == nil {
		return []Result{}, nil
	}
	return response.Results, nil
}

// GetContents fetches full content for one URL. A URL the provider knows
// nothing about comes back as (nil, nil).
func (c *Client) GetContents(ctx context.Context, url string) (*Result, error) {

	body, err := c.sendRequest(ctx, "/contents", contentsRequest{Urls: []string{url}, Text: true, Html: true})
	if err != nil {
		return nil, err
	}

	var response resultsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: decoding contents response: %v", ErrProviderUnavailable, err)
	}

	if len(response.Results) == 0 {
		return nil, nil
	}
	return &response.Results[0], nil
}

// TestConnection probes the API with a one-result search.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.sendRequest(ctx, "/search", searchRequest{Query: "test", Type: "neural", NumResults: 1})
	return err
}

func (c *Client) sendRequest(ctx context.Context, path string, payload any) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: request failed with status %v, body: %v",
			ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	return body, nil
}
