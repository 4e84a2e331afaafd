package opendart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the OpenDART API.
	DefaultBaseURL = "https://opendart.fss.or.kr/api"

	// DefaultTimeout is the HTTP timeout for a single call.
	DefaultTimeout = 10 * time.Second

	// DefaultRequestInterval is the minimum spacing between consecutive calls.
	DefaultRequestInterval = 100 * time.Millisecond

	// MaxRangeYears caps the years callers should request through FetchRange.
	MaxRangeYears = 5

	statementPath  = "/fnlttSinglAcnt.json"
	fetchOKMessage = "재무 데이터를 성공적으로 가져왔습니다."
)

// Client is an OpenDART API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestInterval sets the minimum spacing between calls.
func WithRequestInterval(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// NewClient creates a new OpenDART API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(DefaultRequestInterval), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do performs a rate-limited GET and returns the response for the caller to consume.
func (c *Client) do(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("crtfc_key", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Str("corp_code", params.Get("corp_code")).
			Str("bsns_year", params.Get("bsns_year")).
			Msg("OpenDART API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp, nil
}

// get performs a GET request and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	resp, err := c.do(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Fetch retrieves the key accounts of one filing. It never returns an error:
// transport faults and non-success statuses are reported through the result.
func (c *Client) Fetch(ctx context.Context, corpCode, year, reportCode string) *models.FetchResult {
	if reportCode == "" {
		reportCode = models.ReportAnnual
	}

	params := url.Values{}
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", year)
	params.Set("reprt_code", reportCode)

	var body statementResponse
	if err := c.get(ctx, statementPath, params, &body); err != nil {
		if c.logger != nil {
			c.logger.Warn().
				Err(err).
				Str("corp_code", corpCode).
				Str("bsns_year", year).
				Msg("OpenDART request failed")
		}
		return &models.FetchResult{
			Success: false,
			Items:   []models.LineItem{},
			Message: fmt.Sprintf("API 요청 실패: %v", err),
		}
	}

	if body.Status == StatusOK {
		items := body.List
		if items == nil {
			items = []models.LineItem{}
		}
		return &models.FetchResult{
			Success: true,
			Items:   items,
			Message: fetchOKMessage,
		}
	}

	status := body.Status
	if status == "" {
		status = StatusUndefined
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("corp_code", corpCode).
			Str("bsns_year", year).
			Str("status", status).
			Str("api_message", body.Message).
			Msg("OpenDART returned non-success status")
	}

	return &models.FetchResult{
		Success:   false,
		Items:     []models.LineItem{},
		Message:   StatusMessage(status),
		ErrorCode: status,
	}
}

// FetchRange fetches each year in caller order, spaced by the client limiter.
// A failed year maps to an empty slice.
func (c *Client) FetchRange(ctx context.Context, corpCode string, years []string, reportCode string) map[string][]models.LineItem {
	results := make(map[string][]models.LineItem, len(years))

	for _, year := range years {
		result := c.Fetch(ctx, corpCode, year, reportCode)
		if result.Success {
			results[year] = result.Items
		} else {
			results[year] = []models.LineItem{}
		}
	}

	return results
}
