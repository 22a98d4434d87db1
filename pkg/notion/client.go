// Package notion is a minimal client for the parts of the Notion API this
// integration needs: querying the pages of a database or data source,
// looking up database metadata and discovering accessible databases. It is
// deliberately not a general-purpose Notion SDK.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"

	// Version is the Notion-Version header sent with every request. The
	// data source endpoints used here require at least this version.
	Version = "2025-09-03"

	requestTimeout = 20 * time.Second
	queryPageSize  = 100
)

// Client talks to the Notion API on behalf of one integration token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(token string, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		token:      token,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// QueryTarget selects what a page query runs against. Exactly one variant is
// used: DataSourceID when the database has multiple data sources and one was
// picked during setup, DatabaseID otherwise.
type QueryTarget struct {
	DatabaseID   string
	DataSourceID string
}

func (t QueryTarget) queryPath() string {
	if t.DataSourceID != "" {
		return "/data_sources/" + t.DataSourceID + "/query"
	}

	return "/databases/" + t.DatabaseID + "/query"
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// Query starts a paginated page query against the target. The returned
// iterator makes one pass over the result set and is not restartable.
func (c *Client) Query(target QueryTarget) *PageIterator {
	return &PageIterator{client: c, target: target}
}

// PageIterator walks a page query cursor. Usage:
//
//	it := client.Query(target)
//	for it.Next(ctx) {
//	    page := it.Page()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type PageIterator struct {
	client *Client
	target QueryTarget

	buf     []Page
	pos     int
	cursor  string
	fetched bool
	done    bool
	err     error
}

// Next advances to the following page, fetching the next batch from the API
// when the buffered one is exhausted. It returns false at the end of the
// result set or on error; check Err after the loop.
func (it *PageIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}

	for it.pos >= len(it.buf) {
		if it.done && it.fetched {
			return false
		}

		if err := it.fetch(ctx); err != nil {
			it.err = err

			return false
		}
	}

	it.pos++

	return true
}

// Page returns the page Next advanced to.
func (it *PageIterator) Page() Page {
	return it.buf[it.pos-1]
}

// Err returns the error that terminated iteration, if any.
func (it *PageIterator) Err() error {
	return it.err
}

func (it *PageIterator) fetch(ctx context.Context) error {
	req := queryRequest{PageSize: queryPageSize, StartCursor: it.cursor}

	var resp queryResponse
	if err := it.client.do(ctx, http.MethodPost, it.target.queryPath(), req, &resp); err != nil {
		return err
	}

	it.buf = resp.Results
	it.pos = 0
	it.cursor = resp.NextCursor
	it.done = !resp.HasMore
	it.fetched = true

	return nil
}

// Database fetches database metadata, including its data sources.
func (c *Client) Database(ctx context.Context, databaseID string) (Database, error) {
	var database Database
	if err := c.do(ctx, http.MethodGet, "/databases/"+databaseID, nil, &database); err != nil {
		return Database{}, err
	}

	return database, nil
}

type searchRequest struct {
	PageSize    int          `json:"page_size"`
	StartCursor string       `json:"start_cursor,omitempty"`
	Filter      searchFilter `json:"filter"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type searchResponse struct {
	Results    []Database `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor string     `json:"next_cursor"`
}

// SearchDatabases lists every database the token has been granted access to.
func (c *Client) SearchDatabases(ctx context.Context) ([]Database, error) {
	var (
		databases []Database
		cursor    string
	)

	for {
		req := searchRequest{
			PageSize:    queryPageSize,
			StartCursor: cursor,
			Filter:      searchFilter{Property: "object", Value: "database"},
		}

		var resp searchResponse
		if err := c.do(ctx, http.MethodPost, "/search", req, &resp); err != nil {
			return nil, err
		}

		databases = append(databases, resp.Results...)

		if !resp.HasMore {
			return databases, nil
		}

		cursor = resp.NextCursor
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("notion: failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("notion: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", Version)

	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &CommunicationError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrAuthentication
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: invalid database or data source id", ErrNotFound)
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		return &CommunicationError{Err: fmt.Errorf("server error (status %d)", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("notion: unexpected response (status %d)", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: failed to decode response: %w", err)
	}

	return nil
}
