// Package supabase is a small client for the Supabase REST interface (PostgREST).
//
// It covers what the app needs from the hosted store: inserting batches,
// listing and counting rows by status, moderating and deleting single rows,
// and calling database functions through /rpc.
//
// There is no retry logic. Each call is one HTTP round-trip bounded by the
// client's timeout.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/crazythursday/copywriting/internal/entities"
)

const (
	restPath       = "/rest/v1/"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 64 * 1024
)

// Client talks to one Supabase project.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy, so an
// *http.Client passed to WithHTTPClient is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			hc := *c.httpClient
			hc.Timeout = timeout
			c.httpClient = &hc
		}
	}
}

// NewClient creates a client for the project at baseURL authenticated with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Insert creates rows in collection and returns them as stored.
// PostgREST runs a bulk insert in a single statement: all rows or none.
func (c *Client) Insert(ctx context.Context, collection string, records []entities.CopywritingInput) ([]entities.Copywriting, error) {
	body, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.tableURL(collection, nil), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []entities.Copywriting
	if _, err := c.do(req, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns rows matching filter, newest first.
func (c *Client) List(ctx context.Context, collection string, filter entities.ListFilter) ([]entities.Copywriting, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	if filter.Status != "" {
		q.Set("status", "eq."+string(filter.Status))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.tableURL(collection, q), nil)
	if err != nil {
		return nil, err
	}

	var rows []entities.Copywriting
	if _, err := c.do(req, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of rows with the given status (all rows when empty).
func (c *Client) Count(ctx context.Context, collection string, status entities.CopywritingStatus) (int64, error) {
	q := url.Values{}
	q.Set("select", "id")
	if status != "" {
		q.Set("status", "eq."+string(status))
	}

	req, err := c.newRequest(ctx, http.MethodHead, c.tableURL(collection, q), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.do(req, nil)
	if err != nil {
		return 0, err
	}
	return parseContentRangeTotal(resp.Header.Get("Content-Range"))
}

// UpdateStatus moves one row to a new moderation state.
func (c *Client) UpdateStatus(ctx context.Context, collection string, id uint, status entities.CopywritingStatus) (*entities.Copywriting, error) {
	body, err := json.Marshal(map[string]entities.CopywritingStatus{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to encode update: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, c.tableURL(collection, idFilter(id)), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []entities.Copywriting
	if _, err := c.do(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, entities.ErrNotFound
	}
	return &rows[0], nil
}

// Delete removes one row.
func (c *Client) Delete(ctx context.Context, collection string, id uint) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.tableURL(collection, idFilter(id)), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []entities.Copywriting
	if _, err := c.do(req, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// RPC calls a database function and decodes its JSON result into out.
func (c *Client) RPC(ctx context.Context, function string, params any, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+restPath+"rpc/"+url.PathEscape(function), bytes.NewReader(body))
	if err != nil {
		return err
	}

	_, err = c.do(req, out)
	return err
}

func (c *Client) tableURL(collection string, q url.Values) string {
	u := c.baseURL + restPath + url.PathEscape(collection)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func idFilter(id uint) url.Values {
	q := url.Values{}
	q.Set("id", "eq."+strconv.FormatUint(uint64(id), 10))
	return q
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends req and decodes a JSON body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent && req.Method != http.MethodHead {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// parseContentRangeTotal extracts the total from "0-24/3573" or "*/0".
func parseContentRangeTotal(header string) (int64, error) {
	slash := strings.LastIndex(header, "/")
	if slash < 0 {
		return 0, fmt.Errorf("missing count in Content-Range %q", header)
	}
	total := header[slash+1:]
	if total == "*" {
		return 0, fmt.Errorf("count not provided in Content-Range %q", header)
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count in Content-Range %q: %w", header, err)
	}
	return n, nil
}
