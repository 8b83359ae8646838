// Package zotero is a minimal client for the Zotero Web API v3, covering the
// calls needed to migrate items out of a library.
package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aretw0/paperloam/pkg/core"
)

const (
	DefaultBaseURL  = "https://api.zotero.org"
	DefaultPageSize = 100

	LibraryTypeUser  = "user"
	LibraryTypeGroup = "group"

	apiVersion         = "3"
	defaultHTTPTimeout = 90 * time.Second
)

// Config holds the connection settings for a single library.
type Config struct {
	BaseURL     string
	LibraryID   string
	LibraryType string // "user" or "group"
	APIKey      string
	PageSize    int
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// Client implements core.Library against the Zotero Web API.
type Client struct {
	baseURL string
	prefix  string
	apiKey  string
	limit   int
	http    *http.Client
	logger  *slog.Logger
}

// APIError is returned for any non-success HTTP status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zotero API error: %s %s: %s (%s)", e.Method, e.Path, e.Status, e.Body)
}

// NewClient creates a Client for the configured library.
func NewClient(cfg Config) (*Client, error) {
	if cfg.LibraryID == "" {
		return nil, fmt.Errorf("zotero: library id is required")
	}
	var segment string
	switch cfg.LibraryType {
	case "", LibraryTypeUser:
		segment = "users"
	case LibraryTypeGroup:
		segment = "groups"
	default:
		return nil, fmt.Errorf("zotero: unknown library type %q", cfg.LibraryType)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		baseURL: cfg.BaseURL,
		prefix:  "/" + segment + "/" + url.PathEscape(cfg.LibraryID),
		apiKey:  cfg.APIKey,
		limit:   cfg.PageSize,
		http:    cfg.HTTPClient,
		logger:  cfg.Logger,
	}, nil
}

// ListTop returns every top-level item lacking excludeTag, following pagination.
func (c *Client) ListTop(ctx context.Context, excludeTag string) ([]core.Item, error) {
	var items []core.Item
	start := 0
	for {
		query := url.Values{}
		query.Set("format", "json")
		query.Set("limit", strconv.Itoa(c.limit))
		query.Set("start", strconv.Itoa(start))
		if excludeTag != "" {
			query.Set("tag", "-"+excludeTag)
		}

		var page []apiItem
		header, err := c.getJSON(ctx, c.prefix+"/items/top", query, &page)
		if err != nil {
			return nil, err
		}
		for _, raw := range page {
			item, err := toItem(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		start += len(page)
		if len(page) == 0 || !hasMore(header, start, len(page), c.limit) {
			break
		}
	}
	return items, nil
}

// ListAttachments returns the attachment children of an item.
func (c *Client) ListAttachments(ctx context.Context, itemKey string) ([]core.Attachment, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("itemType", "attachment")

	var page []apiItem
	if _, err := c.getJSON(ctx, c.itemPath(itemKey)+"/children", query, &page); err != nil {
		return nil, err
	}

	attachments := make([]core.Attachment, 0, len(page))
	for _, raw := range page {
		att, err := toAttachment(raw)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, nil
}

// FetchBytes downloads the file of an attachment item.
func (c *Client) FetchBytes(ctx context.Context, attachmentKey string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.itemPath(attachmentKey)+"/file", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment %s: %w", attachmentKey, err)
	}
	return data, nil
}

// AddTag appends tag to the item's existing tags. The write is conditional on
// the item version so concurrent edits in Zotero are not clobbered.
func (c *Client) AddTag(ctx context.Context, item core.Item, tag string) error {
	if item.HasTag(tag) {
		return nil
	}
	tags := append(fromTags(item.Tags), apiTag{Tag: tag})
	body, err := json.Marshal(struct {
		Tags []apiTag `json:"tags"`
	}{Tags: tags})
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("If-Unmodified-Since-Version", strconv.Itoa(item.Version))

	resp, err := c.do(ctx, http.MethodPatch, c.itemPath(item.Key), nil, bytes.NewReader(body), header)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteAttachment deletes an attachment item, conditional on its version.
func (c *Client) DeleteAttachment(ctx context.Context, att core.Attachment) error {
	header := http.Header{}
	header.Set("If-Unmodified-Since-Version", strconv.Itoa(att.Version))

	resp, err := c.do(ctx, http.MethodDelete, c.itemPath(att.Key), nil, nil, header)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) itemPath(key string) string {
	return c.prefix + "/items/" + url.PathEscape(key)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) (http.Header, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("failed to decode zotero response for %s: %w", path, err)
	}
	return resp.Header, nil
}

// do sends a request and returns the response for 2xx statuses only.
// The caller closes the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, header http.Header) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Zotero-API-Version", apiVersion)
	if c.apiKey != "" {
		req.Header.Set("Zotero-API-Key", c.apiKey)
	}

	c.logger.Debug("zotero request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(msg),
		}
	}
	return resp, nil
}

// hasMore decides whether another page should be requested.
// Total-Results is authoritative; without it a short page ends the listing.
func hasMore(header http.Header, fetched, pageLen, limit int) bool {
	if total, err := strconv.Atoi(header.Get("Total-Results")); err == nil {
		return fetched < total
	}
	return pageLen >= limit
}

var _ core.Library = (*Client)(nil)
