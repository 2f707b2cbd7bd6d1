package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"idea-miner/internal/domain"
)

const (
	cacheSize = 500
	cacheTTL  = 10 * time.Minute
)

// Client fetches JSON from the old.reddit.com listing endpoints. Server
// side requests to www.reddit.com are often blocked with 403; the old host
// is more tolerant, and a browser-like User-Agent reduces blocks further.
// Responses are cached in an expirable LRU since the upstream is sensitive
// to repeated identical requests.
type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client

	cache *expirable.LRU[string, []byte]
}

// NewClient constructs a reddit client against the given base URL with the
// default cache sizing.
func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	return NewClientWithCache(baseURL, userAgent, httpClient, cacheSize, cacheTTL)
}

// NewClientWithCache constructs a reddit client with explicit cache sizing.
func NewClientWithCache(baseURL, userAgent string, httpClient *http.Client, size int, ttl time.Duration) *Client {
	return &Client{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		HTTP:      httpClient,
		cache:     expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

// SearchURL builds the listing search URL for a query.
func (c *Client) SearchURL(q domain.Query, limit int) string {
	params := url.Values{}
	params.Set("q", q.Keyword)
	params.Set("sort", "relevance")
	params.Set("t", string(q.Range))
	params.Set("limit", fmt.Sprintf("%d", limit))

	if q.Subreddit != "" {
		params.Set("restrict_sr", "1")
		return fmt.Sprintf("%s/r/%s/search.json?%s", c.BaseURL, url.PathEscape(q.Subreddit), params.Encode())
	}
	return fmt.Sprintf("%s/search.json?%s", c.BaseURL, params.Encode())
}

// CommentsURL builds the comment-thread URL for a post.
func (c *Client) CommentsURL(postID string) string {
	return fmt.Sprintf("%s/comments/%s.json?raw_json=1", c.BaseURL, url.PathEscape(postID))
}

// FetchSearch retrieves and decodes the search listing for a query.
func (c *Client) FetchSearch(ctx context.Context, q domain.Query, limit int) (*listing, error) {
	body, err := c.fetch(ctx, c.SearchURL(q, limit))
	if err != nil {
		return nil, err
	}
	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("failed to decode search listing: %w", err)
	}
	return &l, nil
}

// FetchComments retrieves and decodes the comment thread for a post. The
// endpoint answers with [postListing, commentListing]; only the second
// element is returned.
func (c *Client) FetchComments(ctx context.Context, postID string) ([]rawComment, error) {
	body, err := c.fetch(ctx, c.CommentsURL(postID))
	if err != nil {
		return nil, err
	}

	var pages []commentThread
	if err := json.Unmarshal(body, &pages); err != nil {
		return nil, fmt.Errorf("failed to decode comment thread: %w", err)
	}
	if len(pages) < 2 {
		return nil, nil
	}

	comments := make([]rawComment, 0, len(pages[1].Data.Children))
	for _, child := range pages[1].Data.Children {
		comments = append(comments, child.Data)
	}
	return comments, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if cached, ok := c.cache.Get(rawURL); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("fetch returned %d %s: %s", resp.StatusCode, resp.Status, snippet)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.cache.Add(rawURL, body)
	return body, nil
}
