// Package arxiv provides a client for the arXiv Atom query API,
// used to fetch recently submitted paper titles as trending terms.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"paper-radar-go/internal/config"
	"paper-radar-go/pkg/log"
)

// Client defines the interface for the trending feed client.
type Client interface {
	FetchTrending(ctx context.Context, maxResults int) ([]string, error)
}

type httpClient struct {
	cfg    config.ArxivConfig
	client *http.Client
}

// NewClient creates a new arXiv client with a bounded request timeout.
func NewClient(cfg config.ArxivConfig) Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// atomFeed 只解析我们关心的 entry/title 字段。
type atomFeed struct {
	Entries []struct {
		Title string `xml:"title"`
	} `xml:"entry"`
}

// FetchTrending queries arXiv for submissions within the trailing window
// and returns their titles, newest first.
func (c *httpClient) FetchTrending(ctx context.Context, maxResults int) ([]string, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -c.cfg.WindowDays).Format("20060102")
	end := now.Format("20060102")

	params := url.Values{}
	params.Set("search_query", fmt.Sprintf("submittedDate:[%s0000 TO %s2359]", start, end))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("max_results", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create arxiv request: %w", err)
	}

	log.Infof("[ArxivClient] 开始请求 arXiv 趋势, 窗口: %s ~ %s, max_results: %d", start, end, maxResults)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call arxiv api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv api returned non-200 status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read arxiv response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse arxiv atom feed: %w", err)
	}

	titles := make([]string, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		title := strings.Join(strings.Fields(entry.Title), " ")
		if title != "" {
			titles = append(titles, title)
		}
	}

	log.Infof("[ArxivClient] arXiv 返回 %d 条标题", len(titles))
	return titles, nil
}
