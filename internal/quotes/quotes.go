// Package quotes fetches a motivational quote to show beside the task list.
package quotes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mood-tracker/internal/config"
	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/logging"
)

const serviceName = "quotes"

// Quote is a single quotation
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// String formats the quote for display
func (q Quote) String() string {
	if q.Author == "" {
		return fmt.Sprintf("\"%s\"", q.Content)
	}
	return fmt.Sprintf("\"%s\" — %s", q.Content, q.Author)
}

// Client fetches random quotes
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a quote client from configuration
func NewClient(cfg config.QuotesConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
	}
}

// Random fetches one quote. The endpoint may answer with a single object or
// an array of objects; the first element is used.
func (c *Client) Random(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError(serviceName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamError(serviceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, apperrors.NewUpstreamError(serviceName, err)
	}

	quote, err := decode(body)
	if err != nil {
		return nil, apperrors.NewUpstreamError(serviceName, err)
	}

	logging.Debugf("fetched quote by %s\n", quote.Author)
	return quote, nil
}

func decode(body []byte) (*Quote, error) {
	body = bytes.TrimSpace(body)

	var quote Quote
	if len(body) > 0 && body[0] == '[' {
		var list []Quote
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decode quote list: %w", err)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("empty quote list")
		}
		quote = list[0]
	} else if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("decode quote: %w", err)
	}

	quote.Content = strings.TrimSpace(quote.Content)
	quote.Author = strings.TrimSpace(quote.Author)
	if quote.Content == "" {
		return nil, fmt.Errorf("quote has no content")
	}
	return &quote, nil
}
