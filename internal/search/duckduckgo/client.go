package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/askbridge/askbridge/internal/models"
	"github.com/askbridge/askbridge/internal/search"
	"github.com/rs/zerolog"
)

const (
	defaultInstantURL = "https://api.duckduckgo.com/"
	defaultHTMLURL    = "https://html.duckduckgo.com/html/"
	userAgent         = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// Client queries DuckDuckGo without an API key: the instant-answer API
// first, then the HTML results page as a scrape fallback. Both endpoints
// are unreliable external collaborators; the caller decides what an outage
// means.
type Client struct {
	httpClient *http.Client
	instantURL string
	htmlURL    string
	maxResults int
	logger     *zerolog.Logger
}

func NewClient(timeout time.Duration, maxResults int, logger *zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		instantURL: defaultInstantURL,
		htmlURL:    defaultHTMLURL,
		maxResults: maxResults,
		logger:     logger,
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]search.Hit, error) {
	hits, instantErr := c.instantAnswer(ctx, query)
	if instantErr == nil && len(hits) > 0 {
		return hits, nil
	}
	if instantErr != nil {
		c.logger.Debug().Err(instantErr).Msg("instant answer lookup failed, scraping results page")
	}

	hits, scrapeErr := c.scrapeResults(ctx, query)
	if scrapeErr != nil {
		if instantErr != nil {
			return nil, fmt.Errorf("%w: instant: %v; scrape: %v", models.ErrSearchUnavailable, instantErr, scrapeErr)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrSearchUnavailable, scrapeErr)
	}

	// No hits is not an outage.
	return hits, nil
}

type instantAnswerResponse struct {
	Heading     string `json:"Heading"`
	Abstract    string `json:"Abstract"`
	AbstractURL string `json:"AbstractURL"`
	Definition  string `json:"Definition"`
	Answer      string `json:"Answer"`
}

func (c *Client) instantAnswer(ctx context.Context, query string) ([]search.Hit, error) {
	params := url.Values{
		"q":             {query},
		"format":        {"json"},
		"no_html":       {"1"},
		"skip_disambig": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.instantURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("instant answer API returned %d", resp.StatusCode)
	}

	var body instantAnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	snippet := body.Abstract
	if snippet == "" {
		snippet = body.Definition
	}
	if snippet == "" {
		snippet = body.Answer
	}
	if snippet == "" {
		return nil, nil
	}

	return []search.Hit{{
		Title:   body.Heading,
		Snippet: snippet,
		URL:     body.AbstractURL,
	}}, nil
}

func (c *Client) scrapeResults(ctx context.Context, query string) ([]search.Hit, error) {
	params := url.Values{"q": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.htmlURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var hits []search.Hit
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a")
		title := strings.TrimSpace(link.Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())
		href, _ := link.Attr("href")

		if title == "" && snippet == "" {
			return true
		}

		hits = append(hits, search.Hit{Title: title, Snippet: snippet, URL: href})
		return len(hits) < c.maxResults
	})

	return hits, nil
}
