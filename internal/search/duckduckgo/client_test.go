package duckduckgo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/askbridge/askbridge/internal/models"
	"github.com/rs/zerolog"
)

func newTestClient(instantURL, htmlURL string) *Client {
	logger := zerolog.Nop()
	return &Client{
		httpClient: &http.Client{Timeout: 2 * time.Second},
		instantURL: instantURL,
		htmlURL:    htmlURL,
		maxResults: 3,
		logger:     &logger,
	}
}

const resultsPage = `<html><body>
<div class="result">
  <a class="result__a" href="https://go.dev">The Go Programming Language</a>
  <div class="result__snippet">Go is an open source language.</div>
</div>
<div class="result">
  <a class="result__a" href="https://go.dev/doc">Documentation</a>
  <div class="result__snippet">Learn how to use Go.</div>
</div>
<div class="result">
  <a class="result__a" href=""></a>
  <div class="result__snippet"></div>
</div>
<div class="result">
  <a class="result__a" href="https://go.dev/blog">The Go Blog</a>
  <div class="result__snippet">Articles from the Go team.</div>
</div>
<div class="result">
  <a class="result__a" href="https://go.dev/play">Playground</a>
  <div class="result__snippet">Run Go in the browser.</div>
</div>
</body></html>`

func TestSearch_InstantAnswerWins(t *testing.T) {
	instant := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "what is go" {
			t.Errorf("query param: %q", got)
		}
		fmt.Fprint(w, `{"Heading":"Go","Abstract":"Go is a programming language.","AbstractURL":"https://go.dev"}`)
	}))
	defer instant.Close()

	html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("scrape endpoint should not be called when the instant answer succeeds")
	}))
	defer html.Close()

	c := newTestClient(instant.URL, html.URL)

	hits, err := c.Search(context.Background(), "what is go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits: %d, want 1", len(hits))
	}
	if hits[0].Title != "Go" || hits[0].Snippet != "Go is a programming language." || hits[0].URL != "https://go.dev" {
		t.Errorf("hit: %+v", hits[0])
	}
}

func TestSearch_FallsBackToScrape(t *testing.T) {
	instant := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Heading":"","Abstract":""}`)
	}))
	defer instant.Close()

	html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	}))
	defer html.Close()

	c := newTestClient(instant.URL, html.URL)

	hits, err := c.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("hits: %d, want maxResults of 3", len(hits))
	}
	if hits[0].Title != "The Go Programming Language" {
		t.Errorf("first title: %q", hits[0].Title)
	}
	if hits[0].URL != "https://go.dev" {
		t.Errorf("first url: %q", hits[0].URL)
	}
	if hits[2].Title != "The Go Blog" {
		t.Errorf("empty result rows should be skipped, third title: %q", hits[2].Title)
	}
}

func TestSearch_NoHitsIsNotAnError(t *testing.T) {
	instant := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer instant.Close()

	html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	defer html.Close()

	c := newTestClient(instant.URL, html.URL)

	hits, err := c.Search(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits: %d, want 0", len(hits))
	}
}

func TestSearch_BothEndpointsDownIsAnOutage(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	c := newTestClient(down.URL, down.URL)

	_, err := c.Search(context.Background(), "golang")
	if !errors.Is(err, models.ErrSearchUnavailable) {
		t.Errorf("error: %v, want ErrSearchUnavailable", err)
	}
}
