// Package udpipe implements the tagger port against a UDPipe REST
// service.
package udpipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/roparl/corpus-cli/internal/conllu"
	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/logger"
)

const processPath = "/process"

// response is the JSON envelope returned by the service.
type response struct {
	Result string `json:"result"`
}

// Client calls a UDPipe REST endpoint. Requests are paced with a rate
// limiter so batch runs do not overwhelm a shared service instance.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a tagger client. A zero requestsPerSecond disables
// pacing; a zero timeout means no timeout, so a hung service blocks
// the batch.
func NewClient(baseURL, model string, requestsPerSecond float64, timeout time.Duration) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// Process sends one text fragment to the service and parses the
// returned CoNLL-U document.
func (c *Client) Process(ctx context.Context, text string) ([]domain.Sentence, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tagger rate limit: %w", err)
	}
	form := url.Values{
		"tokenizer": {""},
		"tagger":    {""},
		"parser":    {""},
		"model":     {c.model},
		"data":      {text},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+processPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build tagger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	logger.Debug("Sending %d characters to tagger at %s.", len(text), c.baseURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call tagger: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tagger returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode tagger response: %w", err)
	}
	sentences, err := conllu.Parse(parsed.Result)
	if err != nil {
		return nil, fmt.Errorf("parse tagger output: %w", err)
	}
	return sentences, nil
}
