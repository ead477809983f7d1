// Package formspree relays waitlist signups to a hosted Formspree form.
package formspree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Its-donkey/contractually/internal/waitlist"
)

// DefaultEndpoint is the production form used by the landing page.
const DefaultEndpoint = "https://formspree.io/f/mvgkdakn"

const (
	defaultTimeout = 12 * time.Second
	maxErrorBody   = 4 * 1024
	userAgent      = "contractually-landing/1.0"
)

// StatusError reports a non-2xx response from the endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	Messages   []string
}

func (e *StatusError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("formspree rejected submission: %s: %s", e.Status, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("formspree rejected submission: %s", e.Status)
}

// Client posts signups to a single configured endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

type payload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// NewClient validates endpoint and returns a Client. A nil httpClient gets a
// client with the package default timeout.
func NewClient(endpoint string, httpClient *http.Client) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("formspree: endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("formspree: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("formspree: endpoint %q must be http or https", endpoint)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("formspree: endpoint %q has no host", endpoint)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{endpoint: endpoint, client: httpClient}, nil
}

// Endpoint returns the configured form URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends one POST with the name and email as JSON. Any 2xx response is
// acceptance.
func (c *Client) Submit(ctx context.Context, input waitlist.FormInput) error {
	encoded, err := json.Marshal(payload{Name: input.Name, Email: input.Email})
	if err != nil {
		return fmt.Errorf("formspree: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("formspree: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("formspree: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Messages:   errorMessages(body),
	}
}

func errorMessages(body []byte) []string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var decoded errorResponse
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return []string{truncate(string(trimmed), 200)}
	}
	messages := make([]string, 0, len(decoded.Errors)+1)
	if msg := strings.TrimSpace(decoded.Error); msg != "" {
		messages = append(messages, msg)
	}
	for _, e := range decoded.Errors {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		if e.Field != "" {
			msg = e.Field + ": " + msg
		}
		messages = append(messages, msg)
	}
	return messages
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
