// Package gemini is a minimal client for the Gemini generateContent REST
// API. It models a conversation as an explicit turn history owned by the
// caller, so the rest of the system can treat model access as an opaque
// send(text) -> text channel.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultModel matches the model the product was tuned against.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTemperature is the sampling temperature used when no override
	// is configured.
	DefaultTemperature = 0.7

	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 30 * time.Second

	roleUser  = "user"
	roleModel = "model"
)

// ErrMissingAPIKey is returned by NewClient when no API key is supplied.
// The caller treats this as fatal: without a key no conversation can exist.
var ErrMissingAPIKey = errors.New("gemini: missing API key")

// APIError is a non-2xx reply from the generateContent endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithMaxOutputTokens caps the model's reply length. Zero leaves the
// server-side default in place.
func WithMaxOutputTokens(n int) Option {
	return func(c *Client) { c.maxOutputTokens = n }
}

// Client holds the credentials and generation settings shared by every
// conversation it opens.
type Client struct {
	apiKey          string
	model           string
	temperature     float64
	maxOutputTokens int
	baseURL         string
	http            *http.Client
}

// NewClient creates a Gemini client. An empty API key is an initialization
// failure, not a deferred error.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:      apiKey,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		baseURL:     defaultBaseURL,
		http:        &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Temperature returns the configured sampling temperature.
func (c *Client) Temperature() float64 { return c.temperature }

// ── Wire types ───────────────────────────────────────────────────

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, systemInstruction string, contents []content) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	payload := generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:      c.temperature,
			ResponseMIMEType: "application/json",
			MaxOutputTokens:  c.maxOutputTokens,
		},
	}
	if systemInstruction != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: systemInstruction}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result generateResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("gemini: unmarshal response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response (no candidates)")
	}

	var reply strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		reply.WriteString(p.Text)
	}
	return reply.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
