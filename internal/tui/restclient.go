package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timeout for ask requests
const askRequestTimeout = 90 * time.Second

// manages HTTP requests to the milodocs REST API
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// creates a client for MILODOCS_ENDPOINT, defaulting to a local server
func NewClient() *Client {
	endpoint := os.Getenv("MILODOCS_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return NewClientWithEndpoint(endpoint)
}

func NewClientWithEndpoint(endpoint string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: askRequestTimeout,
		},
	}
}

// sends a question to the ask endpoint
func (c *Client) Ask(ctx context.Context, query, productFilter string) (string, error) {
	payloadBytes, err := json.Marshal(askRequest{
		Query:         query,
		ProductFilter: productFilter,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + "/api/v1/ask"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	// handle error responses
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return "", fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result askResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Answer, nil
}

// returns a tea.Cmd that asks a question
func (c *Client) AskCmd(query, productFilter string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askRequestTimeout)
		defer cancel()

		answer, err := c.Ask(ctx, query, productFilter)
		if err != nil {
			return AnswerErrorMsg{query: query, err: err}
		}

		return AnswerMsg{query: query, answer: answer}
	}
}

type askRequest struct {
	Query         string `json:"query"`
	ProductFilter string `json:"productFilter,omitempty"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
