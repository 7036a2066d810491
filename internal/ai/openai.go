// Package ai fills in missing word definitions through the OpenAI chat API.
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// Client talks to the OpenAI chat completions API
type Client struct {
	apiKey      string
	apiURL      string
	httpClient  *http.Client
	maxTokens   int
	temperature float64
}

// New creates a client for the given API key
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is empty")
	}
	return &Client{
		apiKey:      apiKey,
		apiURL:      defaultAPIURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxTokens:   150,
		temperature: 0.7,
	}, nil
}

// Message represents a message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the chat completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Define produces a concise dictionary-style definition for a word. The
// context sentence, when present, disambiguates the intended sense.
func (c *Client) Define(word, context string) (string, error) {
	prompt := fmt.Sprintf("Give a concise dictionary definition of the word %q.", word)
	if context != "" {
		prompt = fmt.Sprintf(
			"Give a concise dictionary definition of the word %q as used in this sentence: %q.",
			word, context,
		)
	}
	return c.complete(prompt)
}

// ExampleSentence produces a short example sentence using the word.
func (c *Client) ExampleSentence(word string) (string, error) {
	prompt := fmt.Sprintf(
		"Write one short, natural English sentence that uses the word %q.", word)
	return c.complete(prompt)
}

func (c *Client) complete(prompt string) (string, error) {
	request := ChatRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{Role: "system", Content: "You are a helpful vocabulary assistant for a reading tracker. Answer with the requested text only, no preamble."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
