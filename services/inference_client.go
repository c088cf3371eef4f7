package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"fitTrackAPI/internal/coach"
)

const defaultInferenceModel = "mistralai/Mistral-7B-Instruct-v0.2"

// InferenceClient talks to the hosted Hugging Face inference API. It is
// optional: without a token every call errors and callers fall back to
// the rule-based responder.
type InferenceClient struct {
	apiToken string
	model    string
	baseURL  string
	client   *http.Client
}

func NewInferenceClient() *InferenceClient {
	model := os.Getenv("HUGGINGFACE_MODEL")
	if model == "" {
		model = defaultInferenceModel
	}

	baseURL := os.Getenv("HUGGINGFACE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}

	return &InferenceClient{
		apiToken: os.Getenv("HUGGINGFACE_API_KEY"),
		model:    model,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Enabled reports whether a token is configured.
func (c *InferenceClient) Enabled() bool {
	return c.apiToken != ""
}

// Complete sends the conversation to the hosted model. It tries the
// structured chat endpoint first; if that fails it flattens the
// transcript into a single text-generation prompt. Any remaining error
// is returned for the caller's fallback path.
func (c *InferenceClient) Complete(ctx context.Context, messages []coach.Message) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("inference client not configured")
	}

	reply, chatErr := c.chatCompletion(ctx, messages)
	if chatErr == nil {
		return reply, nil
	}
	log.Printf("InferenceClient: chat completion failed: %v, trying text generation", chatErr)

	reply, genErr := c.textGeneration(ctx, coach.FlattenPrompt(messages))
	if genErr != nil {
		return "", fmt.Errorf("chat completion: %v; text generation: %w", chatErr, genErr)
	}

	return reply, nil
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []coach.Message `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *InferenceClient) chatCompletion(ctx context.Context, messages []coach.Message) (string, error) {
	url := fmt.Sprintf("%s/models/%s/v1/chat/completions", c.baseURL, c.model)

	body, err := json.Marshal(&chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	respBody, err := c.post(ctx, url, body)
	if err != nil {
		return "", err
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unexpected chat response shape: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty chat response")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

type textGenerationRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxNewTokens int     `json:"max_new_tokens"`
		Temperature  float64 `json:"temperature"`
	} `json:"parameters"`
}

func (c *InferenceClient) textGeneration(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)

	req := &textGenerationRequest{Inputs: prompt}
	req.Parameters.MaxNewTokens = 500
	req.Parameters.Temperature = 0.7

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	respBody, err := c.post(ctx, url, body)
	if err != nil {
		return "", err
	}

	var parsed []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unexpected generation response shape: %w", err)
	}
	if len(parsed) == 0 || parsed[0].GeneratedText == "" {
		return "", fmt.Errorf("empty generation response")
	}

	return strings.TrimSpace(parsed[0].GeneratedText), nil
}

func (c *InferenceClient) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
