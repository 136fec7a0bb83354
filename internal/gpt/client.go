package gpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"recruiting-bot/internal/metrics"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

// Client представляет клиент OpenAI chat completions
type Client struct {
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
	metrics     *metrics.Metrics
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

type Choice struct {
	Message Message `json:"message"`
}

type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// New создает новый клиент OpenAI
func New(apiKey, model string, temperature float64, m *metrics.Metrics) *Client {
	return &Client{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		metrics: m,
	}
}

// Complete отправляет промпт в OpenAI и возвращает текст ответа
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	text, err := c.complete(ctx, prompt, maxTokens)
	if c.metrics != nil {
		c.metrics.IncrementAPICall(err == nil)
	}
	return text, err
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP ошибка %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	err = json.Unmarshal(body, &chatResp)
	if err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("OpenAI API ошибка: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("пустой ответ от OpenAI")
	}

	return chatResp.Choices[0].Message.Content, nil
}
