package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const chatSystemPrompt = "You are a helpful e-commerce assistant. Help customers with product inquiries, order information, and shopping advice."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatService proxies free text to an external chat completion API and
// returns free text. No state is shared with the order/inventory core.
type ChatService interface {
	Reply(message string) (string, error)
}

type chatService struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

func NewChatService(baseURL, apiKey string, log *zap.Logger) ChatService {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &chatService{
		client:  resty.New(),
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}
}

func (s *chatService) Reply(message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("%w: message is required", ErrValidation)
	}

	body := chatCompletionRequest{
		Model: "gpt-3.5-turbo",
		Messages: []chatMessage{
			{Role: "system", Content: chatSystemPrompt},
			{Role: "user", Content: message},
		},
		MaxTokens:   150,
		Temperature: 0.7,
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetAuthToken(s.apiKey).
		SetBody(body).
		Post(s.baseURL + "/v1/chat/completions")
	if err != nil {
		s.log.Error("chat completion request failed", zap.Error(err))
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		s.log.Error("chat completion request rejected",
			zap.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("chat completion status: %d", resp.StatusCode())
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
