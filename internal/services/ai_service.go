package services

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

	"forge-backend/internal/billing"
	"forge-backend/internal/repositories"

	"github.com/google/uuid"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

const improvePrompt = "You rewrite invoice line item descriptions. " +
	"Return a single concise, professional description. " +
	"No quotes, no explanations."

// ErrAIUnavailable is returned when no API key is configured
var ErrAIUnavailable = errors.New("ai assistance not configured")

type AIService struct {
	apiKey      string
	model       string
	httpClient  *http.Client
	invoiceRepo *repositories.InvoiceRepository
}

func NewAIService(apiKey, model string, invoiceRepo *repositories.InvoiceRepository) *AIService {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AIService{
		apiKey:      apiKey,
		model:       model,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		invoiceRepo: invoiceRepo,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ImproveLineItem asks the model for a cleaner wording of a line item
// description. The caller's most recent line item, when present, is passed
// along as style context.
func (s *AIService) ImproveLineItem(ctx context.Context, userID uuid.UUID, description string) (string, error) {
	if s.apiKey == "" {
		return "", ErrAIUnavailable
	}
	if strings.TrimSpace(description) == "" {
		return "", billing.NewValidationError("description required")
	}

	messages := []chatMessage{{Role: "system", Content: improvePrompt}}
	if last, err := s.LastLineItem(ctx, userID); err == nil && last != "" {
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "The user's previous line item read: " + last,
		})
	}
	messages = append(messages, chatMessage{Role: "user", Content: description})

	body, err := json.Marshal(chatRequest{Model: s.model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("openai request failed: %d %s", resp.StatusCode, payload)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response carried no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// LastLineItem returns the user's most recent line item description, or an
// empty string when they have none
func (s *AIService) LastLineItem(ctx context.Context, userID uuid.UUID) (string, error) {
	desc, err := s.invoiceRepo.LastLineItemDescription(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil
	}
	return desc, err
}
