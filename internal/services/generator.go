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

	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/outreach-backend/internal/models"
)

// Provider is an OpenAI-compatible chat completions endpoint.
type Provider struct {
	Name   string
	URL    string
	APIKey string
	Model  string
}

// LLMGenerator writes outreach messages with a single chat completions
// provider. A failed call is returned to the caller; nothing is retried.
type LLMGenerator struct {
	provider Provider
	client   *http.Client
}

// NewLLMGenerator picks the first provider with an API key, in the order
// OpenAI, DeepSeek, GLM.
func NewLLMGenerator(cfg *config.Config) (*LLMGenerator, error) {
	candidates := []Provider{
		{Name: "openai", URL: cfg.OpenAIAPIURL, APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel},
		{Name: "deepseek", URL: cfg.DeepSeekAPIURL, APIKey: cfg.DeepSeekAPIKey, Model: cfg.DeepSeekModel},
		{Name: "glm", URL: cfg.GLMAPIURL, APIKey: cfg.GLMAPIKey, Model: cfg.GLMModel},
	}
	for _, p := range candidates {
		if p.APIKey != "" {
			return NewLLMGeneratorWithProvider(p, cfg.AITimeout), nil
		}
	}
	return nil, errors.New("no LLM provider API key configured")
}

func NewLLMGeneratorWithProvider(p Provider, timeout time.Duration) *LLMGenerator {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &LLMGenerator{
		provider: p,
		client:   &http.Client{Timeout: timeout},
	}
}

// ProviderName reports which provider is in use.
func (g *LLMGenerator) ProviderName() string {
	return g.provider.Name
}

const (
	maxResponseBytes = 64 << 10
	maxErrorBodyLen  = 512
)

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
	MaxTokens   int          `json:"max_tokens"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You write short, personal cold outreach messages for LinkedIn.

Rules:
1. Address the recipient by name and reference at least one concrete detail from their profile
2. State the sender's goal plainly in one sentence
3. Keep it under 120 words, no subject line, no placeholders like [Your Name]
4. Friendly and professional, never pushy
5. Return only the message text`

func (g *LLMGenerator) Generate(ctx context.Context, contact *models.Contact, goalPrompt string) (string, error) {
	reqBody, err := json.Marshal(llmRequest{
		Model: g.provider.Model,
		Messages: []llmMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(contact, goalPrompt)},
		},
		Temperature: 0.7,
		MaxTokens:   400,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.provider.URL, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.provider.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", g.provider.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned %d: %s", g.provider.Name, resp.StatusCode, snippet(body))
	}

	var llmResp llmResponse
	if err := json.Unmarshal(body, &llmResp); err != nil {
		return "", fmt.Errorf("failed to parse %s response: %w", g.provider.Name, err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", g.provider.Name)
	}

	content := strings.TrimSpace(llmResp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("blank message from %s", g.provider.Name)
	}
	return content, nil
}

// snippet shortens an upstream error body for logs and error reports.
func snippet(body []byte) string {
	if len(body) <= maxErrorBodyLen {
		return string(body)
	}
	return string(body[:maxErrorBodyLen]) + "...(truncated)"
}

func buildUserPrompt(c *models.Contact, goalPrompt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipient: %s, %s\n", c.TargetName, c.TargetRole)
	fmt.Fprintf(&b, "LinkedIn: %s\n", c.LinkedInURL)
	writeOptional(&b, "Company", c.Company)
	writeOptional(&b, "Experience", c.Experiences)
	writeOptional(&b, "Recent post", c.RecentPost)
	writeOptional(&b, "Education", c.Education)
	writeOptional(&b, "Other notes", c.OtherNotes)
	fmt.Fprintf(&b, "\nSender's goal: %s\n", goalPrompt)
	return b.String()
}

func writeOptional(b *strings.Builder, label string, v *string) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, *v)
}
