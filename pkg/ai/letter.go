package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	internalConfig "github.com/pawmemo/pawmemo-backend/internal/config"
)

// LetterGenerator produces a condolence letter for a pet. Implementations
// call an external text-generation API; failures are ordinary errors and
// never affect entitlement state.
type LetterGenerator interface {
	GenerateLetter(petName, species, personalityType string) (string, error)
}

type LetterClient struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewLetterClient(cfg *internalConfig.Config) *LetterClient {
	return &LetterClient{
		endpoint: cfg.AI.Endpoint,
		apiKey:   cfg.AI.APIKey,
		model:    cfg.AI.Model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type letterRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type letterResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (c *LetterClient) GenerateLetter(petName, species, personalityType string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short, warm condolence letter from a %s named %s to their family. ",
		species, petName)
	if personalityType != "" {
		prompt += fmt.Sprintf("The pet's personality was: %s. ", personalityType)
	}
	prompt += "Keep it under 200 words, first person, gentle tone."

	body, err := json.Marshal(letterRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("letter API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("letter API returned status %d", resp.StatusCode)
	}

	var result letterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("invalid letter API response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("letter API error: %s", result.Error)
	}

	return result.Text, nil
}
