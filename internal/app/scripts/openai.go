package scripts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	systemPrompt = "You are a legal expert specializing in civil rights and police interactions. " +
		"Provide accurate, actionable legal scripts that protect citizens' rights while promoting safety and de-escalation."

	maxScripts = 6
)

// OpenAIProvider generates scripts through a chat completions API.
type OpenAIProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenAIProvider(baseURL, apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Advice, error) {
	payload, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("completion response has no choices")
	}

	return parseAdvice(cr.Choices[0].Message.Content, req.Language), nil
}

func buildPrompt(req Request) string {
	languageName := "English"
	if req.Language == "es" {
		languageName = "Spanish"
	}

	return fmt.Sprintf(`Generate legal scripts for a %s scenario in %s.

Requirements:
- Language: %s
- Provide 4-6 specific phrases/scripts
- Include brief guidance on when to use each script
- Focus on constitutional rights (4th, 5th, 6th amendments)
- Emphasize de-escalation and safety
- Be concise and memorable
- Include region-specific considerations for %s

Format the response as JSON with this structure:
{
  "scripts": [
    {
      "text": "Script text here",
      "usage": "When to use this script",
      "priority": "high|medium|low"
    }
  ],
  "guidance": "General guidance for this scenario",
  "stateSpecific": "Region-specific legal considerations"
}`, req.Scenario, req.Region, languageName, req.Region)
}

// parseAdvice decodes the model output. Models do not always honor the JSON
// format, so a failed decode falls through to line-by-line extraction.
func parseAdvice(content, language string) *Advice {
	var a Advice
	if err := json.Unmarshal([]byte(content), &a); err == nil && len(a.Scripts) > 0 {
		a.Language = language
		a.Generated = true
		a.GeneratedAt = time.Now().UTC()
		return &a
	}
	return extractFromText(content, language)
}

func extractFromText(text, language string) *Advice {
	var list []Script
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.ContainsAny(line, `"•-`) {
			continue
		}
		clean := strings.Trim(strings.Map(func(r rune) rune {
			switch r {
			case '•', '-', '"':
				return -1
			}
			return r
		}, line), " \t")
		if len(clean) > 10 {
			list = append(list, Script{
				Text:     clean,
				Usage:    "Use when appropriate for the situation",
				Priority: "medium",
			})
		}
		if len(list) == maxScripts {
			break
		}
	}

	return &Advice{
		Scripts:       list,
		Guidance:      "AI-generated legal scripts. Always consult with a lawyer for specific legal advice.",
		StateSpecific: "Region-specific information may vary.",
		Language:      language,
		Generated:     true,
		GeneratedAt:   time.Now().UTC(),
	}
}
