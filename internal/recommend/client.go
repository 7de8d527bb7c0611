// internal/recommend/client.go
package recommend

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

	"github.com/gestio-app/backend-go/internal/config"
)

const systemPrompt = "Você é um assistente de gestão de estoque. Reescreva os fatos numéricos a seguir em uma recomendação curta e clara em português para o lojista. Não calcule nem invente números: use somente os valores fornecidos."

// CompletionClient calls an OpenAI-compatible chat completion endpoint to
// phrase forecast facts. Any transport error or non-2xx status is reported as
// a plain error; the caller decides the fallback.
type CompletionClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewCompletionClient(cfg config.CompletionConfig) (*CompletionClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("completion api key is empty")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &CompletionClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize implements Summarizer over the chat completion endpoint.
func (c *CompletionClient) Summarize(ctx context.Context, facts Facts) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: renderFacts(facts)},
		},
	})
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion api returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// renderFacts lists the pre-computed figures, one per line. Nothing here asks
// the model to derive values.
func renderFacts(facts Facts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "produto: %s\n", facts.ItemName)
	fmt.Fprintf(&b, "estoque atual: %s unidades\n", formatQty(facts.OnHand))
	fmt.Fprintf(&b, "venda média diária: %s unidades\n", formatQty(facts.DailyVelocity))
	if facts.DaysRemaining != nil {
		fmt.Fprintf(&b, "dias até esgotar: %s\n", formatQty(*facts.DaysRemaining))
	}
	if facts.StockoutDate != nil {
		fmt.Fprintf(&b, "data prevista de esgotamento: %s\n", facts.StockoutDate.Format("02/01/2006"))
	}
	if facts.Exposure.IsPositive() {
		fmt.Fprintf(&b, "perda estimada: R$ %s\n", facts.Exposure.StringFixed(2))
	}
	return b.String()
}
