package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/David2024patton/studio4-dance/internal/core/domain"
	portssvc "github.com/David2024patton/studio4-dance/internal/core/ports/services"
	"github.com/sony/gobreaker"
)

// Client calls the Gemini generateContent REST API. Calls go through a circuit
// breaker so a degraded upstream fails fast instead of tying up requests.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

var _ portssvc.ChatGenerator = (*Client)(nil)

// NewClient creates a Gemini client for the given model.
func NewClient(apiKey, baseURL, model string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "Gemini",
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     time.Second * 30,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker:    breaker,
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *generateContent  `json:"system_instruction,omitempty"`
	Contents          []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the system prompt, prior turns and the new message to the
// model and returns its reply text.
func (c *Client) Generate(ctx context.Context, systemPrompt string, history []domain.ChatTurn, message string) (string, error) {
	contents := make([]generateContent, 0, len(history)*2+1)
	for _, turn := range history {
		contents = append(contents,
			generateContent{Role: "user", Parts: []generatePart{{Text: turn.UserMessage}}},
			generateContent{Role: "model", Parts: []generatePart{{Text: turn.Reply}}},
		)
	}
	contents = append(contents, generateContent{Role: "user", Parts: []generatePart{{Text: message}}})

	reqBody := generateRequest{Contents: contents}
	if systemPrompt != "" {
		reqBody.SystemInstruction = &generateContent{Parts: []generatePart{{Text: systemPrompt}}}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doGenerate(ctx, reqBody)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) doGenerate(ctx context.Context, reqBody generateRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read generate response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if genResp.Error != nil {
			msg = genResp.Error.Message
		}
		return "", fmt.Errorf("generate request returned %d: %s", resp.StatusCode, msg)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate response contained no candidates")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
