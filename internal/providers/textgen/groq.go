package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/domain"
)

const (
	groqDefaultBaseURL = "https://api.groq.com/openai/v1"
	groqDefaultModel   = "llama-3.3-70b-versatile"
	groqDefaultTimeout = 15 * time.Second
	groqTemperature    = 0.2
)

// GroqOptions configures the Groq chat-completion client.
type GroqOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// GroqClient calls the Groq OpenAI-compatible chat-completions endpoint.
// A missing API key is tolerated at construction so the binary can boot in
// unconfigured environments; every call then fails before touching the
// network.
type GroqClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []groqMessage `json:"messages"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

// NewGroqClient builds a client, filling unset options with production defaults.
func NewGroqClient(opts GroqOptions) *GroqClient {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = groqDefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = groqDefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: groqDefaultTimeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &GroqClient{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

func (g *GroqClient) ProviderName() string { return groqProviderName }

func (g *GroqClient) ModelName() string { return g.model }

// chat performs one chat-completion round trip and returns the raw assistant
// content plus usage accounting when the response carries it.
func (g *GroqClient) chat(ctx context.Context, systemPrompt, userPrompt string) (string, *Usage, error) {
	if g.apiKey == "" {
		return "", nil, domain.NewProviderError("missing GROQ_API_KEY for live provider")
	}
	payload := groqChatRequest{
		Model:       g.model,
		Temperature: groqTemperature,
		Messages: []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", nil, domain.NewProviderError(fmt.Sprintf("encode groq request: %v", err))
	}
	endpoint := g.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", nil, domain.NewProviderError(fmt.Sprintf("build groq request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	g.logger.Debug().Str("model", g.model).Msg("groq request")
	resp, err := g.client.Do(req)
	if err != nil {
		return "", nil, domain.NewProviderError(fmt.Sprintf("groq request failed: %v", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Warn().Int("status", resp.StatusCode).Bytes("body", body).Msg("groq error response")
		return "", nil, domain.NewProviderError(fmt.Sprintf("groq api error: %d %s", resp.StatusCode, body))
	}
	var out groqChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, domain.NewProviderError("invalid groq response structure")
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", nil, domain.NewProviderError("invalid groq response structure")
	}
	content := *out.Choices[0].Message.Content
	g.logger.Debug().Int("content_len", len(content)).Msg("groq response")
	return content, out.Usage, nil
}

func (g *GroqClient) ExtractOptions(ctx context.Context, prompt string) (domain.PromptOptions, *Usage, error) {
	content, usage, err := g.chat(ctx, extractSystemPrompt, prompt)
	if err != nil {
		return domain.PromptOptions{}, nil, err
	}
	payload, err := extractJSONObject(content)
	if err != nil {
		return domain.PromptOptions{}, nil, err
	}
	return coerceOptions(payload), usage, nil
}

func (g *GroqClient) EnhancePrompt(ctx context.Context, prompt string, options domain.PromptOptions) (string, *Usage, error) {
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return "", nil, domain.NewProviderError(fmt.Sprintf("encode options: %v", err))
	}
	user := fmt.Sprintf("Original prompt:\n%s\n\nResolved options JSON:\n%s", prompt, optionsJSON)
	content, usage, err := g.chat(ctx, enhanceSystemPrompt, user)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(content), usage, nil
}

func (g *GroqClient) GenerateScript(ctx context.Context, prompt string, options *domain.PromptOptions) (string, *Usage, error) {
	user := prompt
	if options != nil {
		user = fmt.Sprintf("Constraints:\n%s\n\nPrompt:\n%s", renderConstraints(*options), prompt)
	}
	content, usage, err := g.chat(ctx, scriptSystemPrompt, user)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(content), usage, nil
}

var _ Generator = (*GroqClient)(nil)
