package services

import (
	"context"
	"strings"

	"github.com/avisser/personal-site-backend/config"
	"github.com/avisser/personal-site-backend/errs"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultLLMRate     = 2 // requests per second, across all endpoints
	defaultLLMBurst    = 4
	defaultResponseCap = 4096
)

// Model is the minimal LLM surface the services depend on. Satisfied by any
// langchaingo llms.Model; tests substitute a stub.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// rateLimitedModel guards the upstream API with a client-side token bucket so
// a burst of site traffic cannot blow through the provider's quota.
type rateLimitedModel struct {
	inner   Model
	limiter *rate.Limiter
}

func (m *rateLimitedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return m.inner.GenerateContent(ctx, messages, options...)
}

// NewModel builds the production LLM client from config. OPENAI_API_KEY must
// be set; LLM_MODEL overrides the default model name.
func NewModel(c map[string]string) (Model, error) {
	token := config.GetString(c, "OPENAI_API_KEY", "")
	if token == "" {
		return nil, errs.NewEnvironmentVariableError("OPENAI_API_KEY")
	}

	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithModel(config.GetString(c, "LLM_MODEL", defaultModel)),
	)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to initialize LLM client", err)
	}

	rps := config.GetInt(c, "LLM_REQUESTS_PER_SECOND", defaultLLMRate)
	burst := config.GetInt(c, "LLM_BURST", defaultLLMBurst)
	return &rateLimitedModel{
		inner:   llm,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// generateText runs a simple system+user exchange and returns the first
// choice's text.
func generateText(ctx context.Context, model Model, system, user string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := model.GenerateContent(ctx, messages, llms.WithMaxTokens(defaultResponseCap))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errs.NewModelOverloadedError("llm")
	}
	return resp.Choices[0].Content, nil
}

// extractJSON strips markdown code fences that chat models like to wrap
// around JSON output.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
