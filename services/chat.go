package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
)

const chatSystemPrompt = `You are the assistant on a personal portfolio site.
You answer questions about the site owner's background, projects, technical
stack and writing, based on the profile below. Keep answers short and
factual. If a question is unrelated to the owner or their work, say you can
only help with questions about this site.

Profile:
%s`

// ChatMessage is one turn of the conversation, as sent by the frontend.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatService answers visitor questions about the site owner. Input reaching
// Chat has already been cleared by the guardrail pipeline.
type ChatService struct {
	model   Model
	profile string
	logger  zerolog.Logger
}

func NewChatService(model Model, profile string) *ChatService {
	return &ChatService{
		model:   model,
		profile: profile,
		logger:  log.With().Str("service", "chat").Logger(),
	}
}

// Chat sends the conversation to the model and returns the assistant reply.
// History is replayed as-is; the caller bounds its size.
func (s *ChatService) Chat(ctx context.Context, history []ChatMessage, message string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, fmt.Sprintf(chatSystemPrompt, s.profile)),
	}
	for _, m := range history {
		role := llms.ChatMessageTypeHuman
		if strings.EqualFold(m.Role, "assistant") {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, message))

	resp, err := s.model.GenerateContent(ctx, messages, llms.WithMaxTokens(defaultResponseCap))
	if err != nil {
		s.logger.Error().Err(err).Msg("chat completion failed")
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
