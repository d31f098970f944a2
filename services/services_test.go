package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// stubModel returns a canned response and records the messages it was sent.
type stubModel struct {
	response string
	err      error
	messages []llms.MessageContent
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.response}},
	}, nil
}

func promptText(messages []llms.MessageContent) string {
	var b strings.Builder
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				b.WriteString(text.Text)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}

func TestSuggestMetadata(t *testing.T) {
	model := &stubModel{response: `{
		"excerpt": "A tour of the storage layer.",
		"tags": ["go", "postgres"],
		"category": "Engineering",
		"seoMetadata": {
			"metaTitle": "Storage Layer Tour",
			"metaDescription": "How the storage layer works.",
			"keywords": ["go", "postgres", "storage"]
		}
	}`}
	svc := NewSuggestService(model)

	post := &models.BlogPost{
		ID:      uuid.New(),
		Title:   "Storage Layer",
		Content: "body text",
	}
	suggestions, err := svc.SuggestMetadata(context.Background(), post)
	require.NoError(t, err)

	assert.Equal(t, "A tour of the storage layer.", suggestions.Excerpt.Value)
	assert.Equal(t, models.SuggestionPending, suggestions.Excerpt.State)
	assert.Equal(t, []string{"go", "postgres"}, suggestions.Tags.Value)
	assert.Equal(t, models.SuggestionPending, suggestions.Tags.State)
	assert.Equal(t, "Engineering", suggestions.Category.Value)
	assert.Equal(t, "Storage Layer Tour", suggestions.SEOMetadata.MetaTitle.Value)
	assert.Equal(t, []string{"go", "postgres", "storage"}, suggestions.SEOMetadata.Keywords.Value)
}

func TestSuggestMetadataCarriesRejectedTags(t *testing.T) {
	model := &stubModel{response: `{"excerpt":"x","tags":["fresh"],"category":"c",
		"seoMetadata":{"metaTitle":"t","metaDescription":"d","keywords":["k"]}}`}
	svc := NewSuggestService(model)

	post := &models.BlogPost{
		ID:      uuid.New(),
		Title:   "Post",
		Content: "body",
		AISuggestions: &models.AISuggestions{
			Tags: &models.TagSuggestion{
				Value:        []string{"old"},
				State:        models.SuggestionRejected,
				RejectedTags: []string{"clickbait", "listicle"},
			},
		},
	}
	suggestions, err := svc.SuggestMetadata(context.Background(), post)
	require.NoError(t, err)

	prompt := promptText(model.messages)
	assert.Contains(t, prompt, "clickbait, listicle", "rejected tags are excluded via the prompt")
	assert.Equal(t, []string{"clickbait", "listicle"}, suggestions.Tags.RejectedTags, "rejection history survives regeneration")
	assert.Equal(t, []string{"fresh"}, suggestions.Tags.Value)
}

func TestSuggestMetadataMalformedOutput(t *testing.T) {
	model := &stubModel{response: "Sure! Here are some tags you could use."}
	svc := NewSuggestService(model)

	_, err := svc.SuggestMetadata(context.Background(), &models.BlogPost{ID: uuid.New(), Title: "t", Content: "c"})
	require.Error(t, err)
	assert.True(t, errs.IsMalformedModelOutput(err))
}

func TestSuggestMetadataTruncatesContent(t *testing.T) {
	model := &stubModel{response: `{"excerpt":"x","tags":[],"category":"",
		"seoMetadata":{"metaTitle":"","metaDescription":"","keywords":[]}}`}
	svc := NewSuggestService(model)

	post := &models.BlogPost{ID: uuid.New(), Title: "t", Content: strings.Repeat("a", maxContentChars+500)}
	_, err := svc.SuggestMetadata(context.Background(), post)
	require.NoError(t, err)

	prompt := promptText(model.messages)
	assert.Less(t, len(prompt), maxContentChars+1000, "content sent for analysis is bounded")
}

func TestAssessFit(t *testing.T) {
	model := &stubModel{response: "```json\n" + `{"score": 82, "summary": "Strong match.",
		"strengths": ["Go", "APIs"], "gaps": ["Kubernetes"]}` + "\n```"}
	svc := NewFitService(model, "profile text")

	assessment, err := svc.AssessFit(context.Background(), "Backend engineer role")
	require.NoError(t, err)
	assert.Equal(t, 82, assessment.Score)
	assert.Equal(t, "Strong match.", assessment.Summary)
	assert.Equal(t, []string{"Go", "APIs"}, assessment.Strengths)
	assert.Equal(t, []string{"Kubernetes"}, assessment.Gaps)

	prompt := promptText(model.messages)
	assert.Contains(t, prompt, "profile text")
}

func TestAssessFitClampsScore(t *testing.T) {
	model := &stubModel{response: `{"score": 140, "summary": "s", "strengths": [], "gaps": []}`}
	svc := NewFitService(model, "")

	assessment, err := svc.AssessFit(context.Background(), "role")
	require.NoError(t, err)
	assert.Equal(t, 100, assessment.Score)
}

func TestChatReplaysHistory(t *testing.T) {
	model := &stubModel{response: "I mostly write Go."}
	svc := NewChatService(model, "profile text")

	history := []ChatMessage{
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello! Ask me about the site owner."},
	}
	reply, err := svc.Chat(context.Background(), history, "What languages do you use?")
	require.NoError(t, err)
	assert.Equal(t, "I mostly write Go.", reply)

	require.Len(t, model.messages, 4) // system + 2 history turns + new message
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, model.messages[2].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[3].Role)
}

func TestChatPropagatesModelError(t *testing.T) {
	model := &stubModel{err: errors.New("upstream unavailable")}
	svc := NewChatService(model, "")

	_, err := svc.Chat(context.Background(), nil, "hello")
	assert.Error(t, err)
}
