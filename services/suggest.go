package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/avisser/personal-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const suggestSystemPrompt = `You generate metadata for a blog post. Given the
post title and content, respond with JSON only, no prose, in exactly this
shape:
{"excerpt": "<one or two sentences, max 500 characters>",
 "tags": ["<3-6 short lowercase tags>"],
 "category": "<one category name>",
 "seoMetadata": {"metaTitle": "<max 60 characters>",
   "metaDescription": "<max 160 characters>",
   "keywords": ["<5-10 keywords>"]}}`

// maxContentChars bounds how much post content is sent for analysis.
const maxContentChars = 8000

// suggestionPayload mirrors the JSON shape requested from the model.
type suggestionPayload struct {
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	SEOMetadata struct {
		MetaTitle       string   `json:"metaTitle"`
		MetaDescription string   `json:"metaDescription"`
		Keywords        []string `json:"keywords"`
	} `json:"seoMetadata"`
}

// SuggestService generates AI metadata suggestions for posts. The results
// are saved through the lifecycle manager as pending slots awaiting the
// author's approval.
type SuggestService struct {
	model  Model
	logger zerolog.Logger
}

func NewSuggestService(model Model) *SuggestService {
	return &SuggestService{
		model:  model,
		logger: log.With().Str("service", "suggest").Logger(),
	}
}

// SuggestMetadata analyzes the post and returns a full set of pending
// suggestion slots. Tags the author previously rejected are excluded from
// the prompt so the model does not offer them again; the accumulated
// rejectedTags list is carried over onto the new tags slot.
func (s *SuggestService) SuggestMetadata(ctx context.Context, post *models.BlogPost) (*models.AISuggestions, error) {
	content := post.Content
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var rejected []string
	if post.AISuggestions != nil && post.AISuggestions.Tags != nil {
		rejected = post.AISuggestions.Tags.RejectedTags
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\n", post.Title)
	if len(rejected) > 0 {
		fmt.Fprintf(&b, "Do not suggest any of these tags: %s\n\n", strings.Join(rejected, ", "))
	}
	fmt.Fprintf(&b, "Content:\n%s", content)

	raw, err := generateText(ctx, s.model, suggestSystemPrompt, b.String())
	if err != nil {
		s.logger.Error().Err(err).Str("postID", post.ID.String()).Msg("suggestion completion failed")
		return nil, err
	}

	var payload suggestionPayload
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		s.logger.Error().Err(err).Str("raw", raw).Msg("suggestion output was not valid JSON")
		return nil, errs.NewMalformedModelOutputError("metadata suggestion", err)
	}

	suggestions := &models.AISuggestions{
		Excerpt:  &models.TextSuggestion{Value: payload.Excerpt, State: models.SuggestionPending},
		Tags:     &models.TagSuggestion{Value: payload.Tags, State: models.SuggestionPending, RejectedTags: rejected},
		Category: &models.TextSuggestion{Value: payload.Category, State: models.SuggestionPending},
		SEOMetadata: &models.SEOSuggestions{
			MetaTitle:       &models.TextSuggestion{Value: payload.SEOMetadata.MetaTitle, State: models.SuggestionPending},
			MetaDescription: &models.TextSuggestion{Value: payload.SEOMetadata.MetaDescription, State: models.SuggestionPending},
			Keywords:        &models.ListSuggestion{Value: payload.SEOMetadata.Keywords, State: models.SuggestionPending},
		},
	}
	return suggestions, nil
}
