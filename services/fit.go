package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avisser/personal-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const fitSystemPrompt = `You assess how well the site owner fits a job
description. The owner's profile:

%s

Respond with JSON only, no prose, in exactly this shape:
{"score": <0-100 integer>, "summary": "<two sentences>",
 "strengths": ["..."], "gaps": ["..."]}`

// FitAssessment is the structured result of evaluating a job description
// against the owner's profile.
type FitAssessment struct {
	Score     int      `json:"score"`
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// FitService runs the job fit assessment. Input reaching AssessFit has
// already been cleared by the guardrail pipeline, including the scope check.
type FitService struct {
	model   Model
	profile string
	logger  zerolog.Logger
}

func NewFitService(model Model, profile string) *FitService {
	return &FitService{
		model:   model,
		profile: profile,
		logger:  log.With().Str("service", "fit").Logger(),
	}
}

// AssessFit evaluates the job description and parses the model's JSON reply.
func (s *FitService) AssessFit(ctx context.Context, jobDescription string) (*FitAssessment, error) {
	raw, err := generateText(ctx, s.model, fmt.Sprintf(fitSystemPrompt, s.profile), jobDescription)
	if err != nil {
		s.logger.Error().Err(err).Msg("fit assessment completion failed")
		return nil, err
	}

	var assessment FitAssessment
	if err := json.Unmarshal([]byte(extractJSON(raw)), &assessment); err != nil {
		s.logger.Error().Err(err).Str("raw", raw).Msg("fit assessment output was not valid JSON")
		return nil, errs.NewMalformedModelOutputError("fit assessment", err)
	}

	if assessment.Score < 0 {
		assessment.Score = 0
	}
	if assessment.Score > 100 {
		assessment.Score = 100
	}
	return &assessment, nil
}
