// Package guardrail validates free-text user input before it reaches an
// LLM-backed endpoint. The pipeline is a fixed-order fail-fast chain: the
// first failing stage produces a Violation and nothing later runs, so a bad
// input never costs an LLM call.
package guardrail

import (
	"fmt"
	"html"
	"time"
)

type ViolationType string

const (
	ViolationRateLimit         ViolationType = "rate_limit"
	ViolationLengthValidation  ViolationType = "length_validation"
	ViolationSuspiciousPattern ViolationType = "suspicious_pattern"
	ViolationPromptInjection   ViolationType = "prompt_injection"
	ViolationScopeEnforcement  ViolationType = "scope_enforcement"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// severityFor is fixed per violation type.
var severityFor = map[ViolationType]Severity{
	ViolationRateLimit:         SeverityMedium,
	ViolationLengthValidation:  SeverityLow,
	ViolationSuspiciousPattern: SeverityHigh,
	ViolationPromptInjection:   SeverityHigh,
	ViolationScopeEnforcement:  SeverityLow,
}

// SourceRef points a UI "learn more" link at the code implementing the check.
// Presentational metadata only; nothing reads it back.
type SourceRef struct {
	File  string `json:"file"`
	Lines string `json:"lines"`
}

// RateLimitDetail is attached to rate_limit violations.
type RateLimitDetail struct {
	CurrentCount int `json:"currentCount"`
	Limit        int `json:"limit"`
	// RetryAfter is in whole seconds, ready for a Retry-After header.
	RetryAfter int `json:"retryAfter"`
}

// LengthDetail is attached to length_validation violations.
type LengthDetail struct {
	InputLength int `json:"inputLength"`
	MinLength   int `json:"minLength"`
	MaxLength   int `json:"maxLength"`
	// Overage is how far past the maximum the input ran; zero for too-short.
	Overage int `json:"overage"`
}

// Violation describes exactly one failed stage. Per the fail-fast design a
// check never reports multiple simultaneous violations.
type Violation struct {
	Type           ViolationType    `json:"type"`
	Severity       Severity         `json:"severity"`
	Category       string           `json:"category"`
	Explanation    string           `json:"explanation"`
	Detected       string           `json:"detected"`
	Implementation string           `json:"implementation"`
	Source         SourceRef        `json:"source"`
	RateLimit      *RateLimitDetail `json:"rateLimit,omitempty"`
	Length         *LengthDetail    `json:"length,omitempty"`
}

// Config is the per-endpoint tuning of the pipeline.
type Config struct {
	MinLength int
	MaxLength int
	// EnforceScope requires the input to look like employment-domain text
	// (used by the job fit assessment endpoint only).
	EnforceScope bool
}

// ChatConfig is the pipeline tuning for the chat assistant endpoint.
func ChatConfig() Config {
	return Config{MinLength: 1, MaxLength: 2000}
}

// FitConfig is the pipeline tuning for the job fit assessment endpoint.
func FitConfig() Config {
	return Config{MinLength: 50, MaxLength: 10000, EnforceScope: true}
}

// Pipeline applies the validation chain. The rate limiter may be shared
// between pipelines; everything else is stateless.
type Pipeline struct {
	limiter *RateLimiter
	cfg     Config
}

func NewPipeline(limiter *RateLimiter, cfg Config) *Pipeline {
	return &Pipeline{limiter: limiter, cfg: cfg}
}

// Check runs the stages in pinned order: rate limit, length, suspicious
// pattern, prompt injection, scope. On success it returns the HTML-escaped
// input; on failure the violation of the first stage that tripped. Apart from
// the rate counter increment inherent to stage one, failure has no side
// effects.
func (p *Pipeline) Check(clientKey, input string) (string, *Violation) {
	if v := p.checkRateLimit(clientKey); v != nil {
		return "", v
	}
	if v := p.checkLength(input); v != nil {
		return "", v
	}
	if v := checkSuspiciousPatterns(input); v != nil {
		return "", v
	}
	if v := checkPromptInjection(input); v != nil {
		return "", v
	}
	if p.cfg.EnforceScope {
		if v := checkScope(input); v != nil {
			return "", v
		}
	}
	return html.EscapeString(input), nil
}

func (p *Pipeline) checkRateLimit(clientKey string) *Violation {
	decision := p.limiter.Allow(clientKey)
	if decision.Allowed {
		return nil
	}
	retryAfter := int(decision.RetryAfter / time.Second)
	if decision.RetryAfter%time.Second > 0 {
		retryAfter++
	}
	return &Violation{
		Type:           ViolationRateLimit,
		Severity:       severityFor[ViolationRateLimit],
		Category:       "Rate limiting",
		Explanation:    "Caps how often one client can call the LLM endpoints, protecting the service from abuse and runaway API costs.",
		Detected:       fmt.Sprintf("%d requests inside the current %v window (limit %d)", decision.CurrentCount, p.limiter.Window(), p.limiter.Limit()),
		Implementation: "Per-client sliding window: request timestamps are kept per key and pruned as the window moves; the request is rejected once the window holds the configured limit.",
		Source:         SourceRef{File: "guardrail/ratelimit.go", Lines: "24-78"},
		RateLimit: &RateLimitDetail{
			CurrentCount: decision.CurrentCount,
			Limit:        p.limiter.Limit(),
			RetryAfter:   retryAfter,
		},
	}
}

func (p *Pipeline) checkLength(input string) *Violation {
	length := len(input)
	if length >= p.cfg.MinLength && length <= p.cfg.MaxLength {
		return nil
	}

	detail := &LengthDetail{InputLength: length, MinLength: p.cfg.MinLength, MaxLength: p.cfg.MaxLength}
	detected := fmt.Sprintf("Input of %d characters is below the minimum of %d", length, p.cfg.MinLength)
	if length > p.cfg.MaxLength {
		detail.Overage = length - p.cfg.MaxLength
		detected = fmt.Sprintf("Input of %d characters exceeds the maximum of %d by %d", length, p.cfg.MaxLength, detail.Overage)
	}
	return &Violation{
		Type:           ViolationLengthValidation,
		Severity:       severityFor[ViolationLengthValidation],
		Category:       "Length validation",
		Explanation:    "Bounds the size of text forwarded to the LLM so a single request cannot exhaust the model's context window or inflate token costs.",
		Detected:       detected,
		Implementation: "Byte-length comparison against the endpoint's configured [min, max] range.",
		Source:         SourceRef{File: "guardrail/guardrail.go", Lines: "160-185"},
		Length:         detail,
	}
}
