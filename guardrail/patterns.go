package guardrail

import (
	"fmt"
	"regexp"
	"strings"
)

// suspiciousPatterns are classic injection/XSS signatures. These are scanned
// before the prompt-injection list because a payload matching one of these is
// hostile regardless of what it asks the model to do.
var suspiciousPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"script tag", regexp.MustCompile(`(?i)<\s*/?\s*script\b`)},
	{"iframe tag", regexp.MustCompile(`(?i)<\s*iframe\b`)},
	{"event handler attribute", regexp.MustCompile(`(?i)\bon(?:error|load|click|mouseover|focus|submit)\s*=`)},
	{"javascript: URL", regexp.MustCompile(`(?i)javascript\s*:`)},
	{"data: URL with script", regexp.MustCompile(`(?i)data:\s*text/html`)},
	{"SQL union select", regexp.MustCompile(`(?i)\bunion\s+(?:all\s+)?select\b`)},
	{"SQL drop/truncate", regexp.MustCompile(`(?i)\b(?:drop|truncate)\s+table\b`)},
	{"SQL comment terminator", regexp.MustCompile(`(?i)(?:'|")\s*;?\s*--`)},
	{"SQL or-true fragment", regexp.MustCompile(`(?i)'\s*or\s+'?1'?\s*=\s*'?1`)},
	{"shell command substitution", regexp.MustCompile("\\$\\(|`[^`]+`")},
	{"shell command chaining", regexp.MustCompile(`(?i)(?:;|&&|\|\|)\s*(?:rm|curl|wget|nc|bash|sh|powershell)\b`)},
	{"path traversal", regexp.MustCompile(`\.\./\.\./`)},
}

// promptInjectionPhrases is the curated list of known prompt-injection
// phrasings: role overrides, instruction resets and jailbreak markers.
// Matched case-insensitively as substrings.
var promptInjectionPhrases = []string{
	"ignore previous instructions",
	"ignore all previous instructions",
	"ignore the previous instructions",
	"ignore prior instructions",
	"ignore your instructions",
	"ignore all instructions",
	"disregard previous instructions",
	"disregard all previous",
	"disregard the above",
	"disregard your instructions",
	"forget your instructions",
	"forget all previous instructions",
	"forget everything above",
	"override your instructions",
	"new instructions:",
	"your new instructions",
	"you are now",
	"you're now",
	"from now on you",
	"act as if you",
	"act as a different",
	"pretend to be",
	"pretend you are",
	"pretend that you",
	"roleplay as",
	"role-play as",
	"simulate being",
	"you must obey",
	"you will obey",
	"system prompt",
	"system message",
	"reveal your prompt",
	"reveal your instructions",
	"show me your instructions",
	"print your instructions",
	"repeat your instructions",
	"what are your instructions",
	"jailbreak",
	"jail break",
	"dan mode",
	"developer mode",
	"do anything now",
	"no restrictions",
	"without any restrictions",
	"bypass your guidelines",
	"bypass your filters",
	"ignore your guidelines",
	"ignore your programming",
	"unfiltered response",
	"stay in character",
	"hypothetically, if you had no",
	"begin your response with",
	"start your response with",
	"end of instructions",
	"above instructions are void",
}

// scopeKeywords are employment-domain terms. The job fit endpoint requires a
// minimum number of distinct hits so arbitrary text cannot be laundered
// through it.
var scopeKeywords = []string{
	"job", "role", "position", "career", "vacancy", "opening", "opportunity",
	"hire", "hiring", "recruit", "recruiter", "recruiting", "candidate",
	"employment", "employer", "employee", "company", "team", "department",
	"salary", "compensation", "pay", "benefits", "equity", "bonus",
	"experience", "skill", "skills", "qualification", "qualifications",
	"responsibilities", "requirements", "duties", "expectations",
	"engineer", "engineering", "developer", "development", "software",
	"backend", "frontend", "fullstack", "full-stack", "devops", "manager",
	"remote", "hybrid", "onsite", "on-site", "relocation", "interview",
	"resume", "cv", "application", "apply", "work", "working",
}

// minScopeHits is the number of distinct scope keywords required for an
// input to count as an employment-domain text.
const minScopeHits = 3

func checkSuspiciousPatterns(input string) *Violation {
	for _, p := range suspiciousPatterns {
		if loc := p.re.FindString(input); loc != "" {
			return &Violation{
				Type:           ViolationSuspiciousPattern,
				Severity:       severityFor[ViolationSuspiciousPattern],
				Category:       "Suspicious pattern detection",
				Explanation:    "Rejects inputs carrying injection or XSS payloads so they are never stored, echoed back, or forwarded to downstream services.",
				Detected:       fmt.Sprintf("%s: %q", p.name, loc),
				Implementation: "Case-insensitive regular expression scan against a fixed list of script-tag, event-handler, SQL and shell injection signatures.",
				Source:         SourceRef{File: "guardrail/patterns.go", Lines: "12-33"},
			}
		}
	}
	return nil
}

func checkPromptInjection(input string) *Violation {
	lowered := strings.ToLower(input)
	for _, phrase := range promptInjectionPhrases {
		if strings.Contains(lowered, phrase) {
			return &Violation{
				Type:           ViolationPromptInjection,
				Severity:       severityFor[ViolationPromptInjection],
				Category:       "Prompt injection detection",
				Explanation:    "Blocks known phrasings that try to override the assistant's instructions, extract its system prompt, or unlock jailbreak personas.",
				Detected:       fmt.Sprintf("known prompt-injection phrasing: %q", phrase),
				Implementation: "Case-insensitive substring scan against a curated list of role-override, instruction-reset and jailbreak phrasings.",
				Source:         SourceRef{File: "guardrail/patterns.go", Lines: "38-92"},
			}
		}
	}
	return nil
}

func checkScope(input string) *Violation {
	lowered := strings.ToLower(input)
	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-')
	})
	present := map[string]bool{}
	for _, w := range words {
		present[w] = true
	}

	hits := 0
	for _, kw := range scopeKeywords {
		if present[kw] {
			hits++
			if hits >= minScopeHits {
				return nil
			}
		}
	}
	return &Violation{
		Type:           ViolationScopeEnforcement,
		Severity:       severityFor[ViolationScopeEnforcement],
		Category:       "Scope enforcement",
		Explanation:    "The fit assessment endpoint only evaluates job descriptions; unrelated text is rejected rather than burning LLM tokens on it.",
		Detected:       fmt.Sprintf("only %d of the required %d employment-domain keywords found", hits, minScopeHits),
		Implementation: "Tokenizes the input and counts distinct matches against an employment-domain keyword list; below the threshold the input is treated as out of scope.",
		Source:         SourceRef{File: "guardrail/patterns.go", Lines: "97-112"},
	}
}
