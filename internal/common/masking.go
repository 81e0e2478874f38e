package common

import (
	"regexp"
	"strings"
)

const maskedValue = "***MASKED***"

// sensitivePattern pairs a regex with the attribute keys it guards.
type sensitivePattern struct {
	regex       *regexp.Regexp
	replacement string
	keys        []string
}

// The harness routinely logs request headers and auth material, so the
// default set focuses on credential-shaped values.
var defaultSensitivePatterns = []sensitivePattern{
	{
		regex:       regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
		replacement: "Bearer " + maskedValue,
	},
	{
		regex:       regexp.MustCompile(`(?i)Basic\s+[A-Za-z0-9+/]+=*`),
		replacement: "Basic " + maskedValue,
	},
	{
		regex:       regexp.MustCompile(`(?i)(authorization|token|access[_-]?token)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		replacement: `${1}":"` + maskedValue + `"`,
		keys:        []string{"authorization", "token", "access_token"},
	},
	{
		regex:       regexp.MustCompile(`(?i)(password|client[_-]?secret|secret)["'\s]*[:=]["'\s]*([^"',}\]\s]+)`),
		replacement: `${1}":"` + maskedValue + `"`,
		keys:        []string{"password", "secret", "client_secret"},
	},
}

// Masker hides credential-shaped values before they reach a log sink.
type Masker struct {
	patterns []sensitivePattern
	enabled  bool
}

// NewMasker creates a masker with the default pattern set.
func NewMasker() *Masker {
	return &Masker{patterns: defaultSensitivePatterns, enabled: true}
}

// SetEnabled enables or disables masking.
func (m *Masker) SetEnabled(enabled bool) { m.enabled = enabled }

// IsEnabled returns whether masking is enabled.
func (m *Masker) IsEnabled() bool { return m.enabled }

// MaskString masks sensitive material inside an arbitrary string.
func (m *Masker) MaskString(input string) string {
	if !m.enabled {
		return input
	}
	out := input
	for _, p := range m.patterns {
		out = p.regex.ReplaceAllString(out, p.replacement)
	}
	return out
}

// MaskValue masks a log attribute value given its key. Keys from the
// sensitive set are masked wholesale; other string values are scanned.
func (m *Masker) MaskValue(key string, value any) any {
	if !m.enabled {
		return value
	}
	lower := strings.ToLower(key)
	for _, p := range m.patterns {
		for _, k := range p.keys {
			if lower == k {
				return maskedValue
			}
		}
	}
	if s, ok := value.(string); ok {
		return m.MaskString(s)
	}
	return value
}
