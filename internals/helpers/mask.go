package helper

import (
	"regexp"
	"strings"
)

const Masked = "********"

var sensitiveKeyParts = []string{
	"password",
	"token",
	"key",
	"secret",
	"credential",
	"private",
	"signature",
}

// IsSensitiveKey cocok kalau nama key mengandung salah satu kata sensitif (case-insensitive).
func IsSensitiveKey(k string) bool {
	k = strings.ToLower(k)
	for _, p := range sensitiveKeyParts {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}

// MaskSensitive returns a deep copy of v with sensitive values replaced.
// Maps and slices are walked recursively; email-looking strings are partially redacted.
func MaskSensitive(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitiveKey(k) {
				out[k] = Masked
				continue
			}
			out[k] = MaskSensitive(val)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitiveKey(k) {
				out[k] = Masked
				continue
			}
			out[k] = MaskSensitive(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = MaskSensitive(val)
		}
		return out
	case string:
		return ScrubText(t)
	default:
		return v
	}
}

// MaskEmail: "jane.doe@example.com" -> "j***@example.com"
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}
	return email[:1] + "***" + email[at:]
}

var (
	emailInText  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	bearerInText = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`)
	secretInText = regexp.MustCompile(`(?i)\b([a-z_]*(?:password|token|secret|api_?key|signature)[a-z_]*)\s*[=:]\s*("[^"]*"|[^\s,;&]+)`)
)

// ScrubText menyamarkan email, bearer token, dan pasangan key=value sensitif di dalam teks bebas
// (pesan error, body response provider).
func ScrubText(s string) string {
	if s == "" {
		return s
	}
	s = secretInText.ReplaceAllString(s, "${1}="+Masked)
	s = bearerInText.ReplaceAllString(s, "Bearer "+Masked)
	return emailInText.ReplaceAllStringFunc(s, MaskEmail)
}
