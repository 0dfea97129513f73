package survey

import "strings"

// Pattern is one security issue class with the phrases that signal a
// reviewer commented on it.
type Pattern struct {
	Name     string
	Keywords []string
}

// securityPatterns is the coverage table the survey scores against. A
// model "covers" a pattern when any of its comments mentions one of the
// pattern's phrases.
var securityPatterns = []Pattern{
	{"sql_injection", []string{"sql injection", "sql", "injection", "query"}},
	{"xss", []string{"xss", "cross-site scripting", "script injection", "html injection"}},
	{"command_injection", []string{"command injection", "exec", "shell injection"}},
	{"path_traversal", []string{"path traversal", "directory traversal", "../"}},
	{"hardcoded_secrets", []string{"hardcoded", "api key", "password", "secret"}},
	{"weak_crypto", []string{"md5", "weak hash", "crypto", "encryption"}},
	{"insecure_random", []string{"random", "math.random", "insecure random"}},
	{"missing_validation", []string{"validation", "input validation", "sanitization"}},
	{"information_disclosure", []string{"stack trace", "error disclosure", "information leak"}},
	{"insecure_upload", []string{"file upload", "upload", "file validation"}},
	{"missing_auth", []string{"authentication", "authorization", "access control"}},
	{"race_condition", []string{"race condition", "concurrency", "thread safety"}},
	{"deserialization", []string{"deserialization", "eval", "unsafe deserialization"}},
	{"rate_limiting", []string{"rate limit", "brute force", "ddos"}},
	{"open_redirect", []string{"redirect", "open redirect"}},
	{"ldap_injection", []string{"ldap", "ldap injection"}},
	{"xxe", []string{"xxe", "xml external entity", "xml injection"}},
	{"insecure_storage", []string{"base64", "insecure storage", "encryption"}},
	{"csrf", []string{"csrf", "cross-site request forgery"}},
	{"session_management", []string{"session", "session management"}},
	{"buffer_overflow", []string{"buffer overflow", "buffer"}},
	{"timing_attack", []string{"timing attack", "side-channel"}},
	{"insecure_config", []string{"configuration", "logging secrets"}},
	{"redos", []string{"redos", "regex", "regular expression"}},
	{"privilege_escalation", []string{"privilege", "escalation", "admin role"}},
}

// securityFocus marks a comment as security-oriented.
var securityFocus = []string{
	"sql injection", "xss", "cross-site scripting", "vulnerability",
	"security", "injection", "hardcoded", "password", "secret",
	"authentication", "authorization", "csrf", "path traversal",
}

// qualityFocus marks a comment as a code-quality suggestion.
var qualityFocus = []string{
	"refactor", "improve", "optimize", "performance", "maintainability",
	"readability", "best practice", "convention", "pattern",
}

// detailedThreshold is the body length above which a comment counts as a
// detailed finding rather than a drive-by note.
const detailedThreshold = 100

// SecurityPatterns returns a copy of the coverage table.
func SecurityPatterns() []Pattern {
	out := make([]Pattern, len(securityPatterns))
	for i, p := range securityPatterns {
		out[i] = Pattern{Name: p.Name, Keywords: append([]string(nil), p.Keywords...)}
	}
	return out
}

// PatternCount is the number of patterns in the coverage table.
func PatternCount() int {
	return len(securityPatterns)
}

func matchesAny(body string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(body, kw) {
			return true
		}
	}
	return false
}
