// Package security implements the Security Scanner (C6): a line-oriented
// regex sweep for credential-shaped content, with ignore-line heuristics
// and first-4/last-4 masking. Patterns are grounded on the secret-redaction
// rules used across the retrieval pack's extraction tools (notably
// other_examples/d466cd87_handleui-detent__apps-cli-internal-extract-extractor.go.go,
// which pairs an AKIA access-key regex with a generic key/token/secret
// catch-all).
package security

import (
	"regexp"
	"strings"

	"github.com/codeconcat/codeconcat/internal/model"
)

// finding describes one compiled secret pattern.
type finding struct {
	issueType string
	pattern   *regexp.Regexp
	// group is the capture group index holding the secret value to mask;
	// 0 means mask the whole match.
	group int
}

var findings = []finding{
	{
		issueType: "AWS Key",
		pattern:   regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	},
	{
		issueType: "AWS Secret Key",
		pattern:   regexp.MustCompile(`(?i)aws_secret_access_key\s*[:=]\s*['"]?([A-Za-z0-9/+=]{40})['"]?`),
		group:     1,
	},
	{
		issueType: "GitHub Token",
		pattern:   regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{20,}`),
	},
	{
		issueType: "Generic API Key",
		pattern:   regexp.MustCompile(`(?i)(?:api[_-]?key|apikey)\s*[:=]\s*['"]?([A-Za-z0-9_\-]{16,})['"]?`),
		group:     1,
	},
	{
		issueType: "Generic Secret",
		pattern:   regexp.MustCompile(`(?i)(?:password|passwd|pwd|token|secret)\s*[:=]\s*['"]?([A-Za-z0-9_\-]{16,})['"]?`),
		group:     1,
	},
	{
		issueType: "Private Key",
		pattern:   regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH |DSA |)PRIVATE KEY-----`),
	},
	{
		issueType: "HTTP Basic Auth",
		pattern:   regexp.MustCompile(`(?i)Authorization:\s*Basic\s+([A-Za-z0-9+/=]{8,})`),
		group:     1,
	},
	{
		issueType: "HTTP Bearer Token",
		pattern:   regexp.MustCompile(`(?i)Authorization:\s*Bearer\s+([A-Za-z0-9_\-.\+/=]{8,})`),
		group:     1,
	},
}

// ignoreLine suppresses a finding when it matches anywhere on the line
// (spec 4.6's example/sample/test/dummy/fake/mock and placeholder-host
// heuristics).
var ignoreLine = regexp.MustCompile(`(?i)(example|sample|test|dummy|fake|mock|your[_-]?\w*[_-]?key[_-]?here|x{3,}|\*\.example\.com|example\.com)`)

// Scan runs the regex sweep over content and appends any findings to
// rec.SecurityIssues, masking the secret portion of each matched line.
// Scan never modifies rec.Content (spec 4.6: "advisory... never modifies
// content").
func Scan(rec *model.FileRecord) {
	lines := strings.Split(rec.Content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		for _, f := range findings {
			loc := f.pattern.FindStringSubmatchIndex(trimmed)
			if loc == nil {
				continue
			}
			start, end := loc[0], loc[1]
			if f.group > 0 && loc[2*f.group] >= 0 {
				start, end = loc[2*f.group], loc[2*f.group+1]
			}
			// The ignore heuristic looks at the line with the matched
			// secret excised, so an ignore word that only happens to
			// appear inside the secret itself (e.g. the literal
			// "EXAMPLE" suffix AWS ships in its documented fake access
			// key) doesn't suppress a genuine finding.
			context := trimmed[:start] + trimmed[end:]
			if ignoreLine.MatchString(context) {
				continue
			}
			secret := trimmed[start:end]
			masked := trimmed[:start] + maskSecret(secret) + trimmed[end:]
			rec.SecurityIssues = append(rec.SecurityIssues, model.SecurityIssue{
				LineNumber:  i + 1,
				LineContent: masked,
				IssueType:   f.issueType,
				Severity:    "HIGH",
				Description: f.issueType + " detected in " + rec.Path,
			})
		}
	}
}

// maskSecret keeps the first 4 and last 4 characters of secret, replacing
// the middle with '*' of the same length (spec 4.6, testable property 8).
func maskSecret(secret string) string {
	runes := []rune(secret)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	head := string(runes[:4])
	tail := string(runes[len(runes)-4:])
	middle := strings.Repeat("*", len(runes)-8)
	return head + middle + tail
}
