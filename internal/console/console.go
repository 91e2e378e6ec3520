// Package console renders API results as human readable text.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v47/github"

	"github.com/web-security-repos/codeql-client/internal/codeql"
	"github.com/web-security-repos/codeql-client/internal/sarif"
)

// NotAvailable is printed in place of a missing value.
const NotAvailable = "N/A"

// PreviewLimit is the number of characters of a SARIF document shown inline.
const PreviewLimit = 1000

const (
	banner  = "================================================="
	divider = "================================================================================"
)

// Banner prints title framed by separator lines, followed by extra lines.
func Banner(w io.Writer, title string, lines ...string) {
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "   %s\n", title)
	fmt.Fprintln(w, banner)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if len(lines) > 0 {
		fmt.Fprintln(w, banner)
	}
}

// Endpoint prints the endpoint template and the full URL of a request.
func Endpoint(w io.Writer, template, baseURL, path string, extra ...string) {
	fmt.Fprintf(w, "API Endpoint: GET %s\n", template)
	for _, line := range extra {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Full URL: %s%s\n\n", strings.TrimRight(baseURL, "/"), path)
}

// StatusCode prints the HTTP status of a successful call.
func StatusCode(w io.Writer, code int) {
	fmt.Fprintf(w, "Status Code: %d\n", code)
}

// Analyses prints one block per analysis.
func Analyses(w io.Writer, analyses []*github.ScanningAnalysis) {
	if len(analyses) == 0 {
		fmt.Fprintln(w, "\nNo analyses found. CodeQL may not have been run yet on this repository.")
		return
	}
	fmt.Fprintf(w, "\nFound %d analysis/analyses:\n\n", len(analyses))
	for i, a := range analyses {
		fmt.Fprintf(w, "--- Analysis %d ---\n", i+1)
		fmt.Fprintf(w, "  ID: %d\n", a.GetID())
		fmt.Fprintf(w, "  Created: %s\n", timestamp(a.GetCreatedAt()))
		fmt.Fprintf(w, "  Tool: %s\n", orNA(a.GetTool().GetName()))
		fmt.Fprintf(w, "  Commit SHA: %s\n", orNA(a.GetCommitSHA()))
		fmt.Fprintf(w, "  Ref: %s\n", orNA(a.GetRef()))
		fmt.Fprintf(w, "  Results Count: %d\n", a.GetResultsCount())
		fmt.Fprintf(w, "  Rules Count: %d\n", a.GetRulesCount())
		fmt.Fprintln(w)
	}
}

// Alerts prints one block per alert.
func Alerts(w io.Writer, alerts []*codeql.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintln(w, "\nNo alerts found. The repository appears to be clean!")
		return
	}
	fmt.Fprintf(w, "\nFound %d alert(s):\n\n", len(alerts))
	for i, a := range alerts {
		rule := a.GetRule()
		fmt.Fprintf(w, "--- Alert %d ---\n", i+1)
		fmt.Fprintf(w, "  Number: %d\n", a.GetNumber())
		fmt.Fprintf(w, "  State: %s\n", orNA(a.GetState()))
		fmt.Fprintf(w, "  Rule ID: %s\n", orNA(rule.GetID()))
		fmt.Fprintf(w, "  Rule Description: %s\n", orNA(rule.GetDescription()))
		fmt.Fprintf(w, "  Severity: %s\n", orNA(rule.GetSeverity()))
		fmt.Fprintf(w, "  Security Severity: %s\n", orNA(rule.GetSecuritySeverityLevel()))
		fmt.Fprintf(w, "  Tool: %s\n", orNA(a.GetTool().GetName()))
		fmt.Fprintf(w, "  Created: %s\n", timestamp(a.GetCreatedAt()))
		fmt.Fprintf(w, "  URL: %s\n", orNA(a.GetHTMLURL()))
		if instance := a.GetMostRecentInstance(); instance != nil {
			location := instance.GetLocation()
			fmt.Fprintf(w, "  Location: %s\n", orNA(location.GetPath()))
			fmt.Fprintf(w, "  Lines: %s-%s\n", lineOrNA(location.GetStartLine()), lineOrNA(location.GetEndLine()))
		}
		fmt.Fprintln(w)
	}
}

// Document prints data as indented JSON; text that is not JSON is printed as is.
func Document(w io.Writer, data any) error {
	if s, ok := data.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling the result data: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// Preview returns the first PreviewLimit characters of s followed by "...".
func Preview(s string) string {
	runes := []rune(s)
	if len(runes) > PreviewLimit {
		runes = runes[:PreviewLimit]
	}
	return string(runes) + "..."
}

// SARIFSummary prints the parsed overview of a SARIF report.
func SARIFSummary(w io.Writer, s *sarif.Summary) {
	fmt.Fprintln(w, "\nSARIF Summary:")
	fmt.Fprintf(w, "  Version: %s\n", orNA(s.Version))
	for _, tool := range s.Tools {
		version := NotAvailable
		if tool.Version != nil && *tool.Version != "" {
			version = *tool.Version
		}
		fmt.Fprintf(w, "  Tool: %s (%s)\n", orNA(tool.Name), version)
	}
	fmt.Fprintf(w, "  Rules: %d\n", s.Rules)
	fmt.Fprintf(w, "  Results: %d (high: %d, medium: %d, low: %d)\n",
		s.Severity[sarif.SeverityTotal],
		s.Severity[sarif.SeverityHigh],
		s.Severity[sarif.SeverityMedium],
		s.Severity[sarif.SeverityLow],
	)
	for _, id := range s.TopRules(5) {
		fmt.Fprintf(w, "    %s: %d\n", id, s.RuleHits[id])
	}
}

// Repositories prints a numbered list of repositories.
func Repositories(w io.Writer, repos []*github.Repository) {
	if len(repos) == 0 {
		fmt.Fprintln(w, "\nNo repositories found.")
		return
	}
	fmt.Fprintf(w, "\nTotal repositories found: %d\n\n", len(repos))
	fmt.Fprintln(w, "Repository List:")
	fmt.Fprintln(w, divider)
	for i, r := range repos {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, r.GetName())
		fmt.Fprintf(w, "   Full Name: %s\n", orNA(r.GetFullName()))
		fmt.Fprintf(w, "   URL: %s\n", orNA(r.GetHTMLURL()))
		fmt.Fprintf(w, "   Language: %s\n", orNA(r.GetLanguage()))
		fmt.Fprintf(w, "   Private: %s\n", yesNo(r.GetPrivate()))
		fmt.Fprintf(w, "   Created: %s\n", timestamp(r.GetCreatedAt()))
		fmt.Fprintf(w, "   Updated: %s\n", timestamp(r.GetUpdatedAt()))
		fmt.Fprintf(w, "   Clone URL: %s\n", orNA(r.GetCloneURL()))
	}
	fmt.Fprintln(w, "\n"+divider)
}

// FilterByPrefix returns the repositories whose name starts with prefix.
func FilterByPrefix(repos []*github.Repository, prefix string) []*github.Repository {
	filtered := []*github.Repository{}
	for _, r := range repos {
		if strings.HasPrefix(r.GetName(), prefix) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// RepositoryNames prints a bulleted list of repository names under heading.
func RepositoryNames(w io.Writer, heading string, repos []*github.Repository) {
	fmt.Fprintf(w, "\n%s\n", heading)
	for _, r := range repos {
		fmt.Fprintf(w, "   - %s\n", r.GetName())
	}
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func lineOrNA(n int) string {
	if n == 0 {
		return NotAvailable
	}
	return strconv.Itoa(n)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func timestamp(ts github.Timestamp) string {
	if ts.IsZero() {
		return NotAvailable
	}
	return ts.UTC().Format(time.RFC3339)
}
