package sarif

import (
	"fmt"
	"sort"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// Severity buckets used in summaries.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
	SeverityTotal  = "total"
)

// ToolMetadata names the tool that produced a run.
type ToolMetadata struct {
	Name    string
	Version *string
}

// Summary is a compact description of a SARIF document.
type Summary struct {
	Version  string
	Tools    []ToolMetadata
	Rules    int
	Severity map[string]int
	RuleHits map[string]int
}

// Summarize parses a SARIF document and counts its rules and results.
func Summarize(raw []byte) (*Summary, error) {
	report, err := sarif.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SARIF report: %w", err)
	}
	return summarizeReport(report), nil
}

func summarizeReport(report *sarif.Report) *Summary {
	summary := &Summary{
		Version:  report.Version,
		Severity: map[string]int{SeverityLow: 0, SeverityMedium: 0, SeverityHigh: 0, SeverityTotal: 0},
		RuleHits: map[string]int{},
	}

	for _, run := range report.Runs {
		if run == nil {
			continue
		}
		rulesMap := map[string]*sarif.ReportingDescriptor{}
		if driver := run.Tool.Driver; driver != nil {
			summary.Tools = append(summary.Tools, ToolMetadata{
				Name:    driver.Name,
				Version: driver.SemanticVersion,
			})
			for _, rule := range driver.Rules {
				if rule != nil {
					rulesMap[rule.ID] = rule
				}
			}
			summary.Rules += len(driver.Rules)
		}

		for _, result := range run.Results {
			if result == nil {
				continue
			}
			var rule *sarif.ReportingDescriptor
			if result.RuleID != nil {
				rule = rulesMap[*result.RuleID]
				summary.RuleHits[*result.RuleID]++
			}
			summary.Severity[severityBucket(resultLevel(result, rule))]++
			summary.Severity[SeverityTotal]++
		}
	}

	return summary
}

// resultLevel prefers the level of the result, then the CodeQL
// problem.severity property of its rule, then the rule's default
// configuration, then the SARIF default.
func resultLevel(result *sarif.Result, rule *sarif.ReportingDescriptor) string {
	if result.Level != nil && *result.Level != "" {
		return *result.Level
	}
	if rule == nil {
		return "warning"
	}
	if rule.Properties != nil {
		if severity, ok := rule.Properties["problem.severity"].(string); ok && severity != "" {
			return severity
		}
	}
	if rule.DefaultConfiguration != nil && rule.DefaultConfiguration.Level != "" {
		return rule.DefaultConfiguration.Level
	}
	return "warning"
}

func severityBucket(level string) string {
	switch level {
	case "error":
		return SeverityHigh
	case "warning":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// TopRules returns up to n rule IDs ordered by hit count, then by ID.
func (s *Summary) TopRules(n int) []string {
	ids := make([]string, 0, len(s.RuleHits))
	for id := range s.RuleHits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if s.RuleHits[ids[i]] != s.RuleHits[ids[j]] {
			return s.RuleHits[ids[i]] > s.RuleHits[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if n >= 0 && len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
