package codeql

import (
	"fmt"
	"net/url"

	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

// AnalysesPath is GET /repos/{owner}/{repo}/code-scanning/analyses.
func AnalysesPath(t vcsurl.Target) string {
	return fmt.Sprintf("/repos/%s/%s/code-scanning/analyses", url.PathEscape(t.Namespace), url.PathEscape(t.Repository))
}

// AnalysisPath is GET /repos/{owner}/{repo}/code-scanning/analyses/{id}.
func AnalysisPath(t vcsurl.Target, id int64) string {
	return fmt.Sprintf("%s/%d", AnalysesPath(t), id)
}

// AlertsPath is GET /repos/{owner}/{repo}/code-scanning/alerts.
func AlertsPath(t vcsurl.Target) string {
	return fmt.Sprintf("/repos/%s/%s/code-scanning/alerts", url.PathEscape(t.Namespace), url.PathEscape(t.Repository))
}

// OrgReposPath is GET /orgs/{org}/repos, without pagination parameters.
func OrgReposPath(org string) string {
	return fmt.Sprintf("/orgs/%s/repos", url.PathEscape(org))
}

// InvalidEndpointPath points below the repository at a resource that does not exist.
func InvalidEndpointPath(t vcsurl.Target) string {
	return fmt.Sprintf("/repos/%s/%s/invalid-endpoint-test", url.PathEscape(t.Namespace), url.PathEscape(t.Repository))
}

// SARIFReportName is the file name a SARIF report for analysis id is saved under.
func SARIFReportName(id int64) string {
	return fmt.Sprintf("sarif-report-%d.json", id)
}
