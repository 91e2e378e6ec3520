// Package reporter drives the code scanning requests and prints their results.
// Every step logs its own failure and reports whether it succeeded; it never
// aborts the caller.
package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/google/go-github/v47/github"
	"github.com/hashicorp/go-hclog"

	"github.com/web-security-repos/codeql-client/internal/codeql"
	"github.com/web-security-repos/codeql-client/internal/console"
	"github.com/web-security-repos/codeql-client/internal/githubapi"
	"github.com/web-security-repos/codeql-client/internal/sarif"
	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

// Reporter prints code scanning data for one API host to out.
type Reporter struct {
	service   *codeql.Service
	logger    hclog.Logger
	out       io.Writer
	baseURL   string
	outputDir string
}

// New creates a Reporter. SARIF reports are saved under outputDir.
func New(service *codeql.Service, logger hclog.Logger, out io.Writer, baseURL, outputDir string) *Reporter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reporter{
		service:   service,
		logger:    logger,
		out:       out,
		baseURL:   baseURL,
		outputDir: outputDir,
	}
}

// Run lists analyses and alerts of t and, when an analysis exists, shows the
// first one and saves its SARIF report.
func (r *Reporter) Run(ctx context.Context, t vcsurl.Target) {
	console.Banner(r.out, "GitHub CodeQL API Client",
		"Repository: "+t.String(),
		"API Base URL: "+r.baseURL,
	)

	analyses, ok := r.ListAnalyses(ctx, t)
	r.ListAlerts(ctx, t)

	if ok && len(analyses) > 0 {
		id := analyses[0].GetID()
		r.ShowAnalysis(ctx, t, id)
		r.FetchSARIF(ctx, t, id)
	}

	fmt.Fprintln(r.out, "\n=================================================")
	fmt.Fprintln(r.out, "API calls completed")
	fmt.Fprintln(r.out, "=================================================")
}

// ListAnalyses prints the analyses of t.
func (r *Reporter) ListAnalyses(ctx context.Context, t vcsurl.Target) ([]*github.ScanningAnalysis, bool) {
	fmt.Fprintln(r.out, "\n=== Listing Code Scanning Analyses ===")
	console.Endpoint(r.out, "/repos/{owner}/{repo}/code-scanning/analyses", r.baseURL, codeql.AnalysesPath(t))

	analyses, resp, err := r.service.ListAnalyses(ctx, t)
	if err != nil {
		r.logFailure("failed to list analyses", err)
		return nil, false
	}
	console.StatusCode(r.out, resp.StatusCode)
	console.Analyses(r.out, analyses)
	return analyses, true
}

// ListAlerts prints the code scanning alerts of t.
func (r *Reporter) ListAlerts(ctx context.Context, t vcsurl.Target) ([]*codeql.Alert, bool) {
	fmt.Fprintln(r.out, "\n=== Listing Code Scanning Alerts ===")
	console.Endpoint(r.out, "/repos/{owner}/{repo}/code-scanning/alerts", r.baseURL, codeql.AlertsPath(t))

	alerts, resp, err := r.service.ListAlerts(ctx, t)
	if err != nil {
		r.logFailure("failed to list alerts", err)
		return nil, false
	}
	console.StatusCode(r.out, resp.StatusCode)
	console.Alerts(r.out, alerts)
	return alerts, true
}

// ShowAnalysis prints the full document of analysis id.
func (r *Reporter) ShowAnalysis(ctx context.Context, t vcsurl.Target, id int64) bool {
	fmt.Fprintf(r.out, "\n=== Getting Analysis Details (ID: %d) ===\n", id)
	console.Endpoint(r.out, "/repos/{owner}/{repo}/code-scanning/analyses/{analysis_id}", r.baseURL, codeql.AnalysisPath(t, id))

	resp, err := r.service.GetAnalysis(ctx, t, id)
	if err != nil {
		r.logFailure("failed to get analysis", err, "analysis_id", id)
		return false
	}
	console.StatusCode(r.out, resp.StatusCode)

	fmt.Fprintln(r.out, "\nAnalysis Details:")
	if err := console.Document(r.out, resp.Data); err != nil {
		r.logger.Error("failed to print analysis", "analysis_id", id, "error", err)
		return false
	}
	return true
}

// FetchSARIF downloads the SARIF report of analysis id, previews and saves
// it, then prints a summary. A report that cannot be parsed is still saved.
func (r *Reporter) FetchSARIF(ctx context.Context, t vcsurl.Target, id int64) (string, bool) {
	fmt.Fprintf(r.out, "\n=== Getting SARIF Report (ID: %d) ===\n", id)
	console.Endpoint(r.out, "/repos/{owner}/{repo}/code-scanning/analyses/{analysis_id}", r.baseURL, codeql.AnalysisPath(t, id),
		"Accept: "+githubapi.MediaTypeSARIF)

	body, resp, err := r.service.GetAnalysisSARIF(ctx, t, id)
	if err != nil {
		r.logFailure("failed to get SARIF report", err, "analysis_id", id)
		return "", false
	}
	console.StatusCode(r.out, resp.StatusCode)

	fmt.Fprintln(r.out, "\nSARIF Report (first 1000 characters):")
	fmt.Fprintln(r.out, console.Preview(body))

	path, err := codeql.SaveSARIF(r.outputDir, id, body)
	if err != nil {
		r.logger.Error("failed to save SARIF report", "analysis_id", id, "error", err)
		return "", false
	}
	fmt.Fprintf(r.out, "\nFull SARIF report saved to: %s\n", path)

	summary, err := sarif.Summarize([]byte(body))
	if err != nil {
		r.logger.Warn("saved SARIF report could not be summarized", "path", path, "error", err)
		return path, true
	}
	console.SARIFSummary(r.out, summary)
	return path, true
}

// ListOrgRepositories prints every repository of org followed by those whose
// name starts with prefix. Repositories fetched before a failing page are
// still printed and returned together with the error.
func (r *Reporter) ListOrgRepositories(ctx context.Context, org, prefix string) ([]*github.Repository, error) {
	fmt.Fprintf(r.out, "Fetching repositories from %s organization...\n", org)

	repos, err := r.service.ListOrgRepositories(ctx, org)
	if err != nil {
		r.logFailure("failed to fetch repositories", err, "org", org, "fetched", len(repos))
	}

	console.Repositories(r.out, repos)
	if prefix != "" && len(repos) > 0 {
		filtered := console.FilterByPrefix(repos, prefix)
		console.RepositoryNames(r.out, fmt.Sprintf("Repositories starting with '%s': %d", prefix, len(filtered)), filtered)
	}
	return repos, err
}

func (r *Reporter) logFailure(msg string, err error, args ...interface{}) {
	status := "Unknown"
	if code, ok := githubapi.StatusCode(err); ok {
		status = strconv.Itoa(code)
	}
	r.logger.Error(msg, append(args, "status", status, "error", err)...)
}
