package reporter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web-security-repos/codeql-client/internal/codeql"
	"github.com/web-security-repos/codeql-client/internal/githubapi"
	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

const sarifBody = `{"version":"2.1.0","runs":[{"tool":{"driver":{"name":"CodeQL","rules":[{"id":"js/reflected-xss"}]}},"results":[{"ruleId":"js/reflected-xss","level":"error","message":{"text":"xss"}}]}]}`

var target = vcsurl.Target{Namespace: "Web-Security-Repos", Repository: "test-reflected-xss-nodejs"}

type fixture struct {
	reporter *Reporter
	out      *bytes.Buffer
	logs     *bytes.Buffer
	dir      string
	requests []string
}

func newFixture(t *testing.T, handler http.HandlerFunc) *fixture {
	t.Helper()
	f := &fixture{out: &bytes.Buffer{}, logs: &bytes.Buffer{}, dir: t.TempDir()}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.URL.Path+" "+r.Header.Get("Accept"))
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	logger := hclog.New(&hclog.LoggerOptions{Output: f.logs, Level: hclog.Info})
	client := githubapi.New(nil, "t", githubapi.WithBaseURL(server.URL))
	f.reporter = New(codeql.NewService(client, logger), logger, f.out, server.URL, f.dir)
	return f
}

func TestRunFullFlow(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == codeql.AnalysesPath(target):
			fmt.Fprint(w, `[{"id":12345,"tool":{"name":"CodeQL"}}]`)
		case r.URL.Path == codeql.AlertsPath(target):
			fmt.Fprint(w, `[]`)
		case r.Header.Get("Accept") == githubapi.MediaTypeSARIF:
			fmt.Fprint(w, sarifBody)
		default:
			fmt.Fprint(w, `{"id":12345,"sarif_id":"abc"}`)
		}
	})

	f.reporter.Run(context.Background(), target)

	require.Len(t, f.requests, 4)
	assert.Contains(t, f.requests[3], githubapi.MediaTypeSARIF)

	out := f.out.String()
	assert.Contains(t, out, "Repository: Web-Security-Repos/test-reflected-xss-nodejs")
	assert.Contains(t, out, "Found 1 analysis/analyses:")
	assert.Contains(t, out, "No alerts found. The repository appears to be clean!")
	assert.Contains(t, out, `"sarif_id": "abc"`)
	assert.Contains(t, out, "Rules: 1")
	assert.Contains(t, out, "API calls completed")
	assert.Equal(t, 4, strings.Count(out, "Status Code: 200\n"))

	saved, err := os.ReadFile(filepath.Join(f.dir, "sarif-report-12345.json"))
	require.NoError(t, err)
	assert.Equal(t, sarifBody, string(saved))
}

func TestRunSkipsDetailsWithoutAnalyses(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	f.reporter.Run(context.Background(), target)

	assert.Len(t, f.requests, 2)
	assert.Contains(t, f.out.String(), "No analyses found.")
	assert.NotContains(t, f.out.String(), "Found 0")
}

func TestRunContinuesAfterFailures(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	})

	f.reporter.Run(context.Background(), target)

	assert.Len(t, f.requests, 2)
	logs := f.logs.String()
	assert.Contains(t, logs, "failed to list analyses")
	assert.Contains(t, logs, "failed to list alerts")
	assert.Contains(t, logs, "status=401")
	assert.NotContains(t, f.out.String(), "Status Code:")
	assert.Contains(t, f.out.String(), "API calls completed")
}

func TestTransportFailureLogsUnknownStatus(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	f.reporter.service = codeql.NewService(githubapi.New(nil, "t", githubapi.WithBaseURL("http://127.0.0.1:1")), nil)

	_, ok := f.reporter.ListAnalyses(context.Background(), target)
	assert.False(t, ok)
	assert.Contains(t, f.logs.String(), "status=Unknown")
}

func TestFetchSARIFSavesUnparsableReport(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not sarif`)
	})

	path, ok := f.reporter.FetchSARIF(context.Background(), target, 7)
	require.True(t, ok)
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not sarif", string(saved))
	assert.Contains(t, f.out.String(), "not sarif...")
	assert.Contains(t, f.logs.String(), "could not be summarized")
}

func TestListOrgRepositoriesFiltersByPrefix(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.Header().Set("Link", `<x?page=2>; rel="next"`)
			fmt.Fprint(w, `[{"name":"test-a"},{"name":"docs"}]`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	repos, err := f.reporter.ListOrgRepositories(context.Background(), "acme", "test-")
	require.Error(t, err)
	assert.Len(t, repos, 2)

	out := f.out.String()
	assert.Contains(t, out, "Total repositories found: 2")
	assert.Contains(t, out, "Repositories starting with 'test-': 1")
	assert.Contains(t, out, "   - test-a\n")
	assert.NotContains(t, out, "   - docs\n")
	assert.Contains(t, f.logs.String(), "status=500")
}

func TestListOrgRepositoriesReportsNone(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	repos, err := f.reporter.ListOrgRepositories(context.Background(), "acme", "test-")
	require.NoError(t, err)
	assert.Empty(t, repos)
	assert.Contains(t, f.out.String(), "No repositories found.")
	assert.NotContains(t, f.out.String(), "Repositories starting with")
}
