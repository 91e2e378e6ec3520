// Package smoke verifies that the code scanning endpoints answer as expected.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/web-security-repos/codeql-client/internal/codeql"
	"github.com/web-security-repos/codeql-client/internal/githubapi"
	"github.com/web-security-repos/codeql-client/pkg/shared/vcsurl"
)

const (
	// DefaultTimeout bounds every check.
	DefaultTimeout = 10 * time.Second
	// UserAgent identifies smoke test traffic.
	UserAgent = "CodeQL-API-Test"
	// FallbackToken is sent when no credential is configured.
	FallbackToken = "dummy"
	// DummyAnalysisID is an analysis ID that is not expected to exist.
	DummyAnalysisID int64 = 12345
)

// Outcome is the verdict of a single check.
type Outcome string

const (
	Pass Outcome = "PASS"
	Warn Outcome = "WARN"
	Fail Outcome = "FAIL"
)

// Kind selects how a check interprets the answer it gets.
type Kind int

const (
	// EndpointCheck expects the endpoint to exist.
	EndpointCheck Kind = iota
	// ErrorHandlingCheck expects the endpoint to be rejected.
	ErrorHandlingCheck
)

// Check describes one request to verify.
type Check struct {
	Name   string
	Path   string
	Accept string
	Kind   Kind
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name       string
	Endpoint   string
	Outcome    Outcome
	StatusCode int
	Message    string
}

// Passed reports whether the check counts towards the passed total. Warnings pass.
func (r CheckResult) Passed() bool {
	return r.Outcome != Fail
}

// Summary aggregates check results.
type Summary struct {
	Passed int
	Failed int
}

func (s Summary) Total() int {
	return s.Passed + s.Failed
}

// Summarize counts passed and failed results.
func Summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Plan returns the checks run against t, in order.
func Plan(t vcsurl.Target) []Check {
	return []Check{
		{Name: "List all code scanning analyses", Path: codeql.AnalysesPath(t), Accept: githubapi.MediaTypeJSON},
		{Name: "List all code scanning alerts", Path: codeql.AlertsPath(t), Accept: githubapi.MediaTypeJSON},
		{Name: "Get specific analysis (with dummy ID)", Path: codeql.AnalysisPath(t, DummyAnalysisID), Accept: githubapi.MediaTypeJSON},
		{Name: "Get SARIF report (with dummy ID)", Path: codeql.AnalysisPath(t, DummyAnalysisID), Accept: githubapi.MediaTypeSARIF},
		{Name: "Error handling with invalid endpoint", Path: codeql.InvalidEndpointPath(t), Accept: githubapi.MediaTypeJSON, Kind: ErrorHandlingCheck},
	}
}

// Checker runs checks one after another, each bounded by its own timeout.
type Checker struct {
	client  *githubapi.Client
	logger  hclog.Logger
	timeout time.Duration
}

func NewChecker(client *githubapi.Client, logger hclog.Logger, timeout time.Duration) *Checker {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{client: client, logger: logger, timeout: timeout}
}

// Run executes checks sequentially. report, when not nil, is called after each check.
func (c *Checker) Run(ctx context.Context, checks []Check, report func(CheckResult)) []CheckResult {
	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		result := c.Do(ctx, check)
		results = append(results, result)
		if report != nil {
			report(result)
		}
	}
	return results
}

// Do performs a single check. Failures are folded into the result, never returned.
func (c *Checker) Do(ctx context.Context, check Check) CheckResult {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("running check", "name", check.Name, "path", check.Path)
	resp, err := c.client.Request(reqCtx, check.Path, check.Accept)

	result := CheckResult{Name: check.Name, Endpoint: check.Path}
	switch {
	case err == nil:
		result.StatusCode = resp.StatusCode
	case isTimeout(reqCtx, err):
		result.Message = "timeout"
		return classifyTimeout(check.Kind, result)
	default:
		code, ok := githubapi.StatusCode(err)
		if !ok {
			result.Message = err.Error()
			return classifyTransportError(check.Kind, result)
		}
		result.StatusCode = code
	}

	return classifyStatus(check.Kind, result)
}

func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func classifyStatus(kind Kind, r CheckResult) CheckResult {
	if kind == ErrorHandlingCheck {
		switch r.StatusCode {
		case http.StatusNotFound:
			r.Outcome, r.Message = Pass, "correctly returns 404 for invalid endpoint"
		case http.StatusUnauthorized:
			r.Outcome, r.Message = Pass, "auth checked before endpoint validation (401)"
		default:
			r.Outcome, r.Message = Warn, fmt.Sprintf("unexpected status: %d", r.StatusCode)
		}
		return r
	}

	switch r.StatusCode {
	case http.StatusOK:
		r.Outcome, r.Message = Pass, "API working with valid token"
	case http.StatusUnauthorized:
		r.Outcome, r.Message = Pass, "API endpoint correct, needs valid token"
	case http.StatusNotFound:
		r.Outcome, r.Message = Warn, "CodeQL may not be enabled yet"
	default:
		r.Outcome, r.Message = Fail, fmt.Sprintf("unexpected status: %d", r.StatusCode)
	}
	return r
}

func classifyTransportError(kind Kind, r CheckResult) CheckResult {
	if kind == ErrorHandlingCheck {
		r.Outcome = Pass
		r.Message = "error properly caught: " + r.Message
		return r
	}
	r.Outcome = Fail
	r.Message = "network error: " + r.Message
	return r
}

func classifyTimeout(kind Kind, r CheckResult) CheckResult {
	if kind == ErrorHandlingCheck {
		r.Outcome = Pass
		r.Message = "timeout handling works"
		return r
	}
	r.Outcome = Fail
	return r
}
