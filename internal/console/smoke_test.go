package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/web-security-repos/codeql-client/internal/smoke"
)

func TestCheckResult(t *testing.T) {
	var buf bytes.Buffer
	CheckResult(&buf, smoke.CheckResult{
		Name:       "List all code scanning alerts",
		Endpoint:   "/repos/o/r/code-scanning/alerts",
		Outcome:    smoke.Warn,
		StatusCode: 404,
		Message:    "CodeQL may not be enabled yet",
	})

	out := buf.String()
	assert.Contains(t, out, "Testing: List all code scanning alerts\n")
	assert.Contains(t, out, "  Status: 404\n")
	assert.Contains(t, out, "⚠ WARN: CodeQL may not be enabled yet")
}

func TestCheckResultWithoutStatus(t *testing.T) {
	var buf bytes.Buffer
	CheckResult(&buf, smoke.CheckResult{Name: "x", Outcome: smoke.Fail, Message: "timeout"})
	assert.NotContains(t, buf.String(), "Status:")
	assert.Contains(t, buf.String(), "✗ FAIL: timeout")
}

func TestCheckSummary(t *testing.T) {
	var buf bytes.Buffer
	CheckSummary(&buf, smoke.Summary{Passed: 4, Failed: 1})
	assert.Contains(t, buf.String(), "Tests Passed: 4\n")
	assert.Contains(t, buf.String(), "Total Tests:  5\n")
	assert.Contains(t, buf.String(), "Some tests failed")

	buf.Reset()
	CheckSummary(&buf, smoke.Summary{Passed: 5})
	assert.Contains(t, buf.String(), "All tests passed")
}
