package console

import (
	"fmt"
	"io"

	"github.com/web-security-repos/codeql-client/internal/smoke"
)

var outcomeMarks = map[smoke.Outcome]string{
	smoke.Pass: "✓",
	smoke.Warn: "⚠",
	smoke.Fail: "✗",
}

// CheckResult prints the outcome of one smoke check.
func CheckResult(w io.Writer, r smoke.CheckResult) {
	fmt.Fprintf(w, "\nTesting: %s\n", r.Name)
	fmt.Fprintf(w, "Endpoint: %s\n", r.Endpoint)
	if r.StatusCode != 0 {
		fmt.Fprintf(w, "  Status: %d\n", r.StatusCode)
	}
	fmt.Fprintf(w, "  %s %s: %s\n", outcomeMarks[r.Outcome], r.Outcome, r.Message)
}

// CheckSummary prints the totals of a smoke run.
func CheckSummary(w io.Writer, s smoke.Summary) {
	fmt.Fprintln(w, "\n"+banner)
	fmt.Fprintln(w, "   Test Summary")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Tests Passed: %d\n", s.Passed)
	fmt.Fprintf(w, "Tests Failed: %d\n", s.Failed)
	fmt.Fprintf(w, "Total Tests:  %d\n", s.Total())
	fmt.Fprintln(w, banner)
	if s.Failed > 0 {
		fmt.Fprintln(w, "\n✗ Some tests failed. Please review the errors above.")
		return
	}
	fmt.Fprintln(w, "\n✓ All tests passed! The CodeQL API client is correctly configured.")
}
