package rules

import "fmt"

// Status is the outcome class of one check.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusSkipped Status = "SKIPPED"
)

// Violation is one concrete failure instance within a FAIL result.
type Violation struct {
	RuleID   int      `json:"rule_id"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity,omitempty"`
	Expected string   `json:"expected,omitempty"`
	Actual   string   `json:"actual,omitempty"`
	FixHint  string   `json:"fix_hint,omitempty"`
}

// CheckResult is what a check returns. A FAIL always carries at least one
// violation. SKIPPED means the rule's subject did not exist (or the rule
// definition was unusable), never that the rule was satisfied; it is never
// counted toward the failure tally but stays visible in reports.
type CheckResult struct {
	Status     Status      `json:"status"`
	Reason     string      `json:"reason,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

// Pass is the result of a satisfied (or vacuously satisfied) rule.
func Pass() CheckResult {
	return CheckResult{Status: StatusPass}
}

// Fail wraps violations into a FAIL result. An empty violation list would
// break the Fail invariant, so it degrades to Pass; callers only reach
// that path when every candidate turned out compliant.
func Fail(violations []Violation) CheckResult {
	if len(violations) == 0 {
		return Pass()
	}
	return CheckResult{Status: StatusFail, Violations: violations}
}

// Skip marks a rule whose subject does not exist or whose definition could
// not be evaluated, with a human-readable reason.
func Skip(reason string) CheckResult {
	return CheckResult{Status: StatusSkipped, Reason: reason}
}

// Skipf is Skip with formatting.
func Skipf(format string, args ...any) CheckResult {
	return Skip(fmt.Sprintf(format, args...))
}

// Result is the wire record for one evaluated rule, written to output
// sinks in selection order. The engine stamps the rule identity; checks
// only produce the CheckResult part.
type Result struct {
	RuleID      int         `json:"rule_id"`
	Category    string      `json:"category"`
	Description string      `json:"description,omitempty"`
	Severity    Severity    `json:"severity,omitempty"`
	Status      Status      `json:"status"`
	Reason      string      `json:"reason,omitempty"`
	Violations  []Violation `json:"violations,omitempty"`
}

// ResultFor combines a rule's identity with its check outcome.
func ResultFor(r Rule, cr CheckResult) Result {
	return Result{
		RuleID:      r.ID,
		Category:    r.Category,
		Description: r.Description,
		Severity:    r.Severity,
		Status:      cr.Status,
		Reason:      cr.Reason,
		Violations:  cr.Violations,
	}
}

// Summary aggregates a run. Skips are tracked separately and never count
// as failures.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Summarize tallies results by status.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}
