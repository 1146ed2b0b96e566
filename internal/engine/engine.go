// Package engine selects rules, dispatches each to its builtin or
// declarative check, and aggregates results in selection order.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"docmedic/internal/output"
	"docmedic/internal/project"
	"docmedic/internal/rules"
)

// Exit code contract:
// 0 = clean run, no failures
// 1 = failures detected
// 3 = fatal error (scan did not run)
const (
	ExitClean    = 0
	ExitFailures = 1
	ExitFatal    = 3
)

// ExitCodeFor maps a run summary to the process exit code. Skips never
// affect the exit code.
func ExitCodeFor(summary rules.Summary) int {
	if summary.Failed > 0 {
		return ExitFailures
	}
	return ExitClean
}

// Run evaluates the selected rules against the snapshot and writes every
// result, in selection order, to the output manager. Checks execute in
// parallel bounded by concurrency, but the reported order is always the
// order rules were selected.
func Run(ctx context.Context, snap *project.Snapshot, selected []rules.Rule, concurrency int, outMgr *output.Manager) (rules.Summary, error) {
	if concurrency <= 0 {
		return rules.Summary{}, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}

	_ = outMgr.Write(output.Event{Type: "run.started", Project: snap.Root, Rules: len(selected)})

	checkResults := make([]rules.CheckResult, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, rule := range selected {
		i, rule := i, rule
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			checkResults[i] = evaluate(snap, rule)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rules.Summary{}, err
	}

	results := make([]rules.Result, len(selected))
	for i, rule := range selected {
		results[i] = rules.ResultFor(rule, checkResults[i])
		_ = outMgr.Write(results[i])
	}

	summary := rules.Summarize(results)
	_ = outMgr.Write(output.Event{Type: "run.finished", ExitCode: ExitCodeFor(summary), Summary: &summary})

	log.Debug().
		Int("total", summary.Total).
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("scan finished")

	return summary, nil
}

// evaluate runs one rule. Applicability filters are resolved first; a
// panicking check is contained and surfaces as a skip, never as an
// aborted run.
func evaluate(snap *project.Snapshot, rule rules.Rule) (result rules.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("rule", rule.ID).Any("panic", r).Msg("check panicked")
			result = rules.Skipf("check panicked: %v", r)
		}
	}()

	if rule.ProjectKind != "" && rule.ProjectKind != snap.Kind {
		return rules.Skipf("rule applies to %s projects only", rule.ProjectKind)
	}
	if rule.SizeClass != "" && rule.SizeClass != snap.Size {
		return rules.Skipf("rule applies to %s projects only", rule.SizeClass)
	}

	res := rules.CheckFor(rule).Evaluate(snap)
	stampViolations(rule, &res)
	return res
}

// stampViolations backfills rule identity onto violations so checks only
// have to describe the failure, not repeat their own metadata.
func stampViolations(rule rules.Rule, res *rules.CheckResult) {
	for i := range res.Violations {
		if res.Violations[i].RuleID == 0 {
			res.Violations[i].RuleID = rule.ID
		}
		if res.Violations[i].Severity == "" {
			res.Violations[i].Severity = rule.Severity
		}
		if res.Violations[i].FixHint == "" {
			res.Violations[i].FixHint = rule.FixHint
		}
	}
}
