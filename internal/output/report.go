package output

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"docmedic/internal/rules"
)

// ReportSink accumulates the whole run and writes a human-readable
// markdown report on Close.
type ReportSink struct {
	path         string
	file         afero.File
	mu           sync.Mutex
	results      []rules.Result
	project      string
	exitCode     int
	haveExitCode bool
}

func NewReportSink(fsys afero.Fs, path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := fsys.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{path: path, file: f}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case rules.Result:
		s.results = append(s.results, t)
	case Event:
		if t.Type == "run.started" {
			s.project = t.Project
		}
		if t.Type == "run.finished" {
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := rules.Summarize(s.results)

	var b strings.Builder
	b.WriteString("# docmedic scan report\n\n")
	if s.project != "" {
		fmt.Fprintf(&b, "Project: `%s`\n\n", s.project)
	}

	fmt.Fprintf(&b, "| Total | Passed | Failed | Skipped |\n")
	fmt.Fprintf(&b, "|-------|--------|--------|---------|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n", summary.Total, summary.Passed, summary.Failed, summary.Skipped)

	if s.haveExitCode {
		fmt.Fprintf(&b, "Exit code: %d\n\n", s.exitCode)
	}

	writeFailures(&b, s.results)
	writeSkips(&b, s.results)

	if _, err := s.file.WriteString(b.String()); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

func writeFailures(b *strings.Builder, results []rules.Result) {
	var fails []rules.Result
	for _, r := range results {
		if r.Status == rules.StatusFail {
			fails = append(fails, r)
		}
	}
	if len(fails) == 0 {
		b.WriteString("## Failures\n\nNone.\n\n")
		return
	}

	b.WriteString("## Failures\n\n")
	for _, r := range fails {
		fmt.Fprintf(b, "### Rule %d (%s, %s)\n\n%s\n\n", r.RuleID, r.Category, r.Severity, r.Description)
		for _, v := range r.Violations {
			if v.Path != "" {
				fmt.Fprintf(b, "- `%s`: %s\n", v.Path, v.Message)
			} else {
				fmt.Fprintf(b, "- %s\n", v.Message)
			}
			if v.FixHint != "" {
				fmt.Fprintf(b, "  - fix: %s\n", v.FixHint)
			}
		}
		b.WriteString("\n")
	}
}

func writeSkips(b *strings.Builder, results []rules.Result) {
	var skips []rules.Result
	for _, r := range results {
		if r.Status == rules.StatusSkipped {
			skips = append(skips, r)
		}
	}
	if len(skips) == 0 {
		return
	}

	b.WriteString("## Skipped\n\n")
	for _, r := range skips {
		fmt.Fprintf(b, "- rule %d (%s): %s\n", r.RuleID, r.Category, r.Reason)
	}
	b.WriteString("\n")
}
