package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"docmedic/internal/rules"
)

var (
	passLabel = color.New(color.FgGreen).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	skipLabel = color.New(color.FgYellow).SprintFunc()
)

// ConsoleSink renders results for humans (text) or machines (json/ndjson)
// on a writer, stdout by default.
type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	results         []rules.Result // for JSON array output
	allowedStatuses map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[strings.ToUpper(st)] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.allowedStatuses) > 0 {
		if r, ok := v.(rules.Result); ok {
			if !s.allowedStatuses[string(r.Status)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(rules.Result)
		if !ok {
			// Ignore lifecycle events in JSON aggregate mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			return encoder.Encode(t)
		case rules.Result:
			return encoder.Encode(eventFromResult(t))
		default:
			return nil
		}
	case "text":
		r, ok := v.(rules.Result)
		if !ok {
			return nil
		}
		return s.writeText(r)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeText(r rules.Result) error {
	if _, err := fmt.Fprintf(s.writer, "[%s] %3d %s: %s\n", statusLabel(r.Status), r.RuleID, r.Category, r.Description); err != nil {
		return err
	}
	if r.Reason != "" {
		if _, err := fmt.Fprintf(s.writer, "       skipped: %s\n", r.Reason); err != nil {
			return err
		}
	}
	for _, v := range r.Violations {
		loc := ""
		if v.Path != "" {
			loc = v.Path + ": "
		}
		if _, err := fmt.Fprintf(s.writer, "       %s%s\n", loc, v.Message); err != nil {
			return err
		}
	}
	return nil
}

func statusLabel(st rules.Status) string {
	switch st {
	case rules.StatusPass:
		return passLabel("PASS")
	case rules.StatusFail:
		return failLabel("FAIL")
	case rules.StatusSkipped:
		return skipLabel("SKIP")
	default:
		return string(st)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s.results)
	}
	return nil
}
