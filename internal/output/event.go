package output

import "docmedic/internal/rules"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit one JSON object per line:
// - run.started
// - rule.result
// - run.finished
//
// JSON mode remains an aggregate of rules.Result values.
type Event struct {
	Type string `json:"type"`
	*rules.Result
	Project  string         `json:"project,omitempty"`
	Rules    int            `json:"rules,omitempty"`
	ExitCode int            `json:"exit_code,omitempty"`
	Summary  *rules.Summary `json:"summary,omitempty"`
}

func eventFromResult(r rules.Result) Event {
	return Event{Type: "rule.result", Result: &r}
}
