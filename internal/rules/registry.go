package rules

import (
	"fmt"
	"sort"
	"sync"

	"docmedic/internal/project"
)

var (
	builtins = make(map[string]Check)
	mu       sync.RWMutex
)

// RegisterBuiltin adds a hand-written check under a handler name. Called
// from init() in the checks package; duplicate names are a programming
// error.
func RegisterBuiltin(name string, c Check) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := builtins[name]; exists {
		panic(fmt.Sprintf("builtin check %q already registered", name))
	}
	builtins[name] = c
}

// BuiltinNames lists the registered handler names, sorted.
func BuiltinNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckFor resolves a rule to its executable check: the registered builtin
// for ShapeBuiltin, the declarative interpreter for everything else. An
// unknown handler name yields a check that skips with an explanation, so a
// bad rule definition degrades instead of aborting the scan.
func CheckFor(r Rule) Check {
	if r.Shape.Kind != ShapeBuiltin {
		return DeclarativeCheck{Rule: r}
	}

	mu.RLock()
	c, ok := builtins[r.Shape.Handler]
	mu.RUnlock()
	if !ok {
		return skippedCheck{reason: fmt.Sprintf("unknown builtin handler %q", r.Shape.Handler)}
	}
	return c
}

type skippedCheck struct {
	reason string
}

func (c skippedCheck) Evaluate(_ *project.Snapshot) CheckResult {
	return Skip(c.reason)
}
