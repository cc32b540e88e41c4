// Package workflow owns the run controller: a workflow's script source, its
// code revision, the plugin packages its scripts may call, and the
// append-only history of execution results.
package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	v1 "github.com/Walkmana-25/Saphillon-Core/api/v1"
	"github.com/Walkmana-25/Saphillon-Core/plugin"
	"github.com/Walkmana-25/Saphillon-Core/runtime"
)

// Code is one workflow: versioned script text plus the plugin packages it may
// call. Results are appended by Run and never mutated or removed afterwards.
type Code struct {
	ID           string
	Source       string
	Packages     []*plugin.Package
	CodeRevision int32

	mu      sync.Mutex
	results []*v1.WorkflowResult
}

// New creates a workflow with an empty result history.
func New(id, source string, packages []*plugin.Package, codeRevision int32) *Code {
	return &Code{ID: id, Source: source, Packages: packages, CodeRevision: codeRevision}
}

// FromDescriptor creates a workflow from its wire form, attaching the
// separately resolved plugin packages. Only id, code and code_revision are
// read from the descriptor.
func FromDescriptor(d *v1.WorkflowCode, packages []*plugin.Package) *Code {
	return &Code{ID: d.ID, Source: d.Code, Packages: packages, CodeRevision: d.CodeRevision}
}

// Run executes the workflow script once, synchronously, and appends exactly
// one immutable result to the history. Execution failure is not an error from
// Run: it is recorded as a Failure-typed result with exit code 1. The
// appended result is returned for convenience.
//
// Result revisions are strictly monotonic, gap-free and 1-indexed; the result
// id is derived from the workflow id and the run's epoch nanoseconds.
func (c *Code) Run(ctx context.Context) *v1.WorkflowResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Flatten packages in package order, then function order. Duplicate names
	// across packages are all included; the sandbox resolves them
	// last-registered-wins at binding installation time.
	var bindings []runtime.Binding
	for _, p := range c.Packages {
		bindings = append(bindings, p.Bindings()...)
	}

	now := time.Now()
	res := &v1.WorkflowResult{
		ID:                     fmt.Sprintf("%s-%d", c.ID, now.UnixNano()),
		DisplayName:            fmt.Sprintf("Run %d", now.Unix()),
		RanAt:                  now,
		WorkflowResultRevision: c.nextRevision(),
	}

	// Controller-initiated runs always capture output; pass-through mode is
	// reserved for direct sandbox callers.
	state := runtime.NewState(c.ID, true)

	if err := runtime.Run(ctx, c.Source, bindings, state); err != nil {
		res.Description = fmt.Sprintf("Error: %s", err)
		res.Result = err.Error()
		res.ResultType = v1.WorkflowResultFailure
		res.ExitCode = 1
	} else {
		res.Description = "Success"
		res.Result = state.CombinedOutput()
		res.ResultType = v1.WorkflowResultSuccessUnspecified
		res.ExitCode = 0
	}

	c.results = append(c.results, res)
	return res
}

func (c *Code) nextRevision() int32 {
	if n := len(c.results); n > 0 {
		return c.results[n-1].WorkflowResultRevision + 1
	}
	return 1
}

// Results returns the result history in run order, oldest first.
func (c *Code) Results() []*v1.WorkflowResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*v1.WorkflowResult, len(c.results))
	copy(out, c.results)
	return out
}
