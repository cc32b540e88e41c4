package runtime

import (
	"context"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
)

// HostFunc is the opaque body of a plugin function. The sandbox converts
// script arguments to native Go values before the body runs and converts the
// return value back into the script world. The run's shared State is always
// passed in, so bodies can read the workflow id and append captured output.
type HostFunc func(ctx context.Context, s *State, args ...any) (any, error)

// Binding pairs a callable name with its body for one execution.
type Binding struct {
	Name string
	Fn   HostFunc
}

// PrintName is the reserved binding name installed into every execution.
const PrintName = "print"

// DefaultWorkflowID names the state synthesized when Run is given none.
const DefaultWorkflowID = "default_workflow"

// ScriptError reports that a script failed to parse or raised during
// execution. It carries the interpreter's diagnostic message.
type ScriptError struct {
	Err error
}

func (e *ScriptError) Error() string { return e.Err.Error() }
func (e *ScriptError) Unwrap() error { return e.Err }

// Run executes script once, synchronously, inside a freshly constructed Risor
// context. WithoutDefaultGlobals strips every builtin, so the only callables
// visible to the script are the given bindings plus the reserved print
// binding. There is no time limit and no resource quota; cancellation is
// whatever the supplied context carries.
//
// The print override is installed after the raw binding list has been
// assembled, so it wins over any plugin function literally named "print".
// Duplicate names within the binding list resolve last-registered-wins.
//
// A nil state synthesizes a default capture-disabled State so host functions
// always have a valid state to read. Script-level failures are returned as
// *ScriptError; host-function errors (including real-channel write failures
// from print) halt the script and surface the same way.
func Run(ctx context.Context, script string, bindings []Binding, state *State) error {
	if state == nil {
		state = NewState(DefaultWorkflowID, false)
	}

	globals := make(map[string]any, len(bindings)+1)
	for _, b := range bindings {
		globals[b.Name] = newBuiltin(b.Name, b.Fn, state)
	}
	globals[PrintName] = newBuiltin(PrintName, Print, state)

	_, err := risor.Eval(ctx, script,
		risor.WithoutDefaultGlobals(),
		risor.WithGlobals(globals),
	)
	if err != nil {
		return &ScriptError{Err: err}
	}
	return nil
}

// newBuiltin wraps a HostFunc as a Risor builtin bound to the run's state.
func newBuiltin(name string, fn HostFunc, state *State) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		goArgs := make([]any, len(args))
		for i, arg := range args {
			goArgs[i] = objectToGo(arg)
		}
		v, err := fn(ctx, state, goArgs...)
		if err != nil {
			return object.NewError(err)
		}
		return goToObject(v)
	})
}
