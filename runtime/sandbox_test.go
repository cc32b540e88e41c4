package runtime

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRun_Expression(t *testing.T) {
	state := NewState("wf-1", true)
	err := Run(context.Background(), "1 + 1", nil, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := state.CombinedOutput(); out != "" {
		t.Errorf("got output %q, want empty", out)
	}
}

func TestRun_PrintCaptured(t *testing.T) {
	state := NewState("wf-1", true)
	err := Run(context.Background(), `print("hello")`, nil, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := state.CombinedOutput(); out != "hello" {
		t.Errorf("got output %q, want hello", out)
	}
}

func TestRun_PrintCallOrder(t *testing.T) {
	state := NewState("wf-1", true)
	script := "print(\"a\")\nprint(\"b\")\nprint(\"c\")"
	if err := Run(context.Background(), script, nil, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := state.CombinedOutput(); out != "abc" {
		t.Errorf("got output %q, want abc", out)
	}
}

func TestRun_PrintErrChannelCaptured(t *testing.T) {
	state := NewState("wf-1", true)
	if err := Run(context.Background(), `print("boom", true)`, nil, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := state.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	// Error-channel text is recorded under the stdout kind.
	if records[0].Kind != KindStdout {
		t.Errorf("got kind %v, want KindStdout", records[0].Kind)
	}
	if records[0].Text != "boom" {
		t.Errorf("got text %q, want boom", records[0].Text)
	}
}

func TestRun_PassThrough(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	origOut, origErr := realStdout, realStderr
	realStdout, realStderr = &outBuf, &errBuf
	defer func() { realStdout, realStderr = origOut, origErr }()

	state := NewState("wf-1", false)
	script := "print(\"to out\")\nprint(\"to err\", true)"
	if err := Run(context.Background(), script, nil, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outBuf.String() != "to out" {
		t.Errorf("got stdout %q, want %q", outBuf.String(), "to out")
	}
	if errBuf.String() != "to err" {
		t.Errorf("got stderr %q, want %q", errBuf.String(), "to err")
	}
	if len(state.Records()) != 0 {
		t.Errorf("pass-through must not capture, got %v", state.Records())
	}
}

func TestRun_ChannelWriteError(t *testing.T) {
	origOut := realStdout
	realStdout = &failWriter{}
	defer func() { realStdout = origOut }()

	_, err := Print(context.Background(), NewState("wf-1", false), "text")
	if err == nil {
		t.Fatal("expected error from failed channel write")
	}
	if !errors.Is(err, ErrChannelWrite) {
		t.Errorf("got %v, want ErrChannelWrite", err)
	}
}

func TestRun_HostFunction(t *testing.T) {
	state := NewState("wf-1", true)
	bindings := []Binding{{
		Name: "greet",
		Fn: func(_ context.Context, _ *State, _ ...any) (any, error) {
			return "hi", nil
		},
	}}
	if err := Run(context.Background(), `print(greet())`, bindings, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := state.CombinedOutput(); out != "hi" {
		t.Errorf("got output %q, want hi", out)
	}
}

func TestRun_HostFunctionArgs(t *testing.T) {
	state := NewState("wf-1", true)
	var got []any
	bindings := []Binding{{
		Name: "record",
		Fn: func(_ context.Context, _ *State, args ...any) (any, error) {
			got = append(got, args...)
			return nil, nil
		},
	}}
	if err := Run(context.Background(), `record("a", 2, true)`, bindings, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d args, want 3", len(got))
	}
	if got[0] != "a" || got[1] != int64(2) || got[2] != true {
		t.Errorf("got args %v", got)
	}
}

func TestRun_HostFunctionReadsState(t *testing.T) {
	state := NewState("wf-42", true)
	var seenID string
	var seenCapture bool
	bindings := []Binding{{
		Name: "inspect",
		Fn: func(_ context.Context, s *State, _ ...any) (any, error) {
			seenID = s.WorkflowID()
			seenCapture = s.CaptureEnabled()
			return nil, nil
		},
	}}
	if err := Run(context.Background(), `inspect()`, bindings, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenID != "wf-42" {
		t.Errorf("host function saw workflow id %q, want wf-42", seenID)
	}
	if !seenCapture {
		t.Error("host function saw capture disabled, want enabled")
	}
}

func TestRun_NilStateSynthesized(t *testing.T) {
	var seenID string
	var seenCapture bool
	bindings := []Binding{{
		Name: "inspect",
		Fn: func(_ context.Context, s *State, _ ...any) (any, error) {
			seenID = s.WorkflowID()
			seenCapture = s.CaptureEnabled()
			return nil, nil
		},
	}}
	if err := Run(context.Background(), `inspect()`, bindings, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenID != DefaultWorkflowID {
		t.Errorf("got workflow id %q, want %q", seenID, DefaultWorkflowID)
	}
	if seenCapture {
		t.Error("synthesized state must have capture disabled")
	}
}

func TestRun_HostFunctionError(t *testing.T) {
	state := NewState("wf-1", true)
	bindings := []Binding{{
		Name: "explode",
		Fn: func(_ context.Context, _ *State, _ ...any) (any, error) {
			return nil, errors.New("fail")
		},
	}}
	err := Run(context.Background(), `explode()`, bindings, state)
	if err == nil {
		t.Fatal("expected error")
	}
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("got %T, want *ScriptError", err)
	}
	if !strings.Contains(err.Error(), "fail") {
		t.Errorf("error %q should contain the script message", err.Error())
	}
}

func TestRun_UndefinedCall(t *testing.T) {
	err := Run(context.Background(), `no_such_fn()`, nil, NewState("wf-1", true))
	if err == nil {
		t.Fatal("expected error for undefined function")
	}
}

func TestRun_SandboxedGlobals(t *testing.T) {
	// Default globals are stripped; only bindings and print exist.
	err := Run(context.Background(), `os.getenv("PATH")`, nil, NewState("wf-1", true))
	if err == nil {
		t.Fatal("expected error when accessing os module in sandbox")
	}
}

func TestRun_PrintOverridesPluginBinding(t *testing.T) {
	state := NewState("wf-1", true)
	pluginCalled := false
	bindings := []Binding{{
		Name: "print",
		Fn: func(_ context.Context, _ *State, _ ...any) (any, error) {
			pluginCalled = true
			return nil, nil
		},
	}}
	if err := Run(context.Background(), `print("x")`, bindings, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pluginCalled {
		t.Error("plugin-supplied print body must not shadow the reserved binding")
	}
	if out := state.CombinedOutput(); out != "x" {
		t.Errorf("got output %q, want x", out)
	}
}

func TestRun_DuplicateBindingLastWins(t *testing.T) {
	state := NewState("wf-1", true)
	bindings := []Binding{
		{Name: "who", Fn: func(_ context.Context, _ *State, _ ...any) (any, error) {
			return "first", nil
		}},
		{Name: "who", Fn: func(_ context.Context, _ *State, _ ...any) (any, error) {
			return "second", nil
		}},
	}
	if err := Run(context.Background(), `print(who())`, bindings, state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out := state.CombinedOutput(); out != "second" {
		t.Errorf("got output %q, want second", out)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}
