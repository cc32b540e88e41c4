package runtime

import (
	"strings"
	"sync"
)

// OutputKind tags an OutputRecord with the channel it belongs to.
type OutputKind int

const (
	KindStdout OutputKind = iota
	// KindStderr is declared for completeness. The print interceptor currently
	// records error-channel writes as KindStdout; see the note in print.go.
	KindStderr
)

// OutputRecord is one captured print call.
type OutputRecord struct {
	Kind OutputKind
	Text string
}

// State is the shared per-run state visible to host functions while a script
// runs: the workflow id, the capture flag and the captured output buffer. One
// *State is shared between the run controller and every host-function
// invocation of a run, so buffer access is serialized through a mutex. A State
// never outlives the execution it was created for.
type State struct {
	workflowID string
	capture    bool

	mu     sync.Mutex
	output []OutputRecord
}

// NewState creates a State with an empty output buffer. The capture flag is
// fixed for the lifetime of the state.
func NewState(workflowID string, capture bool) *State {
	return &State{workflowID: workflowID, capture: capture}
}

func (s *State) WorkflowID() string { return s.workflowID }

// CaptureEnabled reports whether print calls are captured into the buffer
// instead of being written to the real channels.
func (s *State) CaptureEnabled() bool { return s.capture }

// Append records one print call. When capture is disabled the call is a no-op;
// the caller is expected to have written to the real channel instead.
func (s *State) Append(r OutputRecord) {
	if !s.capture {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = append(s.output, r)
}

// Records returns a copy of the captured output in append order.
func (s *State) Records() []OutputRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OutputRecord, len(s.output))
	copy(out, s.output)
	return out
}

// CombinedOutput flattens the captured records into a single string,
// concatenated in append order with no separator.
func (s *State) CombinedOutput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for _, r := range s.output {
		b.WriteString(r.Text)
	}
	return b.String()
}
