package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrChannelWrite marks a failed write to a real output channel (e.g. a broken
// pipe). It is the one print failure that propagates as a hard error; script
// failures are always turned into data by the run controller.
var ErrChannelWrite = errors.New("channel write failed")

// Real channels used in pass-through mode. Package-level so tests can
// redirect them; os files are unbuffered, so every write reaches the channel
// immediately.
var (
	realStdout io.Writer = os.Stdout
	realStderr io.Writer = os.Stderr
)

// Print is the body of the reserved "print(text, is_err)" binding every
// script can call, regardless of what the assembled plugin functions define.
//
// Dispatch:
//   - capture enabled  -> append the text to the state's buffer
//   - capture disabled -> write the text to the real stdout, or to the real
//     stderr when is_err is set
//
// Captured error-channel writes are recorded as KindStdout records for now:
// consumers of WorkflowResult read one flattened buffer, and splitting the
// channels is a contract change to confirm with them first.
func Print(_ context.Context, s *State, args ...any) (any, error) {
	var text string
	if len(args) > 0 {
		if str, ok := args[0].(string); ok {
			text = str
		} else {
			text = fmt.Sprint(args[0])
		}
	}
	isErr := false
	if len(args) > 1 {
		if b, ok := args[1].(bool); ok {
			isErr = b
		}
	}

	if s.CaptureEnabled() {
		s.Append(OutputRecord{Kind: KindStdout, Text: text})
		return nil, nil
	}

	w := realStdout
	if isErr {
		w = realStderr
	}
	if _, err := io.WriteString(w, text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelWrite, err)
	}
	return nil, nil
}
