// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringpool

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// maxCapturedFrames bounds how deep a captured call stack goes; this is a
// diagnostic aid, not a debugger, so a handful of frames is plenty.
const maxCapturedFrames = 32

// captureStack renders the current goroutine's call stack, skipping the
// given number of innermost frames (the capture helper itself and its
// immediate caller). It is only ever invoked when a Manager has
// GenerateCallStacks enabled; skip it entirely otherwise to avoid paying
// for runtime.Callers on the hot path.
func captureStack(skip int) string {
	pcs := make([]uintptr, maxCapturedFrames)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		b.WriteString(frame.Function)
		b.WriteString("\n\t")
		b.WriteString(frame.File)
		b.WriteString(":")
		b.WriteString(strconv.Itoa(frame.Line))
		b.WriteString("\n")
		if !more {
			break
		}
	}
	return b.String()
}

// StackLogger is an optional capability an EventSink may implement to
// receive structured diagnostic events carrying captured call stacks. A
// sink that does not implement it simply never receives these calls; the
// core allocation/dispose path never depends on it being present.
type StackLogger interface {
	Logger() *zerolog.Logger
}

// logDisposeStack writes a structured diagnostic event for a stream
// dispose when both call-stack capture and a StackLogger sink are
// present. It is a best-effort diagnostic aid, never a correctness path.
func logDisposeStack(sink EventSink, id string, tag string, stack string) {
	if stack == "" {
		return
	}
	sl, ok := sink.(StackLogger)
	if !ok {
		return
	}
	logger := sl.Logger()
	if logger == nil {
		return
	}
	logger.Debug().
		Str("stream_id", id).
		Str("tag", tag).
		Str("dispose_stack", stack).
		Msg("ringpool: stream disposed")
}
