// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Bounded output capture

package gateway

import "bytes"

// MaxOutputBytes is the hard cap on bytes retained from a command's
// combined stdout/stderr. A runaway command cannot grow the engine's
// memory by dumping huge amounts of data.
const MaxOutputBytes = 1024 * 1024 // 1 MiB

// limitedBuffer keeps the first limit bytes written and silently drops the
// rest, always reporting the full write as accepted
type limitedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func newLimitedBuffer(limit int) *limitedBuffer {
	return &limitedBuffer{limit: limit}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining <= 0 {
		b.truncated = true
		return len(p), nil
	}
	if len(p) > remaining {
		b.buf.Write(p[:remaining])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *limitedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}

// aggregateOutput combines stdout and stderr, capped at MaxOutputBytes.
// Under contention stderr is favored 2:1 since it carries the diagnostics;
// unused stderr capacity is rebalanced back to stdout.
func aggregateOutput(stdout, stderr []byte) []byte {
	total := len(stdout) + len(stderr)
	if total <= MaxOutputBytes {
		out := make([]byte, 0, total)
		out = append(out, stdout...)
		out = append(out, stderr...)
		return out
	}

	stdoutTake := len(stdout)
	if stdoutTake > MaxOutputBytes/3 {
		stdoutTake = MaxOutputBytes / 3
	}

	stderrTake := len(stderr)
	if remaining := MaxOutputBytes - stdoutTake; stderrTake > remaining {
		stderrTake = remaining
	}

	// Rebalance unused stderr capacity back to stdout
	if spare := MaxOutputBytes - stdoutTake - stderrTake; spare > 0 {
		extra := len(stdout) - stdoutTake
		if extra > spare {
			extra = spare
		}
		stdoutTake += extra
	}

	out := make([]byte, 0, stdoutTake+stderrTake)
	out = append(out, stdout[:stdoutTake]...)
	out = append(out, stderr[:stderrTake]...)
	return out
}
