// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"io"
	"sync"
)

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu        sync.Mutex
	buf       []byte
	max       int
	truncated bool
}

func newTailBuffer(maxSize int) *tailBuffer {
	return &tailBuffer{max: maxSize}
}

// Write never fails so a slow or closed terminal cannot stall the child process.
func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
		t.truncated = true
	}

	return len(p), nil
}

// Bytes returns a copy of the retained output.
func (t *tailBuffer) Bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.buf) == 0 {
		return nil
	}

	out := make([]byte, len(t.buf))
	copy(out, t.buf)

	return out
}

// copyStream drains r into both writers until EOF. Write errors on live are ignored
// so the pipe keeps draining and the child never blocks on a full pipe.
func copyStream(wg *sync.WaitGroup, r io.Reader, live io.Writer, capture *tailBuffer) {
	defer wg.Done()

	buf := make([]byte, 32*1024) //nolint:mnd

	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = live.Write(buf[:n])
			_, _ = capture.Write(buf[:n])
		}

		if err != nil {
			return
		}
	}
}
