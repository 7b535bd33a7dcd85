package programmer

import (
	"bytes"
	"time"
)

// signalChange records one raw level written to a modem-control line.
type signalChange struct {
	line  Line
	level bool
}

// mockPort simulates a serial connection to a bootloader target.
// Reads are served from a queue of scripted chunks; a nil chunk
// simulates an expired read deadline, and an exhausted queue reads as
// permanently silent. Writes and signal transitions are recorded.
type mockPort struct {
	responses [][]byte
	idx       int
	cur       bytes.Buffer

	writes   []byte
	signals  []signalChange
	clears   int
	closed   bool
	readErr  error
	writeErr error
}

func newMockPort() *mockPort {
	return &mockPort{}
}

// respond queues a chunk of bytes for the next reads.
func (m *mockPort) respond(chunk ...byte) {
	m.responses = append(m.responses, chunk)
}

// respondTimeout queues one simulated read timeout.
func (m *mockPort) respondTimeout() {
	m.responses = append(m.responses, nil)
}

func (m *mockPort) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.cur.Len() == 0 {
		if m.idx >= len(m.responses) {
			return 0, nil
		}
		chunk := m.responses[m.idx]
		m.idx++
		if chunk == nil {
			return 0, nil
		}
		m.cur.Write(chunk)
	}
	return m.cur.Read(p)
}

func (m *mockPort) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, p...)
	return len(p), nil
}

func (m *mockPort) Close() error {
	m.closed = true
	return nil
}

func (m *mockPort) SetDTR(value bool) error {
	m.signals = append(m.signals, signalChange{line: DTR, level: value})
	return nil
}

func (m *mockPort) SetRTS(value bool) error {
	m.signals = append(m.signals, signalChange{line: RTS, level: value})
	return nil
}

func (m *mockPort) SetReadTimeout(t time.Duration) error {
	return nil
}

func (m *mockPort) ResetInputBuffer() error {
	m.clears++
	return nil
}

func (m *mockPort) ResetOutputBuffer() error {
	return nil
}

// countByte counts occurrences of b in the recorded writes.
func (m *mockPort) countByte(b byte) int {
	n := 0
	for _, w := range m.writes {
		if w == b {
			n++
		}
	}
	return n
}

// stubClock replaces the sleep seam and records requested durations.
type stubClock struct {
	slept []time.Duration
}

func (c *stubClock) install() func() {
	prev := sleep
	sleep = func(d time.Duration) {
		c.slept = append(c.slept, d)
	}
	return func() { sleep = prev }
}
