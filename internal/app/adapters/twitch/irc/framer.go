package irc

import (
	"bytes"
	"strings"
)

// Framer reassembles complete IRC lines from a chunked byte stream. Partial
// trailing data is held until its "\r\n" terminator arrives; empty lines are
// swallowed. Chat traffic is unreliable text, so undecodable byte sequences
// are substituted rather than treated as fatal.
type Framer struct {
	buf []byte
}

func NewFramer() *Framer {
	return &Framer{}
}

func (f *Framer) Feed(data []byte) {
	f.buf = append(f.buf, data...)
}

// Next returns the next complete line, or ok=false when no full terminator
// is buffered yet.
func (f *Framer) Next() (string, bool) {
	for {
		idx := bytes.Index(f.buf, []byte("\r\n"))
		if idx == -1 {
			return "", false
		}

		line := strings.TrimSpace(strings.ToValidUTF8(string(f.buf[:idx]), "�"))
		f.buf = f.buf[idx+2:]

		if line == "" {
			continue
		}
		return line, true
	}
}

// Pending reports how many bytes are buffered without a terminator.
func (f *Framer) Pending() int {
	return len(f.buf)
}

// Reset discards buffered bytes. The supervisor reuses one framer across
// sessions, so a partial line from a dead connection must never leak into
// the next one.
func (f *Framer) Reset() {
	f.buf = nil
}
