package fakesendmail

import (
	"bytes"
	"io"
	"net/mail"
	"strings"
)

// Message is one raw email as read from standard input. The raw bytes
// are immutable for the rest of the run; header access is best effort.
type Message struct {
	raw    []byte
	header mail.Header
}

// ReadMessage consumes all of r and parses just enough structure to
// expose the From header. A message whose headers cannot be parsed is
// still kept: it will fail sender authorization with an empty sender.
func ReadMessage(r io.Reader) (*Message, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m := &Message{raw: raw}
	if parsed, err := mail.ReadMessage(bytes.NewReader(raw)); err == nil {
		m.header = parsed.Header
	}
	return m, nil
}

// Raw returns the message exactly as received.
func (m *Message) Raw() []byte {
	return m.raw
}

func (m *Message) String() string {
	return string(m.raw)
}

// From returns the raw From header value, empty when missing.
func (m *Message) From() string {
	if m.header == nil {
		return ""
	}
	return m.header.Get("From")
}

// SenderAddr extracts the sender address from the From header: last
// whitespace token, angle brackets stripped, lowercased and trimmed.
// This handles the common `Display Name <addr>` form.
func (m *Message) SenderAddr() string {
	fields := strings.Fields(m.From())
	if len(fields) == 0 {
		return ""
	}
	addr := fields[len(fields)-1]
	addr = strings.TrimPrefix(addr, "<")
	addr = strings.TrimSuffix(addr, ">")
	return strings.ToLower(strings.TrimSpace(addr))
}
