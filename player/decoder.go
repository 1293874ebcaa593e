package player

import (
	"bytes"
	"encoding/json"
)

// message is any inbound line: a reply carries request_id, an event carries event.
type message struct {
	RequestID *int64          `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Event     string          `json:"event,omitempty"`
	Name      string          `json:"name,omitempty"`
	ID        int64           `json:"id,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

func (m *message) isEvent() bool {
	return m.Event != ""
}

func (m *message) isReply() bool {
	return m.RequestID != nil && m.Event == ""
}

// lineDecoder turns a byte stream into messages.
// A trailing partial line is kept until its newline arrives.
type lineDecoder struct {
	buf     []byte
	dropped int
}

// Feed appends p and returns every complete message decoded from it.
// Lines that are not valid JSON objects are skipped and counted.
func (d *lineDecoder) Feed(p []byte) []*message {
	d.buf = append(d.buf, p...)

	var out []*message
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}

		line := bytes.TrimSpace(d.buf[:i])
		d.buf = d.buf[i+1:]

		if len(line) == 0 {
			continue
		}

		var msg message
		if err := json.Unmarshal(line, &msg); err != nil {
			d.dropped++
			continue
		}

		out = append(out, &msg)
	}

	// release the consumed prefix once everything is read
	if len(d.buf) == 0 {
		d.buf = nil
	}

	return out
}

// Dropped returns the number of discarded lines so far.
func (d *lineDecoder) Dropped() int {
	return d.dropped
}
