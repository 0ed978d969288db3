package aistream

import (
	"bytes"
	"encoding/json"
	"log"
)

// eventMarker prefixes each JSON event line in the AI service stream.
var eventMarker = []byte("data:")

// Event is one parsed update from the AI stream. A field is an update only
// when it is present in the JSON; absence never erases a stored value.
// Places and UserPreferences stay raw so the parser needs no knowledge of
// the place schema.
type Event struct {
	Places          json.RawMessage `json:"places"`
	UserPreferences json.RawMessage `json:"user_preferences"`
	Justification   *string         `json:"justification"`
}

// present reports whether raw carries an actual value (absent and literal
// null both mean "no update").
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func (e *Event) HasPlaces() bool          { return present(e.Places) }
func (e *Event) HasUserPreferences() bool { return present(e.UserPreferences) }
func (e *Event) HasJustification() bool   { return e.Justification != nil }

// HasUpdate reports whether the event carries at least one updatable field.
func (e *Event) HasUpdate() bool {
	return e.HasPlaces() || e.HasUserPreferences() || e.HasJustification()
}

// LineParser incrementally splits a chunked byte stream into newline-delimited
// JSON events. Chunk boundaries may fall anywhere, including mid-line; the
// trailing incomplete fragment is carried over to the next Feed call.
// Malformed JSON lines are logged and skipped, never fatal.
type LineParser struct {
	buf    []byte
	logger *log.Logger
}

func NewLineParser(logger *log.Logger) *LineParser {
	return &LineParser{logger: logger}
}

// Feed appends a raw chunk to the internal buffer and returns all events
// parsed from complete lines. The final unterminated fragment is retained.
func (p *LineParser) Feed(chunk []byte) []*Event {
	p.buf = append(p.buf, chunk...)

	var events []*Event
	for {
		idx := bytes.IndexByte(p.buf, '\n')
		if idx < 0 {
			break
		}
		line := p.buf[:idx]
		p.buf = p.buf[idx+1:]

		if ev := p.parseLine(line); ev != nil {
			events = append(events, ev)
		}
	}
	return events
}

// Flush parses whatever unterminated fragment remains after the stream ends.
// Returns nil when the remainder is empty or unparsable.
func (p *LineParser) Flush() *Event {
	line := p.buf
	p.buf = nil
	return p.parseLine(line)
}

func (p *LineParser) parseLine(line []byte) *Event {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	// Strip the SSE-style marker when present; bare JSON lines are accepted too.
	if bytes.HasPrefix(line, eventMarker) {
		line = bytes.TrimSpace(line[len(eventMarker):])
		if len(line) == 0 {
			return nil
		}
	}

	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		if p.logger != nil {
			p.logger.Printf("[WARN] skipping malformed stream line: %v (line: %.200s)", err, line)
		}
		return nil
	}
	return &ev
}
