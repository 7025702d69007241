package trace

import (
	"fmt"
	"strings"
)

// Event is a structurally parsed trace line: its event type and an
// ordered set of field key/value pairs, both still as text. Parse exists
// so downstream oracles (and this repo's own tests) can verify the
// round-trip property: a trace written to text and reparsed must be
// structurally identical to the event sequence that produced it.
type Event struct {
	Type   string
	Fields []Field
}

// Field is one key=value pair within an Event, in emission order.
type Field struct {
	Key   string
	Value string
}

// Get returns the value of the named field and whether it was present.
func (e Event) Get(key string) (string, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Parse parses every line of a trace (as produced by Emitter) into
// structured Events, in the original order. It returns an error on the
// first line that does not have the TYPE(key=value, ...) shape; event types
// and field names are not checked against the trace grammar.
func Parse(lines []string) ([]Event, error) {
	events := make([]Event, 0, len(lines))
	for i, line := range lines {
		ev, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ParseLine parses a single trace line, e.g.
// "COMPLETE(cmd_id=3, status=OK, out=0)".
func ParseLine(line string) (Event, error) {
	open := strings.IndexByte(line, '(')
	if open < 0 || !strings.HasSuffix(line, ")") {
		return Event{}, fmt.Errorf("malformed trace line %q", line)
	}
	typ := line[:open]
	if typ == "" {
		return Event{}, fmt.Errorf("malformed trace line %q: missing event type", line)
	}
	body := line[open+1 : len(line)-1]

	ev := Event{Type: typ}
	if body == "" {
		return ev, nil
	}
	for _, part := range strings.Split(body, ", ") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return Event{}, fmt.Errorf("malformed field %q in line %q", part, line)
		}
		ev.Fields = append(ev.Fields, Field{Key: k, Value: v})
	}
	return ev, nil
}

// Format renders an Event back into its canonical trace line, the inverse
// of ParseLine.
func (e Event) Format() string {
	var b strings.Builder
	b.WriteString(e.Type)
	b.WriteByte('(')
	for i, f := range e.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	b.WriteByte(')')
	return b.String()
}
