package delivery

import (
	"fmt"
	"strings"
)

// Entry is one decoded event block: the key/value lines of the block as a
// mapping. Malformed lines (no colon) are skipped during decoding.
type Entry map[string]string

// Encode renders an event as an appendable note block:
//
//	\n--- <MARKER> ---\nKey1: Value1\nKey2: Value2...
//
// The leading newline separates the block from existing note content;
// Append drops it when the note is empty.
func Encode(e Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- %s ---", e.Marker())
	for _, f := range e.Fields() {
		fmt.Fprintf(&b, "\n%s: %s", f.Key, f.Value)
	}
	return b.String()
}

// Append concatenates an encoded event onto an existing note. Appending to
// an empty note uses the block without the leading blank line.
func Append(note string, e Event) string {
	block := Encode(e)
	if note == "" {
		return strings.TrimPrefix(block, "\n")
	}
	return note + block
}

// Decode reconstructs the ordered history of one event variant from the
// full note text. The text before the first marker occurrence is
// discarded; each following segment is parsed line by line, keeping only
// "Key: Value" lines. Segments yielding no pairs are dropped. Lines
// belonging to a different marker's block terminate the segment naturally
// because the split happens on this marker only and each block starts with
// its own delimiter line. The result is oldest first, matching append
// order.
func Decode(note string, m Marker) []Entry {
	delim := fmt.Sprintf("--- %s ---", m)
	parts := strings.Split(note, delim)
	if len(parts) < 2 {
		return nil
	}

	var history []Entry
	for _, segment := range parts[1:] {
		entry := parseSegment(segment)
		if len(entry) == 0 {
			continue
		}
		history = append(history, entry)
	}
	return history
}

// parseSegment parses the key/value lines of one block segment. Parsing
// stops at the first line that opens another event block.
func parseSegment(segment string) Entry {
	entry := Entry{}
	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "--- ") {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		entry[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return entry
}

// RescheduleHistory decodes the typed reschedule history from a note,
// oldest first.
func RescheduleHistory(note string) []RescheduleEvent {
	var events []RescheduleEvent
	for _, entry := range Decode(note, MarkerReschedule) {
		events = append(events, RescheduleEvent{
			NewDate: entry[keyNewDate],
			Reason:  entry[keyReason],
		})
	}
	return events
}

// PartnerHistory decodes the typed delivery-partner history from a note,
// oldest first.
func PartnerHistory(note string) []PartnerUpdateEvent {
	var events []PartnerUpdateEvent
	for _, entry := range Decode(note, MarkerPartnerUpdate) {
		events = append(events, PartnerUpdateEvent{
			Partner: entry[keyPartner],
		})
	}
	return events
}
