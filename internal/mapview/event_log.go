package mapview

import (
	"fmt"
	"strings"
)

// Event categories recorded by the controller.
const (
	CategoryMap    = "map"
	CategoryView   = "view"
	CategoryCamera = "camera"
	CategoryTap    = "tap"
	CategorySelect = "select"
)

// LogEntry is one recorded controller event.
type LogEntry struct {
	Seq      int
	Category string // map, view, camera, tap, select
	Key      string // specific event name within the category
	Value    string // human-readable detail
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[#007] tap      hit              (3,1) at local (64.0,128.0)
func (e LogEntry) String() string {
	return fmt.Sprintf("[#%03d] %-8s %-16s %s", e.Seq, e.Category, e.Key, e.Value)
}

// EventLog collects structured controller events. Unbounded and
// machine-readable; the on-screen panel keeps its own ring buffer.
type EventLog struct {
	entries []LogEntry
	verbose bool
	seq     int
}

// NewEventLog creates an EventLog. If verbose is true, every camera
// mutation is recorded as well as taps and selection changes.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(category, key, value string, numVal float64) {
	el.seq++
	el.entries = append(el.entries, LogEntry{
		Seq:      el.seq,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []LogEntry {
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []LogEntry {
	var out []LogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given category and key.
func (el *EventLog) Count(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (LogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return LogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Format returns the full log as a single string.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
