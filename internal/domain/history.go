package domain

import (
	"fmt"
	"strings"
	"time"
)

// HistoryEntry is one executed command. Entries are never mutated after
// they are appended.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"`
}

const historySeparator = " $ "

// NewHistoryEntry builds an entry, flattening newlines so one entry is one line.
func NewHistoryEntry(at time.Time, command string) HistoryEntry {
	command = strings.ReplaceAll(command, "\r\n", " ")
	command = strings.ReplaceAll(command, "\n", " ")
	return HistoryEntry{Timestamp: at, Command: command}
}

// Line renders the entry in the history log format.
func (e HistoryEntry) Line() string {
	return e.Timestamp.Format(HistoryTimestampFormat) + historySeparator + e.Command
}

// ParseHistoryLine parses one line of the history log.
func ParseHistoryLine(line string) (HistoryEntry, error) {
	stamp, command, found := strings.Cut(line, historySeparator)
	if !found {
		return HistoryEntry{}, fmt.Errorf("history line %q: missing %q separator", line, strings.TrimSpace(historySeparator))
	}
	at, err := time.ParseInLocation(HistoryTimestampFormat, stamp, time.Local)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("history line %q: %w", line, err)
	}
	return HistoryEntry{Timestamp: at, Command: command}, nil
}

// TrimHistory keeps at most max entries, dropping the oldest first.
func TrimHistory(entries []HistoryEntry, max int) []HistoryEntry {
	if max <= 0 || len(entries) <= max {
		return entries
	}
	return entries[len(entries)-max:]
}
