package model

import "time"

// Mode is the kind of interval being timed.
type Mode string

const (
	ModeFocus       Mode = "focus"
	ModeShortBreak  Mode = "shortBreak"
	ModeLongBreak   Mode = "longBreak"
	ModeManualBreak Mode = "manualBreak"
)

// IsBreak reports whether mode is any kind of break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak || mode == ModeManualBreak
}

// Task is a to-do entry that focus sessions can be attributed to.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created"`
	Selected  bool      `json:"selected"`
}

// SessionRecord is one completed interval. Records are never mutated.
type SessionRecord struct {
	Mode            Mode      `json:"mode"`
	DurationSeconds int       `json:"duration"`
	Timestamp       time.Time `json:"timestamp"`
	TaskID          string    `json:"taskId,omitempty"`
}

// DailyStats aggregates one calendar day. FocusMinutes is whole minutes.
type DailyStats struct {
	Sessions     int    `json:"sessions"`
	FocusMinutes int    `json:"focusTime"`
	Breaks       int    `json:"breaks"`
	Date         string `json:"date"`
}

// WeeklyStats is a running total that is never reset automatically.
type WeeklyStats struct {
	Sessions     int `json:"sessions"`
	FocusMinutes int `json:"focusTime"`
	Breaks       int `json:"breaks"`
}

// Statistics is the persisted statistics document. History is most recent first.
type Statistics struct {
	Today   DailyStats      `json:"today"`
	Weekly  WeeklyStats     `json:"weekly"`
	History []SessionRecord `json:"history"`
}

// DateLayout formats the calendar day key of DailyStats.
const DateLayout = "Mon Jan 02 2006"

// NewStatistics returns empty statistics for the day containing now.
func NewStatistics(now time.Time) Statistics {
	return Statistics{
		Today:   DailyStats{Date: now.Format(DateLayout)},
		History: []SessionRecord{},
	}
}
