// Package stats records finished sessions and keeps the daily and weekly
// aggregates shown on the statistics screen.
package stats

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/storage"
)

// RecentLimit is how many sessions the statistics screen lists.
const RecentLimit = 10

// expectedFocusMinutes is the focus length productivity is measured against.
const expectedFocusMinutes = 25

// Recorder appends completed sessions to the statistics document.
type Recorder struct {
	mu         sync.Mutex
	store      storage.Store
	clock      clock.Clock
	logger     *slog.Logger
	statistics model.Statistics
	onChange   func(model.Statistics)
}

// NewRecorder creates a Recorder writing through store. Call Load before use.
func NewRecorder(store storage.Store, clk clock.Clock, logger *slog.Logger) *Recorder {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		store:      store,
		clock:      clk,
		logger:     logger,
		statistics: model.NewStatistics(clk.Now()),
	}
}

// SetOnChange registers a callback run after every change.
func (recorder *Recorder) SetOnChange(handler func(model.Statistics)) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.onChange = handler
}

// Load reads the persisted statistics. Unreadable data counts as none.
// Today's counters restart when the stored day is not today.
func (recorder *Recorder) Load() {
	now := recorder.clock.Now()
	statistics, err := storage.LoadStatistics(recorder.store, now)
	if err != nil {
		recorder.logger.Warn("statistics unavailable, starting fresh", "error", err)
	}

	recorder.mu.Lock()
	recorder.statistics = statistics
	recorder.rollOverLocked(now)
	snapshot := recorder.snapshotLocked()
	handler := recorder.onChange
	recorder.mu.Unlock()

	if handler != nil {
		handler(snapshot)
	}
}

// Record stores one completed session and updates the aggregates.
func (recorder *Recorder) Record(completed timekeeper.SessionCompleted) {
	now := recorder.clock.Now()
	timestamp := completed.At
	if timestamp.IsZero() {
		timestamp = now
	}
	record := model.SessionRecord{
		Mode:            completed.Mode,
		DurationSeconds: completed.DurationSeconds,
		Timestamp:       timestamp.UTC(),
		TaskID:          completed.TaskID,
	}

	recorder.mu.Lock()
	recorder.rollOverLocked(now)
	statistics := &recorder.statistics
	statistics.History = append([]model.SessionRecord{record}, statistics.History...)
	if record.Mode == model.ModeFocus {
		minutes := record.DurationSeconds / 60
		statistics.Today.Sessions++
		statistics.Today.FocusMinutes += minutes
		statistics.Weekly.Sessions++
		statistics.Weekly.FocusMinutes += minutes
	} else {
		statistics.Today.Breaks++
		statistics.Weekly.Breaks++
	}
	snapshot := recorder.snapshotLocked()
	handler := recorder.onChange
	recorder.mu.Unlock()

	if err := storage.SaveStatistics(recorder.store, snapshot); err != nil {
		recorder.logger.Error("persist statistics", "error", err)
	}
	if handler != nil {
		handler(snapshot)
	}
}

// Snapshot returns a copy of the statistics.
func (recorder *Recorder) Snapshot() model.Statistics {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.snapshotLocked()
}

func (recorder *Recorder) snapshotLocked() model.Statistics {
	snapshot := recorder.statistics
	snapshot.History = make([]model.SessionRecord, len(recorder.statistics.History))
	copy(snapshot.History, recorder.statistics.History)
	return snapshot
}

func (recorder *Recorder) rollOverLocked(now time.Time) {
	today := now.Format(model.DateLayout)
	if recorder.statistics.Today.Date != today {
		recorder.statistics.Today = model.DailyStats{Date: today}
	}
}

// RecentSession is one line of the recent sessions list.
type RecentSession struct {
	Icon    string
	Minutes int
	Time    string
}

// Recent returns up to limit of the newest sessions, formatted in loc.
func Recent(statistics model.Statistics, limit int, loc *time.Location) []RecentSession {
	if loc == nil {
		loc = time.Local
	}
	count := min(limit, len(statistics.History))
	recent := make([]RecentSession, 0, max(count, 0))
	for _, record := range statistics.History[:max(count, 0)] {
		recent = append(recent, RecentSession{
			Icon:    timekeeper.ModeIcon(record.Mode),
			Minutes: record.DurationSeconds / 60,
			Time:    record.Timestamp.In(loc).Format("15:04"),
		})
	}
	return recent
}

// FocusTimeLabel renders minutes as "Xh Ym".
func FocusTimeLabel(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Productivity compares today's focus minutes with full 25 minute sessions.
func Productivity(today model.DailyStats) string {
	if today.Sessions <= 0 {
		return "0%"
	}
	ratio := float64(today.FocusMinutes) / float64(today.Sessions*expectedFocusMinutes)
	return fmt.Sprintf("%d%%", min(100, int(math.Round(ratio*100))))
}
