package statistics

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

type fakeActions struct {
	validateErr error
	imported    [][]byte
	cleared     int
}

func (actions *fakeActions) build() Actions {
	return Actions{
		Validate: func([]byte) error { return actions.validateErr },
		Import: func(data []byte) error {
			actions.imported = append(actions.imported, data)
			return nil
		},
		Clear: func() error {
			actions.cleared++
			return nil
		},
	}
}

func newWindow(t *testing.T, actions *fakeActions, answer bool) (*Window, *[]string, *[]error) {
	t.Helper()
	screen := New(test.NewTempApp(t), actions.build())
	var asked []string
	var shown []error
	screen.confirm = func(_, message string, callback func(bool)) {
		asked = append(asked, message)
		callback(answer)
	}
	screen.showErr = func(err error) { shown = append(shown, err) }
	return screen, &asked, &shown
}

func TestUpdate(t *testing.T) {
	screen, _, _ := newWindow(t, &fakeActions{}, true)
	now := time.Now()
	statistics := model.Statistics{
		Today:  model.DailyStats{Sessions: 2, FocusMinutes: 75, Breaks: 1},
		Weekly: model.WeeklyStats{Sessions: 9, FocusMinutes: 225, Breaks: 6},
		History: []model.SessionRecord{
			{Mode: model.ModeFocus, DurationSeconds: 1500, Timestamp: now},
		},
	}

	screen.Update(statistics)

	assert.Equal(t, "2", screen.todaySessions.Text)
	assert.Equal(t, "1h 15m", screen.todayFocus.Text)
	assert.Equal(t, "100%", screen.productivity.Text)
	assert.Equal(t, "3h 45m", screen.weekFocus.Text)
	assert.Equal(t, "6", screen.weekBreaks.Text)
	require.Len(t, screen.recent, 1)
	assert.Equal(t, "🍅 25 min at "+now.Format("15:04"), recentLine(screen.recent[0]))
}

func TestImportConfirmed(t *testing.T) {
	actions := &fakeActions{}
	screen, asked, shown := newWindow(t, actions, true)

	screen.importData([]byte(`{"tasks":[]}`))

	assert.Equal(t, []string{importWarning}, *asked)
	assert.Len(t, actions.imported, 1)
	assert.Empty(t, *shown)
}

func TestImportDeclined(t *testing.T) {
	actions := &fakeActions{}
	screen, _, _ := newWindow(t, actions, false)
	screen.importData([]byte(`{}`))
	assert.Empty(t, actions.imported)
}

func TestImportInvalidSkipsConfirm(t *testing.T) {
	actions := &fakeActions{validateErr: errors.New("bad")}
	screen, asked, shown := newWindow(t, actions, true)

	screen.importData([]byte(`nope`))

	assert.Empty(t, *asked)
	assert.Empty(t, actions.imported)
	require.Len(t, *shown, 1)
	assert.EqualError(t, (*shown)[0], "invalid file format")
}

func TestClear(t *testing.T) {
	actions := &fakeActions{}
	screen, asked, _ := newWindow(t, actions, true)
	screen.handleClear()
	assert.Equal(t, []string{clearWarning}, *asked)
	assert.Equal(t, 1, actions.cleared)

	declined, _, _ := newWindow(t, actions, false)
	declined.handleClear()
	assert.Equal(t, 1, actions.cleared)
}
