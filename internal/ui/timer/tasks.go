package timer

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// taskRow is one task list entry.
type taskRow struct {
	widget.BaseWidget
	done   *widget.Check
	text   *widget.Label
	focus  *widget.Button
	remove *widget.Button
}

func newTaskRow() fyne.CanvasObject {
	row := &taskRow{
		done:   widget.NewCheck("", nil),
		text:   widget.NewLabel("task"),
		focus:  widget.NewButtonWithIcon("", theme.RadioButtonIcon(), nil),
		remove: widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	}
	row.text.Truncation = fyne.TextTruncateEllipsis
	row.ExtendBaseWidget(row)
	return row
}

func (row *taskRow) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewBorder(nil, nil, row.done, container.NewHBox(row.focus, row.remove), row.text)
	return widget.NewSimpleRenderer(content)
}

func (view *Window) taskCount() int {
	return len(view.tasks)
}

func (view *Window) bindTaskRow(id widget.ListItemID, object fyne.CanvasObject) {
	if id < 0 || id >= len(view.tasks) {
		return
	}
	task := view.tasks[id]
	row := object.(*taskRow)

	row.text.SetText(task.Text)
	if task.Completed {
		row.text.TextStyle = fyne.TextStyle{Italic: true}
		row.text.Importance = widget.LowImportance
	} else {
		row.text.TextStyle = fyne.TextStyle{}
		row.text.Importance = widget.MediumImportance
	}
	row.text.Refresh()

	row.done.OnChanged = nil
	row.done.SetChecked(task.Completed)
	row.done.OnChanged = func(bool) { _ = view.taskList.Toggle(task.ID) }

	if task.Selected {
		row.focus.SetIcon(theme.RadioButtonCheckedIcon())
	} else {
		row.focus.SetIcon(theme.RadioButtonIcon())
	}
	row.focus.OnTapped = func() { _ = view.taskList.Select(task.ID) }
	row.remove.OnTapped = func() { _ = view.taskList.Delete(task.ID) }
}
