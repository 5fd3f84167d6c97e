package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/dustin/go-humanize"

	"github.com/TWRT/todolist/internal/form"
	"github.com/TWRT/todolist/internal/models"
	"github.com/TWRT/todolist/internal/notify"
	"github.com/TWRT/todolist/internal/tasklist"
)

const (
	msgLoading = "Searching tasks..."
	msgEmpty   = "No tasks available"
)

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ToDo " + titleAccent.Render("List")))
	b.WriteString("\n")

	b.WriteString(a.viewForm())
	b.WriteString("\n")
	b.WriteString(a.viewList())

	if a.confirm != nil {
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(fmt.Sprintf("%s \"%s\" (y/n)", tasklist.DeletePrompt, a.confirm.Description)))
	}

	for _, t := range a.toasts {
		b.WriteString("\n")
		b.WriteString(viewToast(t.toast))
	}

	b.WriteString("\n")
	b.WriteString(a.viewHelp())
	return b.String()
}

func (a *App) viewForm() string {
	state := a.form.State()
	var b strings.Builder

	if state.Mode.IsEdit() {
		b.WriteString(mutedText.Render(fmt.Sprintf("Editing task #%d", state.Mode.TaskID())))
		b.WriteString("\n")
	}

	box := inputStyle
	if state.Indicator == form.IndicatorDuplicate {
		box = inputDupStyle
	}
	b.WriteString(box.Render(a.input.View()))
	b.WriteString(viewIndicator(state.Indicator, a.spinner.View()))
	b.WriteString("\n")

	if state.Error != nil {
		b.WriteString(errorText.Render(state.Error.Message))
		b.WriteString("\n")
	}
	if state.Indicator == form.IndicatorDuplicate {
		b.WriteString(errorText.Render(form.MsgDuplicate))
		b.WriteString("\n")
	}

	label := "[enter] " + a.form.SubmitLabel()
	switch {
	case state.Submitting:
		b.WriteString(mutedText.Render(a.spinner.View() + " saving..."))
	case state.SubmitEnabled:
		b.WriteString(buttonStyle.Render(label))
	default:
		b.WriteString(buttonDisabled.Render(label))
	}
	b.WriteString("\n")
	return b.String()
}

func viewIndicator(ind form.Indicator, spin string) string {
	switch ind {
	case form.IndicatorSearching:
		return searchingBadge.Render(spin + " searching")
	case form.IndicatorNewTask:
		return newTaskBadge.Render("✓ new task")
	case form.IndicatorDuplicate:
		return duplicateBadge.Render("✗ already exists")
	default:
		return ""
	}
}

func (a *App) viewList() string {
	view := a.list.View()
	var b strings.Builder

	if len(view.Tasks) > 0 {
		b.WriteString(listHeaderStyle.Render(fmt.Sprintf("You have %s tasks left to do",
			pendingCount.Render(fmt.Sprint(view.Pending)))))
		b.WriteString("\n")
	}

	for i, t := range view.Tasks {
		b.WriteString(a.viewTask(i, t))
		b.WriteString("\n")
	}

	switch view.Status {
	case tasklist.StatusLoading:
		b.WriteString(a.spinner.View() + " " + msgLoading)
		b.WriteString("\n")
	case tasklist.StatusEmpty:
		b.WriteString(mutedText.Render(msgEmpty))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) viewTask(i int, t models.Task) string {
	cursor := "  "
	if a.focus == focusList && i == a.cursor {
		cursor = cursorStyle.Render("> ")
	}

	check := "[ ]"
	desc := t.Description
	if t.Completed {
		check = "[x]"
		desc = completedStyle.Render(desc)
	}

	line := fmt.Sprintf("%s%s %s", cursor, check, desc)
	if !t.CreatedAt.IsZero() {
		line += "  " + mutedText.Render(humanize.RelTime(t.CreatedAt, a.now(), "ago", "from now"))
	}
	return line
}

func viewToast(t notify.Toast) string {
	if t.Kind == notify.KindError {
		return toastError.Render("✗ " + t.Message)
	}
	return toastSuccess.Render("✓ " + t.Message)
}

func (a *App) viewHelp() string {
	var bindings []key.Binding
	switch {
	case a.confirm != nil:
		bindings = []key.Binding{a.keymap.Confirm, a.keymap.Cancel}
	case a.focus == focusInput:
		bindings = []key.Binding{a.keymap.Submit, a.keymap.SwitchPane}
		if a.form.Mode().IsEdit() {
			bindings = append(bindings, a.keymap.Back)
		}
	default:
		bindings = []key.Binding{a.keymap.Up, a.keymap.Down, a.keymap.Toggle, a.keymap.Edit,
			a.keymap.Delete, a.keymap.Copy, a.keymap.SwitchPane, a.keymap.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
