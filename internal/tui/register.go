package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
)

const (
	registerFieldName = iota
	registerFieldEmail
	registerFieldPassword
	registerFieldRepeat
	registerFieldQuestion
	registerFieldAnswer
	registerFieldImage
)

type registerModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	recorder   recorderModel
}

func newRegisterModel() registerModel {
	labels := []struct {
		placeholder string
		masked      bool
	}{
		{placeholder: "name"},
		{placeholder: "email"},
		{placeholder: "password", masked: true},
		{placeholder: "repeat password", masked: true},
		{placeholder: "security question"},
		{placeholder: "security answer"},
		{placeholder: "profile image path (optional)"},
	}

	inputs := make([]textinput.Model, 0, len(labels))
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l.placeholder
		in.CharLimit = 256
		in.Width = 40
		if l.masked {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		if i == 0 {
			in.Focus()
		}
		inputs = append(inputs, in)
	}

	return registerModel{inputs: inputs, recorder: newRecorderModel()}
}

func (m registerModel) view(min, max time.Duration) string {
	var b strings.Builder

	fieldNames := []string{
		"Name     ", "Email    ", "Password ", "Repeat   ",
		"Question ", "Answer   ", "Image    ",
	}
	for i, name := range fieldNames {
		b.WriteString(name)
		b.WriteString("│ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}
	b.WriteString("\n")
	b.WriteString(m.recorder.view(min, max))

	if m.submitting {
		b.WriteString("\n[Create account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}

	hotKeys := "enter: submit │ tab: next field │ esc: back │ " + recorderHotKeys(m.recorder)
	return renderPage("CREATE ACCOUNT", strings.TrimRight(b.String(), "\n"), hotKeys)
}
